package parser

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func response(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: string(genai.RoleModel), Parts: parts}}},
	}
}

func TestExtractImage(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	t.Run("first inline part wins", func(t *testing.T) {
		resp := response(
			&genai.Part{Text: "here you go"},
			&genai.Part{InlineData: &genai.Blob{Data: raw, MIMEType: "image/png"}},
			&genai.Part{InlineData: &genai.Blob{Data: []byte("second"), MIMEType: "image/jpeg"}},
		)
		img, ok := ExtractImage(resp)
		require.True(t, ok)
		require.Equal(t, "image/png", img.MimeType)
		decoded, err := base64.StdEncoding.DecodeString(img.Data)
		require.NoError(t, err)
		require.Equal(t, raw, decoded)
		require.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(raw), img.DataURL())
	})

	t.Run("text only", func(t *testing.T) {
		img, ok := ExtractImage(response(&genai.Part{Text: "No image"}))
		require.False(t, ok)
		require.Nil(t, img)
	})

	t.Run("degenerate responses", func(t *testing.T) {
		for _, resp := range []*genai.GenerateContentResponse{
			nil,
			{},
			{Candidates: []*genai.Candidate{nil}},
			{Candidates: []*genai.Candidate{{}}},
			{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
			response(nil),
		} {
			_, ok := ExtractImage(resp)
			require.False(t, ok)
			require.Equal(t, "", ExtractText(resp))
		}
	})
}

func TestExtractText(t *testing.T) {
	resp := response(
		&genai.Part{InlineData: &genai.Blob{Data: []byte{1}, MIMEType: "image/png"}},
		&genai.Part{Text: "Hello world"},
		&genai.Part{Text: "ignored"},
	)
	require.Equal(t, "Hello world", ExtractText(resp))
	require.Equal(t, "", ExtractText(response(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png"}})))
}

func TestParseItemList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain array", `["gray sofa", "coffee table"]`, []string{"gray sofa", "coffee table"}},
		{"surrounded by prose", `Here are the items: ["sofa", "chair"] in the room.`, []string{"sofa", "chair"}},
		{"escaped quote", `["24\" TV", "lamp"]`, []string{`24" TV`, "lamp"}},
		{"multiline", "```json\n[\n  \"rug\",\n  \"floor lamp\"\n]\n```", []string{"rug", "floor lamp"}},
		{"empty array", `[]`, []string{}},
		{"first array only", `["a"] and then ["b"]`, []string{"a"}},
		{"no array", "No items found", []string{}},
		{"number element", `["sofa", 2]`, []string{}},
		{"object element", `[{"name": "sofa"}]`, []string{}},
		{"nested array", `[["sofa"], "chair"]`, []string{}},
		{"malformed", `["sofa", chair]`, []string{}},
		{"null element", `["sofa", null]`, []string{}},
		{"empty input", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseItemList(tc.in))
		})
	}
}
