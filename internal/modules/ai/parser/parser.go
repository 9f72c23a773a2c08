package parser

import (
	"encoding/base64"
	"regexp"

	jsoniter "github.com/json-iterator/go"
	"google.golang.org/genai"
)

type ImagePayload struct {
	Data     string `json:"data"` // base64
	MimeType string `json:"mime_type"`
}

func (p *ImagePayload) DataURL() string {
	return "data:" + p.MimeType + ";base64," + p.Data
}

// ExtractImage returns the first inline binary part of the first candidate.
// Later image parts are ignored: one call is expected to carry one usable image.
func ExtractImage(resp *genai.GenerateContentResponse) (*ImagePayload, bool) {
	for _, part := range parts(resp) {
		if part == nil || part.InlineData == nil {
			continue
		}
		return &ImagePayload{
			Data:     base64.StdEncoding.EncodeToString(part.InlineData.Data),
			MimeType: part.InlineData.MIMEType,
		}, true
	}
	return nil, false
}

// ExtractText returns the first non-empty text part, without concatenation.
func ExtractText(resp *genai.GenerateContentResponse) string {
	for _, part := range parts(resp) {
		if part != nil && part.Text != "" {
			return part.Text
		}
	}
	return ""
}

func parts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return nil
	}
	return c.Content.Parts
}

var arrayPattern = regexp.MustCompile(`\[[\s\S]*?\]`)

// ParseItemList pulls the first bracketed JSON array out of free text.
// Anything other than an array of strings yields an empty list.
func ParseItemList(raw string) []string {
	match := arrayPattern.FindString(raw)
	if match == "" {
		return []string{}
	}
	var values []any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(match, &values); err != nil {
		return []string{}
	}
	items := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return []string{}
		}
		items = append(items, s)
	}
	return items
}
