// Package aitest provides a scripted stand-in for the upstream model service.
package aitest

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

type Call struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// Handler answers one call. n is the 0-based call count for that model.
type Handler func(call Call, n int) (*genai.GenerateContentResponse, error)

type Generator struct {
	mu      sync.Mutex
	handler Handler
	calls   []Call
	counts  map[string]int
}

func NewGenerator(handler Handler) *Generator {
	return &Generator{handler: handler, counts: make(map[string]int)}
}

func (g *Generator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.mu.Lock()
	call := Call{Model: model, Contents: contents, Config: config}
	n := g.counts[model]
	g.counts[model]++
	g.calls = append(g.calls, call)
	g.mu.Unlock()
	return g.handler(call, n)
}

func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

func (g *Generator) Count(model string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts[model]
}

func ImageResponse(data []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: string(genai.RoleModel), Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
		}},
	}}}
}

func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: string(genai.RoleModel), Parts: []*genai.Part{{Text: text}}},
	}}}
}

// LastUserText returns the text parts of the final user turn of a call.
func LastUserText(call Call) string {
	if len(call.Contents) == 0 {
		return ""
	}
	var out string
	for _, p := range call.Contents[len(call.Contents)-1].Parts {
		if p != nil {
			out += p.Text
		}
	}
	return out
}

// HasImageModality reports whether a call asked for image output.
func HasImageModality(call Call) bool {
	if call.Config == nil {
		return false
	}
	for _, m := range call.Config.ResponseModalities {
		if m == "IMAGE" {
			return true
		}
	}
	return false
}
