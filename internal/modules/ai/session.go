package ai

import (
	"context"
	"time"

	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"google.golang.org/genai"
)

// Generator is the upstream generateContent call; *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Session is a conversation with one model. Every successful SendMessage
// appends the user turn and the model turn, so later turns see earlier ones.
// A Session belongs to a single request and is not safe for concurrent use.
type Session struct {
	generator Generator
	model     string
	config    *genai.GenerateContentConfig
	history   []*genai.Content
	subject   *observer.Subject
	attempts  int
}

func (s *Session) Model() string { return s.model }

func (s *Session) Modalities() []string { return s.config.ResponseModalities }

// History returns a copy of the turns recorded so far.
func (s *Session) History() []*genai.Content {
	ret := make([]*genai.Content, len(s.history))
	copy(ret, s.history)
	return ret
}

// Attempts is the number of upstream calls made through this session.
func (s *Session) Attempts() int { return s.attempts }

// SendMessage sends parts as a user turn on top of the recorded history.
// Failed calls leave the history unchanged so they can be retried verbatim.
func (s *Session) SendMessage(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	user := &genai.Content{Role: string(genai.RoleUser), Parts: parts}
	contents := append(s.History(), user)

	attempt := s.attempts
	s.attempts++
	start := time.Now()
	resp, err := s.generator.GenerateContent(ctx, s.model, contents, s.config)
	duration := time.Since(start)

	req := observer.RequestFrom(ctx)
	s.subject.Notify(observer.EventModelAttempt, &observer.Attempt{
		RequestID:  req.ID,
		Flow:       req.Flow,
		Model:      s.model,
		Attempt:    attempt,
		StatusCode: StatusCode(err),
		Duration:   duration,
		Err:        err,
		At:         start,
	})
	if err != nil {
		logs.Logger.Error().Err(err).Str("request_id", req.ID).Str("flow", req.Flow).Str("model", s.model).
			Int("attempt", attempt).Int("status_code", StatusCode(err)).Dur("duration", duration).Msg("model request failed")
		return nil, err
	}
	logs.Logger.Info().Str("request_id", req.ID).Str("flow", req.Flow).Str("model", s.model).
		Int("attempt", attempt).Dur("duration", duration).Msg("model request")

	s.history = append(s.history, user)
	if reply := modelTurn(resp); reply != nil {
		s.history = append(s.history, reply)
	}
	return resp, nil
}

func modelTurn(resp *genai.GenerateContentResponse) *genai.Content {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil
	}
	c := resp.Candidates[0].Content
	if c.Role == "" {
		return &genai.Content{Role: string(genai.RoleModel), Parts: c.Parts}
	}
	return c
}
