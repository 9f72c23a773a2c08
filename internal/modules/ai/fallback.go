package ai

import (
	"context"

	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"google.golang.org/genai"
)

type Orchestrator struct {
	factory *Factory
	policy  RetryPolicy
}

func NewOrchestrator(factory *Factory, policy RetryPolicy) *Orchestrator {
	return &Orchestrator{factory: factory, policy: policy}
}

func (o *Orchestrator) Factory() *Factory { return o.factory }

// SendWithFallback sends one image-generation message to each candidate model
// in order. Each candidate gets its own retry budget; the next candidate is
// tried only when the current one stays overloaded. Any other failure is final.
func (o *Orchestrator) SendWithFallback(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	candidates := o.factory.ImageCandidates()
	req := observer.RequestFrom(ctx)
	var lastErr error
	for i, model := range candidates {
		session := o.factory.CreateImageSession(model)
		resp, err := WithRetry(ctx, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
			return session.SendMessage(ctx, parts...)
		}, o.policy)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !IsOverloaded(err) || i == len(candidates)-1 {
			return nil, err
		}
		next := candidates[i+1]
		logs.Logger.Warn().Err(err).Str("request_id", req.ID).Str("flow", req.Flow).
			Str("model", model).Str("next_model", next).Int("attempts", session.Attempts()).
			Msg("model overloaded, falling back")
		o.factory.subject.Notify(observer.EventFallback, &observer.Fallback{
			RequestID: req.ID,
			Flow:      req.Flow,
			From:      model,
			To:        next,
			Err:       err,
		})
	}
	if lastErr == nil {
		lastErr = ErrNoCandidates
	}
	return nil, lastErr
}
