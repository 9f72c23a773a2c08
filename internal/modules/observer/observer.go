package observer

import (
	"context"
	"time"
)

type Event string

const (
	EventModelAttempt Event = "model_attempt"
	EventFallback     Event = "model_fallback"
)

type Observer interface {
	Update(event Event, data interface{})
}

type Subject struct {
	observers []Observer
}

func NewSubject(observers ...Observer) *Subject {
	return &Subject{observers: observers}
}

func (s *Subject) Notify(event Event, data interface{}) {
	if s == nil {
		return
	}
	for _, o := range s.observers {
		o.Update(event, data)
	}
}

// Attempt describes one upstream model call.
type Attempt struct {
	RequestID  string
	Flow       string
	Model      string
	Attempt    int
	StatusCode int
	Duration   time.Duration
	Err        error
	At         time.Time
}

// Fallback describes advancing from one candidate model to the next.
type Fallback struct {
	RequestID string
	Flow      string
	From      string
	To        string
	Err       error
}

type requestKey struct{}

type Request struct {
	ID   string
	Flow string
}

func WithRequest(ctx context.Context, r Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

func RequestFrom(ctx context.Context) Request {
	r, _ := ctx.Value(requestKey{}).(Request)
	return r
}
