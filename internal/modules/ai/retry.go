package ai

import (
	"context"
	"time"

	"github.com/reusedev/room-stager/internal/modules/logs"
)

type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:   3,
	InitialDelay: time.Second,
}

// Delay is the wait before retry number attempt (0-based): InitialDelay * 2^attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.InitialDelay << uint(attempt)
}

// WithRetry runs op up to MaxRetries+1 times, retrying only while it fails with
// the overload status. Any other failure is returned at once.
func WithRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error), policy ...RetryPolicy) (T, error) {
	p := DefaultRetryPolicy
	if len(policy) > 0 {
		p = policy[0]
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	var (
		ret T
		err error
	)
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		ret, err = op(ctx)
		if err == nil {
			return ret, nil
		}
		if !IsOverloaded(err) || attempt == p.MaxRetries {
			return ret, err
		}
		delay := p.Delay(attempt)
		logs.Logger.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("upstream overloaded, retrying")
		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ret, ctx.Err()
		}
	}
	return ret, err
}
