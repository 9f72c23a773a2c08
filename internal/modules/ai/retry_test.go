package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestWithRetrySucceedsFirstCall(t *testing.T) {
	calls := 0
	start := time.Now()
	ret, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", ret)
	require.Equal(t, 1, calls)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWithRetryExhaustsOnOverload(t *testing.T) {
	calls := 0
	start := time.Now()
	_, err := WithRetry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, &StatusError{Code: http.StatusServiceUnavailable, Message: "overloaded"}
	}, RetryPolicy{MaxRetries: 2, InitialDelay: 10 * time.Millisecond})
	require.Error(t, err)
	require.True(t, IsOverloaded(err))
	require.Equal(t, 3, calls)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWithRetryPropagatesLastFailure(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, &StatusError{Code: http.StatusServiceUnavailable, Message: string(rune('a' + calls))}
	}, RetryPolicy{MaxRetries: 1, InitialDelay: time.Millisecond})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "c", se.Message)
}

func TestWithRetryDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	start := time.Now()
	_, err := WithRetry(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, genai.APIError{Code: http.StatusBadRequest, Message: "bad request"}
	}, RetryPolicy{MaxRetries: 3, InitialDelay: time.Second})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, StatusCode(err))
	require.Equal(t, 1, calls)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWithRetryRecovers(t *testing.T) {
	calls := 0
	ret, err := WithRetry(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", genai.APIError{Code: http.StatusServiceUnavailable}
		}
		return "done", nil
	}, RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond})
	require.NoError(t, err)
	require.Equal(t, "done", ret)
	require.Equal(t, 3, calls)
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := WithRetry(ctx, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, &StatusError{Code: http.StatusServiceUnavailable}
	}, RetryPolicy{MaxRetries: 3, InitialDelay: time.Hour})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Second}
	require.Equal(t, time.Second, p.Delay(0))
	require.Equal(t, 2*time.Second, p.Delay(1))
	require.Equal(t, 4*time.Second, p.Delay(2))
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, 0, StatusCode(nil))
	require.Equal(t, 0, StatusCode(errors.New("boom")))
	require.Equal(t, 503, StatusCode(&genai.APIError{Code: 503}))
	require.True(t, IsOverloaded(errors.Join(errors.New("wrapped"), genai.APIError{Code: 503})))
	require.False(t, IsOverloaded(&StatusError{Code: 500}))
}
