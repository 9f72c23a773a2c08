package ai

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrNoCandidates  = errors.New("no image model candidates configured")
)

// StatusError is an upstream failure carrying an HTTP status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Message)
}

// StatusCode reports the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// IsOverloaded reports the transient overload signal, the only retryable condition.
func IsOverloaded(err error) bool {
	return StatusCode(err) == http.StatusServiceUnavailable
}
