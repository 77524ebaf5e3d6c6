package annotator

import (
	"fmt"
	"strconv"
	"time"
)

// UnavailableError indicates an annotator backend is overloaded or rate
// limited (HTTP 429/503) and should not be retried before RetryAfter.
type UnavailableError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// NewUnavailableError creates an UnavailableError. If retryAfterSecs is 0, defaults to 30s.
func NewUnavailableError(provider string, err error, retryAfterSecs int) *UnavailableError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 30
	}
	return &UnavailableError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
