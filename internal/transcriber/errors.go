package transcriber

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// FatalError marks an error as non-recoverable for the current invocation.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	if e == nil || e.Err == nil {
		return "fatal transcription error"
	}
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RetryableError marks an error a future retry policy could recover
// from (rate limits, transient upstream failures). No retries are
// performed today; the marker lets callers branch on failure kind.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	if e == nil || e.Err == nil {
		return "retryable transcription error"
	}
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewFatalError(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

func NewRetryableError(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

func IsRetryable(err error) bool {
	var retryable *RetryableError
	return errors.As(err, &retryable)
}

// classify wraps an API error with the failure kind a caller can branch
// on: 429 and 5xx are retryable, everything else is fatal.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return NewRetryableError(err)
		case apiErr.HTTPStatusCode >= 500:
			return NewRetryableError(err)
		}
	}
	return NewFatalError(err)
}
