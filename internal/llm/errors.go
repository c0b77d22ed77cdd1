package llm

import "errors"

var (
	// ErrNotConfigured indicates no API key is set, so no call was attempted.
	ErrNotConfigured = errors.New("llm api key not configured")

	// ErrUnavailable indicates the completion endpoint could not be reached.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUpstream indicates the endpoint answered with a non-success status.
	ErrUpstream = errors.New("llm endpoint returned an error")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
