package feed

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned when required input is missing or malformed.
// No network call is made in that case.
var ErrInvalidRequest = errors.New("invalid request")

// UpstreamError reports a feed source that answered with a non-success status
// or could not be reached at all.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream feed returned status %d", e.StatusCode)
}

// ParseError reports a successful upstream response whose body could not be
// interpreted as a feed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
