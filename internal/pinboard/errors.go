package pinboard

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates a missing or rejected API token.
var ErrUnauthorized = errors.New("authentication token missing or invalid")

// RemoteError reports an unexpected response from the API.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pinboard %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("pinboard %s: unexpected HTTP %d", e.Endpoint, e.StatusCode)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// TransportError reports a request that never got a response.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pinboard %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
