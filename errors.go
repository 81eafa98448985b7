package n3rgy

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package is an *Error whose Kind
// is one of these, so callers can branch with errors.Is.
var (
	ErrTransport       = errors.New("transport failure")
	ErrDecode          = errors.New("response is not valid JSON")
	ErrMissingEnvelope = errors.New("could not retrieve 'values' property from response")
	ErrURLConstruction = errors.New("invalid request URL")
	ErrTimestampParse  = errors.New("invalid timestamp in record")
	ErrCredential      = errors.New("authorization unavailable")
)

// Error describes a failed retrieval.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Op is the request path or operation that failed.
	Op string
	// StatusCode is the HTTP status of the response, when one was received.
	StatusCode int
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "n3rgy: " + msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
