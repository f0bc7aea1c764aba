package http1

import "fmt"

// ErrorKind classifies a message parsing error. An ErrorKind is itself an
// error, and a *RequestError unwraps to its kind.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	InvalidRequest ErrorKind = iota + 1 // malformed start line or empty message
	InvalidHeader                       // malformed header line
	InvalidMethod                       // unrecognized request method
	InvalidVersion                      // unrecognized protocol version
	InvalidStatus                       // unrecognized response status code
)

var errorStr = [...]string{
	0:              "unknown error",
	InvalidRequest: "invalid request",
	InvalidHeader:  "invalid header",
	InvalidMethod:  "invalid method",
	InvalidVersion: "invalid version",
	InvalidStatus:  "invalid status",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorStr) {
		return errorStr[0]
	}
	return errorStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// RequestError is the concrete type of errors reported by ParseRequest and
// ParseResponse.
type RequestError struct {
	Kind    ErrorKind
	Message string
}

func errorf(kind ErrorKind, msg string, args ...any) *RequestError {
	return &RequestError{Kind: kind, Message: fmt.Sprintf(msg, args...)}
}

// Error satisfies the error interface.
func (e *RequestError) Error() string { return e.Kind.String() + ": " + e.Message }

// Unwrap supports error wrapping.
func (e *RequestError) Unwrap() error { return e.Kind }
