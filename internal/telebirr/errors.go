package telebirr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure in the payment chain so callers can
// decide between retry, abort, and client-error responses without
// parsing messages.
type ErrorKind string

const (
	// KindValidation marks malformed or missing caller input. Never retried.
	KindValidation ErrorKind = "validation"
	// KindConfiguration marks missing credentials or signing key. Fatal.
	KindConfiguration ErrorKind = "configuration"
	// KindNetwork marks requests that got no response at all. Eligible for
	// caller-level retry; never retried here.
	KindNetwork ErrorKind = "network"
	// KindProvider marks requests the remote gateway rejected with a body.
	KindProvider ErrorKind = "provider"
	// KindProtocol marks success statuses carrying an unexpected shape.
	KindProtocol ErrorKind = "protocol"
	// KindSigning marks cryptographic failures. Fatal for the request.
	KindSigning ErrorKind = "signing"
)

// Error is the kinded error returned by every component in this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telebirr: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("telebirr: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds a kinded error from a format string.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a kind and message to an underlying error.
func WrapError(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or "" when err is not a package error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
