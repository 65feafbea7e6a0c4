// Package errors holds the classified error type the content fetch
// pipeline returns, so callers can tell "sign in again" apart from
// "no internet" apart from "the server sent garbage".
package errors

import (
	"errors"
	"fmt"
)

// Kind buckets every failure a fetch can surface.
type Kind string

const (
	// KindNetwork means no response reached us at all.
	KindNetwork Kind = "network"
	// KindAuth is a 401: the session is missing or expired.
	KindAuth Kind = "auth"
	// KindEntitlement is a 403: the account has no active plan for
	// the content.
	KindEntitlement Kind = "entitlement"
	// KindHTTP is any other non-2xx status.
	KindHTTP Kind = "http"
	// KindFormat means the body wasn't JSON, or was JSON in a shape
	// we don't recognize.
	KindFormat Kind = "format"
)

// Error is the classified error crossing the pipeline boundary. A
// fetch returns either data or one of these, never both.
type Error struct {
	Kind   Kind
	Status int   // HTTP status, when a response was received
	Err    error // The error this wraps
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an [Error] from its arguments: a [Kind], an int status,
// and a string or error message, in any order.
func E(args ...any) *Error {
	ret := &Error{
		Kind: KindHTTP,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			ret.Kind = arg
		case int:
			ret.Status = arg
		case string:
			ret.Err = errors.New(arg)
		case error:
			ret.Err = arg
		}
	}

	return ret
}

// KindOf extracts the classification from err. The second return is
// false when err carries no classification.
func KindOf(err error) (Kind, bool) {
	e := &Error{}
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return "", false
}
