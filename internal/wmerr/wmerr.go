// Package wmerr defines the closed set of error kinds the window manager's
// components use to report failure, per spec §7. No panics are used for
// policy refusals; every fallible operation returns one of these kinds (or
// nil) explicitly.
package wmerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the purposes of IPC reply shaping and
// fatal/non-fatal classification (see Fatal).
type Kind int

const (
	// KindNone is the zero value; never attached to a real error.
	KindNone Kind = iota
	// KindProtocol indicates a DisplayBackend request failed.
	KindProtocol
	// KindInvariant indicates a detected tree inconsistency. Classed as
	// fatal by Kind.Fatal.
	KindInvariant
	// KindParse indicates a bad command or config. Reported; execution
	// of the remaining command batch continues.
	KindParse
	// KindCriteriaMismatch indicates a command carried [...] criteria but
	// no container matched. Returns success:false over IPC.
	KindCriteriaMismatch
	// KindResourceUnavailable indicates a pixmap/GC allocation failed.
	// Fatal, like KindInvariant.
	KindResourceUnavailable
	// KindPolicyRefusal indicates a command was well-formed but refused
	// by policy (fullscreen focus boundary, minimum resize size, etc).
	// Returns success:false with a message, not fatal.
	KindPolicyRefusal
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "ProtocolError"
	case KindInvariant:
		return "InvariantViolation"
	case KindParse:
		return "ParseError"
	case KindCriteriaMismatch:
		return "CriteriaMismatch"
	case KindResourceUnavailable:
		return "ResourceUnavailable"
	case KindPolicyRefusal:
		return "PolicyRefusal"
	default:
		return "none"
	}
}

// Fatal reports whether this kind is classed as fatal (InvariantViolation
// and ResourceUnavailable). Nothing in this module acts on it: a fatal
// error from a command reaches the IPC client as an ordinary failure reply,
// and the event loop keeps running.
func (k Kind) Fatal() bool {
	return k == KindInvariant || k == KindResourceUnavailable
}

// Error is the single error type used across package boundaries in this
// module. Callers type-assert or use As/Is with errors.As to recover Kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind around an existing error.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, otherwise returns KindNone.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
