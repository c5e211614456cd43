package keystore

import (
	"errors"
	"fmt"
)

// Kind is the category of a decode failure.
// Callers should branch on Kind rather than matching error strings.
type Kind string

const (
	KindMalformedRecord      Kind = "MalformedRecord"
	KindUnsupportedKDF       Kind = "UnsupportedKdf"
	KindUnsupportedCipher    Kind = "UnsupportedCipher"
	KindAuthenticationFailed Kind = "AuthenticationFailed"
)

// Error is the package's structured error type.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, ErrAuthenticationFailed) works for any failure of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrMalformedRecord      = &Error{Kind: KindMalformedRecord, Message: "malformed keystore record"}
	ErrUnsupportedKDF       = &Error{Kind: KindUnsupportedKDF, Message: "unsupported KDF"}
	ErrUnsupportedCipher    = &Error{Kind: KindUnsupportedCipher, Message: "unsupported cipher"}
	ErrAuthenticationFailed = &Error{Kind: KindAuthenticationFailed, Message: "could not decrypt key with given password"}
)

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return newError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func malformed(format string, args ...interface{}) error {
	return &Error{Kind: KindMalformedRecord, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of a structured error, or "" if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
