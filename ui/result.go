// Package ui holds what the controllers hand to a front end: the tagged
// Result shown in message areas and the renderers for the item table.
package ui

import (
	"errors"
	"time"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "error"
}

// Result is one message for the user. TTL, when non-zero, is how long a front
// end should keep it visible.
type Result struct {
	Kind    Kind
	Message string
	TTL     time.Duration
}

func Success(msg string) Result { return Result{Kind: KindSuccess, Message: msg} }

func Failure(msg string) Result { return Result{Kind: KindFailure, Message: msg} }

func (r Result) OK() bool { return r.Kind == KindSuccess }

// WithTTL returns a copy of r that expires after d.
func (r Result) WithTTL(d time.Duration) Result {
	r.TTL = d
	return r
}

// ServerMessager is implemented by errors that carry the server's own
// explanation of a rejected request.
type ServerMessager interface {
	ServerMessage() string
}

// Invalid marks err as a client-side validation failure whose text is shown
// as-is.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return invalidError{err}
}

type invalidError struct{ error }

func (e invalidError) Unwrap() error { return e.error }

// IsInvalid reports whether err was marked by Invalid.
func IsInvalid(err error) bool {
	var ie invalidError
	return errors.As(err, &ie)
}

// FailureFrom maps err onto a failure Result:
// validation errors show their own text; server rejections show the
// server's message, or rejected when it sent none; anything else is a
// transport problem and shows unreachable.
func FailureFrom(err error, rejected, unreachable string) Result {
	var ie invalidError
	if errors.As(err, &ie) {
		return Failure(ie.Error())
	}
	var sm ServerMessager
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return Failure(msg)
		}
		return Failure(rejected)
	}
	return Failure(unreachable)
}
