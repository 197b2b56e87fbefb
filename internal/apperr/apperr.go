package apperr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an error into one of the closed set of categories the
// presentation layer switches on.
type Kind int

const (
	// KindValidation is a locally detected input problem. It never reaches
	// the network layer and is fixed by correcting input, not by retrying.
	KindValidation Kind = iota
	// KindAuth signals an expired or rejected credential (HTTP 401).
	KindAuth
	// KindNetwork is any other non-2xx or transport failure.
	KindNetwork
	// KindCancelled marks a superseded or aborted call. Never user-visible.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the tagged error type shared by the API client and the domain
// workflows.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code for KindNetwork errors, 0 otherwise.
	Status int
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Network(status int, message string) *Error {
	return &Error{Kind: KindNetwork, Status: status, Message: message}
}

func Cancelled() *Error {
	return &Error{Kind: KindCancelled, Message: "cancelled"}
}

// Wrap maps an arbitrary error to an *Error. Context cancellation becomes
// KindCancelled; everything else that is not already an *Error becomes a
// status-less network error.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Cancelled()
	}
	return &Error{Kind: KindNetwork, Message: err.Error()}
}

func kindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

func IsAuth(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuth
}

// IsCancelled reports whether err represents a cancelled call, either as a
// tagged *Error or as raw context cancellation bubbling up from the
// transport.
func IsCancelled(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	k, ok := kindOf(err)
	return ok && k == KindCancelled
}
