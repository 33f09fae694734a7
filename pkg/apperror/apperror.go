// Package apperror classifies failures so callers can react by kind
// (show a validation hint, send the user to login, retry later) without
// inspecting error strings.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of a failure
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindNetwork    Kind = "network"
	KindDecode     Kind = "decode"
	KindUpstream   Kind = "upstream"
	KindInternal   Kind = "internal"
)

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrAuth) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrDecode     = &Error{Kind: KindDecode}
	ErrUpstream   = &Error{Kind: KindUpstream}
)

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// Validation reports bad input caught before any remote call
func Validation(op, message string) *Error {
	return newError(KindValidation, op, message, nil)
}

// Auth reports a missing, expired or rejected session
func Auth(op, message string) *Error {
	return newError(KindAuth, op, message, nil)
}

// NotFound reports a missing resource
func NotFound(op, message string) *Error {
	return newError(KindNotFound, op, message, nil)
}

// Network wraps a transport failure
func Network(op string, err error) *Error {
	return newError(KindNetwork, op, "backend unreachable", err)
}

// Decode wraps a payload that could not be parsed or validated
func Decode(op string, err error) *Error {
	return newError(KindDecode, op, "malformed payload", err)
}

// Upstream reports a non-2xx answer the backend explained with a message
func Upstream(op string, status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return newError(KindUpstream, op, message, fmt.Errorf("status %d", status))
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of the first *Error in the chain
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "internal error"
}

// HTTPStatus maps a kind to the status the storefront answers with
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindNetwork, KindDecode, KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
