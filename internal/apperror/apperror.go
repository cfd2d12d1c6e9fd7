// Package apperror classifies pipeline failures so callers can pick a
// response status without inspecting raw error text.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInput               Kind = "input"
	KindExtractionDegraded  Kind = "extraction_degraded"
	KindExtractionExhausted Kind = "extraction_exhausted"
	KindModelUnavailable    Kind = "model_unavailable"
	KindEmptyModelResponse  Kind = "empty_model_response"
	KindParseDegraded       Kind = "parse_degraded"
	KindParseExhausted      Kind = "parse_exhausted"
	KindStorage             Kind = "storage"
)

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrInput               = &Error{Kind: KindInput}
	ErrExtractionDegraded  = &Error{Kind: KindExtractionDegraded}
	ErrExtractionExhausted = &Error{Kind: KindExtractionExhausted}
	ErrModelUnavailable    = &Error{Kind: KindModelUnavailable}
	ErrEmptyModelResponse  = &Error{Kind: KindEmptyModelResponse}
	ErrParseDegraded       = &Error{Kind: KindParseDegraded}
	ErrParseExhausted      = &Error{Kind: KindParseExhausted}
	ErrStorage             = &Error{Kind: KindStorage}
)

type Error struct {
	Kind    Kind
	Message string // safe to show to end users
	Err     error
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Fatal reports whether a failure of this kind ends the request.
func (k Kind) Fatal() bool {
	switch k {
	case KindExtractionDegraded, KindParseDegraded:
		return false
	}
	return true
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message returns the user-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// StatusHint buckets an outcome into 200, 400 or 500.
func StatusHint(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case KindInput, KindExtractionExhausted:
		return http.StatusBadRequest
	case KindExtractionDegraded, KindParseDegraded:
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
