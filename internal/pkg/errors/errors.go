// Package errors classifies failures into the kinds the HTTP layer knows
// how to answer and writes them as {"error": "..."} bodies.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/strogmv/postapi/internal/pkg/logger"
)

type Kind int

const (
	KindUpstreamFailure Kind = iota
	KindInvalidInput
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	default:
		return "upstream_failure"
	}
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func InvalidInput(message string) *AppError {
	return New(KindInvalidInput, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

// Upstream wraps a dependency failure. The cause is logged, never sent to
// the client.
func Upstream(message string, err error) *AppError {
	return &AppError{Kind: KindUpstreamFailure, Message: message, Err: err}
}

// KindOf reports the kind of the first *AppError in err's chain.
// Unclassified errors are upstream failures.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUpstreamFailure
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError answers the request with the status for err's kind.
// Upstream failures are logged and answered with fallback instead of the
// underlying message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	kind := KindOf(err)
	message := fallback

	var appErr *AppError
	if kind != KindUpstreamFailure && stderrors.As(err, &appErr) {
		message = appErr.Message
	}

	log := logger.From(r.Context()).With(
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"kind", kind.String(),
	)
	if kind == KindUpstreamFailure {
		log.Error(fallback, "error", err)
	} else {
		log.Debug("request rejected", "error", err)
	}

	WriteJSON(w, kind.Status(), errorBody{Error: message})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
