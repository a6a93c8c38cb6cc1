package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/logger"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json; charset=utf-8"
)

// appHandler is a handler that reports failures by returning them.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// httpError carries a status code and a public message.
type httpError struct {
	code    int
	message string
	cause   error
}

func (e *httpError) Error() string { return e.message }

func (e *httpError) Unwrap() error { return e.cause }

func badRequest(format string, args ...any) error {
	return &httpError{code: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

// makeHandler adapts an appHandler, translating returned errors into
// JSON error responses.
func makeHandler(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		code, message := classify(err)
		if code >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
		} else {
			logger.Debug("%s %s: %d %v", r.Method, r.URL.Path, code, err)
		}
		respondJSON(w, code, errorResponse{Error: message})
	}
}

func classify(err error) (int, string) {
	var he *httpError
	switch {
	case errors.As(err, &he):
		return he.code, he.message
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedKind):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("encoding response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

// requestLog routes chi's request log lines to the debug log.
type requestLog struct{}

func (requestLog) Print(v ...any) {
	logger.Debug("%s", fmt.Sprint(v...))
}
