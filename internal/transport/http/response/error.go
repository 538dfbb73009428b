package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nakama-dev/auth-backend/internal/domain"
	appCtx "github.com/nakama-dev/auth-backend/internal/pkg/context"
)

// ErrorBody is the error shape every endpoint shares:
// {"success": false, "message": "...", "error": "..."}.
// The error field carries the underlying cause and is included only when
// debug is set (non-production).
type ErrorBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError converts a domain error into a consistent JSON HTTP error
// response. Non-domain errors are treated as internal (500) without leaking
// detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	status := http.StatusInternalServerError
	message := "internal server error"
	detail := ""

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
		if debug && de.Cause != nil {
			detail = de.Cause.Error()
		}
	} else if debug && err != nil {
		detail = err.Error()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorBody{
		Success:   false,
		Message:   message,
		Error:     detail,
		RequestID: appCtx.GetRequestID(r.Context()),
	})
}

// statusFromKind maps domain error kinds to HTTP status codes.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
