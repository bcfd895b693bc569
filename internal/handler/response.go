package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusnotes/campusnotes-api/internal/common"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// decodeBody reads a JSON body into dst and answers the request itself when
// the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// writeError maps err to its status and body. Internal failures are logged
// under op and never described to the client.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string][]common.FieldError{"errors": ve.Fields})
		return
	}

	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "op", op, "error", err)
		writeJSON(w, status, errorResponse("internal server error"))
		return
	}
	writeJSON(w, status, errorResponse(errorMessage(err)))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, common.ErrDuplicateEmail):
		return "User already exists with this email"
	case errors.Is(err, common.ErrInvalidOldPassword):
		return "Old password is incorrect"
	case errors.Is(err, common.ErrUnauthenticated):
		return "Authentication required"
	case errors.Is(err, common.ErrForbidden):
		return "Access denied"
	default:
		return err.Error()
	}
}
