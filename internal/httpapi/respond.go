package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/s-urunov-dev/bookstore/internal/apperrors"
)

// WriteJSON serializes payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError emits a plain error message with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{"error": message})
}

// WriteAppError maps a classified error to its HTTP representation.
// Field-tagged errors render as {"error": {"field": "message"}}.
func WriteAppError(w http.ResponseWriter, err error) {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := statusFor(kind)

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Field != "" {
		WriteJSON(w, status, map[string]any{
			"error": map[string]string{appErr.Field: appErr.Message},
		})
		return
	}

	WriteError(w, status, err.Error())
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
