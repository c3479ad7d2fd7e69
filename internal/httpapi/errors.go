package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmynk/shophub/internal/auth"
	"github.com/mmynk/shophub/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors auth.ValidationErrors `json:"errors"`
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	var verrs auth.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, service.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	var verrs auth.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, status, validationResponse{Errors: verrs})
		return
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("Internal error", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}
