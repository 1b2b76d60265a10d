package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eleven-am/squall/internal/auth"
	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/policy"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.HTTP().Error("failed to encode response", "error", err)
		}
	}
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps the policy taxonomy onto response codes: NotFound 404,
// Forbidden 403, Conflict 422. Anything else is a 500 with no detail leaked.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policy.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, policy.ErrForbidden):
		errorJSON(w, http.StatusForbidden, "operation not permitted")
	case errors.Is(err, policy.ErrConflict):
		errorJSON(w, http.StatusUnprocessableEntity, "request could not be processed")
	case errors.Is(err, auth.ErrUnauthenticated):
		errorJSON(w, http.StatusUnauthorized, "unauthenticated")
	default:
		logger.HTTP().Error("request failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}
