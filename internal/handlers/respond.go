package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/auth"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respondJSON: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the core error kinds to HTTP statuses.
// Anything unrecognized is logged and surfaced generically.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, apperr.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, apperr.ErrQuotaExceeded):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrImmutableDemo):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials), errors.Is(err, apperr.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrInvalidToken):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// setAuthToken mirrors the token response headers the frontend expects.
func setAuthToken(w http.ResponseWriter, token string) {
	w.Header().Set(auth.HeaderName, token)
	w.Header().Set("access-control-expose-headers", auth.HeaderName)
}

// identity pulls the auth context installed by the middleware; protected
// routes always have one, so absence is an internal wiring error.
func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
	}
	return ident, ok
}
