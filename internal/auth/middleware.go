package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

// HeaderName carries the assertion on protected requests.
const HeaderName = "x-auth-token"

type contextKey struct{}

// Middleware rejects requests without a valid assertion and injects the
// verified Identity into the request context for downstream handlers.
// Missing header is 401, unverifiable token is 400; neither is retried.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderName)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			ident, err := tokens.Verify(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid token.")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext extracts the identity set by Middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(Identity)
	return ident, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
