package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/eleven-am/squall/internal/auth"
	"github.com/eleven-am/squall/internal/model"
)

type contextKey string

const principalKey contextKey = "principal"

// requireAuth resolves the bearer token to a Principal and stores it on the
// request context. Requests without a valid token get a 401.
func requireAuth(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				errorJSON(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			principal, err := provider.Authenticate(r.Context(), token)
			if err != nil {
				errorJSON(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func principalFrom(r *http.Request) model.Principal {
	principal, _ := r.Context().Value(principalKey).(model.Principal)
	return principal
}
