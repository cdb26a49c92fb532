package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/auth"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// requireAuth wraps a handler so it only runs for requests carrying a valid
// bearer access token belonging to a known user. The user record is placed
// on the request context for the wrapped handler.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := h.Tokens.Decode(token, auth.TokenTypeAccess)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := h.Users.ByEmail(r.Context(), claims.Subject)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// currentUser returns the authenticated user stored by requireAuth.
func currentUser(r *http.Request) *store.User {
	user, _ := r.Context().Value(userContextKey).(*store.User)
	return user
}
