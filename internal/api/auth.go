package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/auth"
)

const refreshCookieName = "refresh_token"

// TokenResponse is the body returned by login and refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin authenticates a user from an OAuth2-style password form
// (username field carries the email) and returns an access token, setting
// the refresh token as an HTTP-only cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.Users.ByEmail(r.Context(), email)
	if err != nil || !auth.VerifyPassword(password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, err := h.Tokens.AccessToken(user.Email)
	if err != nil {
		slog.Error("Failed to mint access token", "error", err)
		respondError(w, http.StatusInternalServerError, "Token generation failed")
		return
	}
	refreshToken, err := h.Tokens.RefreshToken(user.Email)
	if err != nil {
		slog.Error("Failed to mint refresh token", "error", err)
		respondError(w, http.StatusInternalServerError, "Token generation failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.Tokens.RefreshTTL() / time.Second),
		HttpOnly: true,
		Secure:   h.Config.CookieSecure,
		SameSite: h.Config.SameSite(),
	})

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}

// HandleRefresh mints a new access token from the refresh cookie. A refresh
// token revoked by logout is rejected even though its signature is valid.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		respondError(w, http.StatusUnauthorized, "Missing refresh token")
		return
	}

	claims, err := h.Tokens.Decode(cookie.Value, auth.TokenTypeRefresh)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if h.Revoked.IsRevoked(r.Context(), claims.ID) {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	accessToken, err := h.Tokens.AccessToken(claims.Subject)
	if err != nil {
		slog.Error("Failed to mint access token", "error", err)
		respondError(w, http.StatusInternalServerError, "Token generation failed")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}

// HandleLogout revokes the caller's refresh token and clears the cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	if cookie, err := r.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if claims, err := h.Tokens.Decode(cookie.Value, auth.TokenTypeRefresh); err == nil && claims.ExpiresAt != nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.Revoked.Revoke(r.Context(), claims.ID, ttl); err != nil {
				slog.Error("Failed to revoke refresh token", "error", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Config.CookieSecure,
		SameSite: h.Config.SameSite(),
	})

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
