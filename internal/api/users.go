package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/auth"
	"github.com/moshiurmishuk/claim-polygraph-server/internal/store"
)

const minPasswordLength = 6

// RegisterRequest is the body for user registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// HandleRegister creates a new user account.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.Users.Create(r.Context(), req.Email, req.FullName, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("Failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Email: user.Email, FullName: user.FullName})
}

// HandleMe returns the authenticated user's own record.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}
	user := currentUser(r)
	respondJSON(w, http.StatusOK, UserResponse{ID: user.ID, Email: user.Email, FullName: user.FullName})
}
