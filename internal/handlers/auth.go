package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/calebmoran/weatherdeck/internal/repo"
	"github.com/calebmoran/weatherdeck/internal/validate"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Repo     *repo.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

// ==========================
// Register (validate -> uniqueness -> hash -> create -> serialize)
// ==========================
// Register runs the registration workflow. Validation happens before any
// store access; each later stage short-circuits on failure.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if ferr := validate.Registration(payload); ferr != nil {
		JSONValidationError(w, ferr.Field, ferr.Message())
		return
	}

	// The validator guarantees both values are strings equal to their trimmed
	// form, so they are used as-is from here on.
	username := payload["username"].(string)
	password := payload["password"].(string)

	n, err := h.Repo.CountByUsername(r.Context(), username)
	if err != nil {
		slog.Error("register: uniqueness check failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if n > 0 {
		JSONValidationError(w, "username", "Username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("register: hashing failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Create(r.Context(), username, string(hash))
	if err != nil {
		// Two registrations can race past the count check; the unique
		// constraint settles it and the loser gets the same 422.
		if errors.Is(err, repo.ErrDuplicateUsername) {
			JSONValidationError(w, "username", "Username already taken")
			return
		}
		slog.Error("register: create failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Login (verify bcrypt credentials, issue HS256 JWT)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		slog.Error("login: lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(h.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		slog.Error("login: token signing failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}
