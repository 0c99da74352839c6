package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/calebmoran/weatherdeck/internal/repo"
)

// ==========================
// PreferenceHandler
// ==========================
type PreferenceHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// Get Metric Preference
// ==========================
func (h *PreferenceHandler) GetMetric(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			NotFound(w)
			return
		}
		slog.Error("get metric failed", "user_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"metric": user.Metric})
}

// ==========================
// Set Metric Preference
// ==========================
// SetMetric overwrites the flag via a targeted scalar update and responds
// with the updated user record. An unknown user id is a 404.
func (h *PreferenceHandler) SetMetric(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var input struct {
		Metric *bool `json:"metric"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Metric == nil {
		JSONValidationError(w, "metric", "Missing required field")
		return
	}

	if err := h.Repo.SetMetric(r.Context(), id, *input.Metric); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			NotFound(w)
			return
		}
		slog.Error("set metric failed", "user_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			NotFound(w)
			return
		}
		slog.Error("fetch updated user failed", "user_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
