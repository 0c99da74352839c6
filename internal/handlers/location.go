package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/calebmoran/weatherdeck/internal/repo"
)

// ==========================
// LocationHandler
// ==========================
type LocationHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// List Locations
// ==========================
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
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
		slog.Error("list locations failed", "user_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user.Locations)
}

// ==========================
// Add Location
// ==========================
// AddLocation appends a single entry via a targeted store operation and
// responds with the updated user record. An unknown user id is a 404.
func (h *LocationHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		JSONValidationError(w, "name", "Missing required field")
		return
	}

	if _, err := h.Repo.AddLocation(r.Context(), id, input.Name); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			NotFound(w)
			return
		}
		slog.Error("add location failed", "user_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.respondUpdatedUser(w, r, id)
}

// ==========================
// Remove Location
// ==========================
// RemoveLocation is idempotent: removing an id that is already gone is a
// no-op and still returns the updated user.
func (h *LocationHandler) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var input struct {
		LocationID int `json:"locationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Repo.RemoveLocation(r.Context(), id, input.LocationID); err != nil {
		slog.Error("remove location failed", "user_id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// The delete matches zero rows for an unknown user as well; the re-fetch
	// distinguishes that case and yields the 404.
	h.respondUpdatedUser(w, r, id)
}

func (h *LocationHandler) respondUpdatedUser(w http.ResponseWriter, r *http.Request, id int) {
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
