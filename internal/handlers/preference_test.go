package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/calebmoran/weatherdeck/internal/models"
	"github.com/calebmoran/weatherdeck/internal/repo"
	"github.com/go-chi/chi/v5"
)

func preferenceRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &PreferenceHandler{Repo: repo.NewUserRepo(db)}
	r := chi.NewRouter()
	r.Get("/users/{id}/metric", h.GetMetric)
	r.Put("/users/{id}/metric", h.SetMetric)
	return r, mock, func() { db.Close() }
}

func TestPreferenceHandler_GetMetric(t *testing.T) {
	r, mock, closeDB := preferenceRouter(t)
	defer closeDB()

	expectGetByID(mock, 1, "bob")

	req := httptest.NewRequest("GET", "/users/1/metric", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var out map[string]bool
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if v, ok := out["metric"]; !ok || !v {
		t.Errorf("unexpected body: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPreferenceHandler_GetMetric_NotFound(t *testing.T) {
	r, mock, closeDB := preferenceRouter(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT id, username, password_hash, metric`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/users/999/metric", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
}

func TestPreferenceHandler_SetMetric(t *testing.T) {
	r, mock, closeDB := preferenceRouter(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE users SET metric`).
		WithArgs(false, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, username, password_hash, metric`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "metric"}).
			AddRow(1, "bob", "hash", false))
	mock.ExpectQuery(`SELECT id, name FROM locations`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	body, _ := json.Marshal(map[string]bool{"metric": false})
	req := httptest.NewRequest("PUT", "/users/1/metric", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Metric {
		t.Errorf("expected metric=false in updated user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPreferenceHandler_SetMetric_MissingFlag(t *testing.T) {
	r, mock, closeDB := preferenceRouter(t)
	defer closeDB()

	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest("PUT", "/users/1/metric", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPreferenceHandler_SetMetric_UnknownUser(t *testing.T) {
	r, mock, closeDB := preferenceRouter(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE users SET metric`).
		WithArgs(true, 999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	body, _ := json.Marshal(map[string]bool{"metric": true})
	req := httptest.NewRequest("PUT", "/users/999/metric", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
}
