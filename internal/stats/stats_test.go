package stats

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/calebmoran/weatherdeck/internal/repo"
)

func TestRun_RefreshesOnStart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Run(ctx, repo.NewUserRepo(db)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The initial refresh is synchronous, so the count query has already run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
