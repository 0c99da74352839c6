package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/calebmoran/weatherdeck/internal/models"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup or targeted update matches no user.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when the users.username unique constraint
// rejects a create. The constraint is the authoritative uniqueness guard; the
// application-level pre-check only exists for a friendlier error path.
var ErrDuplicateUsername = errors.New("username already taken")

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, metric
	`

	user := &models.User{Locations: []models.Location{}}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&user.ID, &user.Username, &user.Metric)

	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == pqUniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, metric
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Metric)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.Locations, err = r.loadLocations(ctx, id); err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, metric
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Metric)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.Locations, err = r.loadLocations(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Count By Username
// ==========================
func (r *UserRepo) CountByUsername(ctx context.Context, username string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ==========================
// Count Users
// ==========================
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ==========================
// Add Location (targeted append)
// ==========================
// AddLocation appends a single locations row for the user. The statement is
// atomic on its own; no other user field is read or rewritten. A foreign key
// violation means the user does not exist.
func (r *UserRepo) AddLocation(ctx context.Context, userID int, name string) (*models.Location, error) {
	query := `
		INSERT INTO locations (user_id, name)
		VALUES ($1, $2)
		RETURNING id, name
	`

	loc := &models.Location{}

	err := r.DB.QueryRowContext(ctx, query, userID, name).
		Scan(&loc.ID, &loc.Name)

	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == pqForeignKeyViolation {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return loc, nil
}

// ==========================
// Remove Location (targeted remove)
// ==========================
// RemoveLocation is idempotent: deleting an id that is no longer present
// affects zero rows and is not an error.
func (r *UserRepo) RemoveLocation(ctx context.Context, userID, locationID int) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM locations WHERE id = $1 AND user_id = $2`, locationID, userID)
	return err
}

// ==========================
// Set Metric (targeted scalar set)
// ==========================
func (r *UserRepo) SetMetric(ctx context.Context, userID int, metric bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET metric = $1 WHERE id = $2`, metric, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// loadLocations returns the user's locations in insertion order. The slice is
// non-nil so an empty list serializes as [].
func (r *UserRepo) loadLocations(ctx context.Context, userID int) ([]models.Location, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name FROM locations WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}
