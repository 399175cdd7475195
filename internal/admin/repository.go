package admin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incharge-incontrol/backend/internal/models"
)

// ErrUserNotFound indicates no user exists for the lookup.
var ErrUserNotFound = errors.New("user not found")

// Repository handles user management persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListEndUsers returns all end users (admins excluded), without password hashes.
func (r *Repository) ListEndUsers(ctx context.Context) ([]models.UserPublic, error) {
	const q = `SELECT id, name, email, mobile, company, role, access_flag, first_login_required, created_at
		FROM users WHERE role = 'user' ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.UserPublic{}
	for rows.Next() {
		var u models.UserPublic
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Company, &u.Role,
			&u.AccessFlag, &u.FirstLoginRequired, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByEmail returns a user by email, or ErrUserNotFound.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, name, email, mobile, company, password_hash, role, access_flag, first_login_required, created_at, updated_at
		FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Company,
		&u.Password, &u.Role, &u.AccessFlag, &u.FirstLoginRequired, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts an imported end user.
func (r *Repository) Create(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (name, email, mobile, company, password_hash, role, access_flag, first_login_required)
		VALUES ($1, $2, $3, $4, $5, 'user', $6, $7)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, u.Name, u.Email, u.Mobile, u.Company, u.Password,
		u.AccessFlag, u.FirstLoginRequired).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// UpdateProfile applies imported profile changes to an existing user.
func (r *Repository) UpdateProfile(ctx context.Context, u *models.User) error {
	const q = `UPDATE users SET name = $1, mobile = $2, company = $3, access_flag = $4, updated_at = NOW() WHERE id = $5`
	_, err := r.pool.Exec(ctx, q, u.Name, u.Mobile, u.Company, u.AccessFlag, u.ID)
	return err
}
