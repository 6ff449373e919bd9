package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

// Create inserts the user and fills the generated id and timestamps.
// A concurrent signup with the same email loses to the unique index and
// surfaces as ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, u *User) error {
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash)
         VALUES ($1, $2, lower($3), $4)
         RETURNING id, email, created_at, updated_at`,
		u.FirstName,
		u.LastName,
		strings.TrimSpace(u.Email),
		u.PasswordHash,
	).Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail returns the user including the password hash, for login.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.Pool.QueryRow(
		ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
         FROM users
         WHERE email = lower($1)`,
		strings.TrimSpace(email),
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID resolves a session subject. The password hash is excluded from
// the projection.
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.Pool.QueryRow(
		ctx,
		`SELECT id, first_name, last_name, email, created_at, updated_at
         FROM users
         WHERE id = $1::uuid`,
		id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
