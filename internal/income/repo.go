package income

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("income not found")

const incomeColumns = `id, user_id, name, amount::float8, date, category, description, created_at, updated_at`

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, inc *Income) error {
	return r.Pool.QueryRow(
		ctx,
		`INSERT INTO incomes (user_id, name, amount, date, category, description)
         VALUES ($1::uuid, $2, $3, $4, $5, $6)
         RETURNING `+incomeColumns,
		inc.UserID,
		inc.Name,
		inc.Amount,
		inc.Date,
		inc.Category,
		inc.Description,
	).Scan(
		&inc.ID, &inc.UserID, &inc.Name, &inc.Amount, &inc.Date,
		&inc.Category, &inc.Description, &inc.CreatedAt, &inc.UpdatedAt,
	)
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Income, error) {
	rows, err := r.Pool.Query(
		ctx,
		`SELECT `+incomeColumns+`
		 FROM incomes
		 WHERE user_id = $1::uuid
		 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Income, 0)
	for rows.Next() {
		var inc Income
		if err := rows.Scan(
			&inc.ID, &inc.UserID, &inc.Name, &inc.Amount, &inc.Date,
			&inc.Category, &inc.Description, &inc.CreatedAt, &inc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, userID, id string) (*Income, error) {
	var inc Income
	err := r.Pool.QueryRow(
		ctx,
		`SELECT `+incomeColumns+`
		 FROM incomes
		 WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	).Scan(
		&inc.ID, &inc.UserID, &inc.Name, &inc.Amount, &inc.Date,
		&inc.Category, &inc.Description, &inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inc, nil
}

// Update applies only the fields present in the patch. The row is matched
// by both id and owner so a foreign id reads as not found.
func (r *Repository) Update(ctx context.Context, userID, id string, patch Patch) (*Income, error) {
	set := []string{"updated_at = now()"}
	args := []interface{}{id, userID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}

	var inc Income
	err := r.Pool.QueryRow(
		ctx,
		`UPDATE incomes SET `+strings.Join(set, ", ")+`
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+incomeColumns,
		args...,
	).Scan(
		&inc.ID, &inc.UserID, &inc.Name, &inc.Amount, &inc.Date,
		&inc.Category, &inc.Description, &inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inc, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id string) (*Income, error) {
	var inc Income
	err := r.Pool.QueryRow(
		ctx,
		`DELETE FROM incomes
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+incomeColumns,
		id, userID,
	).Scan(
		&inc.ID, &inc.UserID, &inc.Name, &inc.Amount, &inc.Date,
		&inc.Category, &inc.Description, &inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inc, nil
}

func (r *Repository) SumByUser(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.Pool.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(amount), 0)::float8
		 FROM incomes
		 WHERE user_id = $1::uuid`,
		userID,
	).Scan(&total)
	return total, err
}

// HasAny reports whether the user owns at least one income entry. Expense
// creation is gated on this.
func (r *Repository) HasAny(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM incomes WHERE user_id = $1::uuid)`,
		userID,
	).Scan(&exists)
	return exists, err
}
