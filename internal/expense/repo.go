package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("expense not found")

const expenseColumns = `id, user_id, name, amount::float8, date, category, description, created_at, updated_at`

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, exp *Expense) error {
	return r.Pool.QueryRow(
		ctx,
		`INSERT INTO expenses (user_id, name, amount, date, category, description)
         VALUES ($1::uuid, $2, $3, $4, $5, $6)
         RETURNING `+expenseColumns,
		exp.UserID,
		exp.Name,
		exp.Amount,
		exp.Date,
		exp.Category,
		exp.Description,
	).Scan(
		&exp.ID, &exp.UserID, &exp.Name, &exp.Amount, &exp.Date,
		&exp.Category, &exp.Description, &exp.CreatedAt, &exp.UpdatedAt,
	)
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Expense, error) {
	rows, err := r.Pool.Query(
		ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE user_id = $1::uuid
		 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Expense, 0)
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &exp.Name, &exp.Amount, &exp.Date,
			&exp.Category, &exp.Description, &exp.CreatedAt, &exp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, userID, id string) (*Expense, error) {
	var exp Expense
	err := r.Pool.QueryRow(
		ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	).Scan(
		&exp.ID, &exp.UserID, &exp.Name, &exp.Amount, &exp.Date,
		&exp.Category, &exp.Description, &exp.CreatedAt, &exp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, patch Patch) (*Expense, error) {
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

	var exp Expense
	err := r.Pool.QueryRow(
		ctx,
		`UPDATE expenses SET `+strings.Join(set, ", ")+`
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+expenseColumns,
		args...,
	).Scan(
		&exp.ID, &exp.UserID, &exp.Name, &exp.Amount, &exp.Date,
		&exp.Category, &exp.Description, &exp.CreatedAt, &exp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id string) (*Expense, error) {
	var exp Expense
	err := r.Pool.QueryRow(
		ctx,
		`DELETE FROM expenses
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+expenseColumns,
		id, userID,
	).Scan(
		&exp.ID, &exp.UserID, &exp.Name, &exp.Amount, &exp.Date,
		&exp.Category, &exp.Description, &exp.CreatedAt, &exp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *Repository) SumByUser(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.Pool.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(amount), 0)::float8
		 FROM expenses
		 WHERE user_id = $1::uuid`,
		userID,
	).Scan(&total)
	return total, err
}
