package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("automation not found")

const automationColumns = `id, user_id, name, amount::float8, frequency, category,
	start_date, end_date, is_active, last_processed_date, description, created_at, updated_at`

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func scanAutomation(row pgx.Row, a *Automation) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Amount, &a.Frequency, &a.Category,
		&a.StartDate, &a.EndDate, &a.IsActive, &a.LastProcessedDate,
		&a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (r *Repository) Insert(ctx context.Context, a *Automation) error {
	row := r.Pool.QueryRow(
		ctx,
		`INSERT INTO automations (user_id, name, amount, frequency, category, start_date, end_date, description)
         VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
         RETURNING `+automationColumns,
		a.UserID, a.Name, a.Amount, a.Frequency, a.Category, a.StartDate, a.EndDate, a.Description,
	)
	return scanAutomation(row, a)
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Automation, error) {
	rows, err := r.Pool.Query(
		ctx,
		`SELECT `+automationColumns+`
		 FROM automations
		 WHERE user_id = $1::uuid
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Automation, 0)
	for rows.Next() {
		var a Automation
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Amount, &a.Frequency, &a.Category,
			&a.StartDate, &a.EndDate, &a.IsActive, &a.LastProcessedDate,
			&a.Description, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, userID, id string) (*Automation, error) {
	var a Automation
	row := r.Pool.QueryRow(
		ctx,
		`SELECT `+automationColumns+`
		 FROM automations
		 WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	)
	if err := scanAutomation(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, patch Patch) (*Automation, error) {
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
	if patch.Frequency != nil {
		add("frequency", *patch.Frequency)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}

	var a Automation
	row := r.Pool.QueryRow(
		ctx,
		`UPDATE automations SET `+strings.Join(set, ", ")+`
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+automationColumns,
		args...,
	)
	if err := scanAutomation(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id string) (*Automation, error) {
	var a Automation
	row := r.Pool.QueryRow(
		ctx,
		`DELETE FROM automations
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+automationColumns,
		id, userID,
	)
	if err := scanAutomation(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Toggle flips is_active in a single statement, relying on the store's
// per-row atomicity.
func (r *Repository) Toggle(ctx context.Context, userID, id string) (*Automation, error) {
	var a Automation
	row := r.Pool.QueryRow(
		ctx,
		`UPDATE automations
		 SET is_active = NOT is_active, updated_at = now()
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+automationColumns,
		id, userID,
	)
	if err := scanAutomation(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// StampProcessed records the materialization time on the automation.
func (r *Repository) StampProcessed(ctx context.Context, userID, id string, at time.Time) (*Automation, error) {
	var a Automation
	row := r.Pool.QueryRow(
		ctx,
		`UPDATE automations
		 SET last_processed_date = $3, updated_at = now()
		 WHERE id = $1::uuid AND user_id = $2::uuid
		 RETURNING `+automationColumns,
		id, userID, at,
	)
	if err := scanAutomation(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

