package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one ledger row flattened for a statement, either variant.
type Entry struct {
	Type     string
	ID       string
	Name     string
	Amount   float64
	Date     time.Time
	Category string
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const statementRowLimit = 2000

// EntriesBetween returns both ledgers merged, newest first.
func (r *Repository) EntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]Entry, error) {
	rows, err := r.Pool.Query(ctx, `
SELECT type, id, name, amount, date, category
FROM (
  SELECT 'income' AS type, id::text AS id, name, amount::float8 AS amount, date, category, created_at
  FROM incomes
  WHERE user_id = $1 AND date >= $2 AND date < $3

  UNION ALL

  SELECT 'expense' AS type, id::text AS id, name, amount::float8 AS amount, date, category, created_at
  FROM expenses
  WHERE user_id = $1 AND date >= $2 AND date < $3
) t
ORDER BY date DESC, created_at DESC
LIMIT $4`,
		userID, from, to, statementRowLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Type, &e.ID, &e.Name, &e.Amount, &e.Date, &e.Category); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TotalsBetween sums each ledger over the window.
func (r *Repository) TotalsBetween(ctx context.Context, userID string, from, to time.Time) (income, expense float64, err error) {
	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::float8
		FROM incomes
		WHERE user_id = $1 AND date >= $2 AND date < $3`,
		userID, from, to,
	).Scan(&income)
	if err != nil {
		return 0, 0, err
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::float8
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3`,
		userID, from, to,
	).Scan(&expense)
	if err != nil {
		return 0, 0, err
	}
	return income, expense, nil
}
