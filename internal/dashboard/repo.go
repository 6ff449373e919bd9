package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) Summary(ctx context.Context, userID string) (Summary, error) {
	var s Summary

	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::float8, COUNT(*)
		FROM incomes
		WHERE user_id = $1::uuid`,
		userID,
	).Scan(&s.TotalIncome, &s.IncomeCount)
	if err != nil {
		return Summary{}, err
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::float8, COUNT(*)
		FROM expenses
		WHERE user_id = $1::uuid`,
		userID,
	).Scan(&s.TotalExpense, &s.ExpenseCount)
	if err != nil {
		return Summary{}, err
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM automations
		WHERE user_id = $1::uuid AND is_active`,
		userID,
	).Scan(&s.ActiveAutomations)
	if err != nil {
		return Summary{}, err
	}

	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}

func (r *Repo) categoryBreakdown(ctx context.Context, table, userID string) ([]CategoryBucket, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT category, SUM(amount)::float8 AS total, COUNT(*)
		FROM `+table+`
		WHERE user_id = $1::uuid
		GROUP BY category
		ORDER BY total DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryBucket, 0)
	for rows.Next() {
		var b CategoryBucket
		if err := rows.Scan(&b.Category, &b.Total, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) ExpenseByCategory(ctx context.Context, userID string) ([]CategoryBucket, error) {
	return r.categoryBreakdown(ctx, "expenses", userID)
}

func (r *Repo) IncomeByCategory(ctx context.Context, userID string) ([]CategoryBucket, error) {
	return r.categoryBreakdown(ctx, "incomes", userID)
}

func (r *Repo) monthlySeries(ctx context.Context, table, userID string, since time.Time) ([]MonthlyBucket, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT EXTRACT(YEAR FROM date)::int AS year,
		       EXTRACT(MONTH FROM date)::int AS month,
		       SUM(amount)::float8 AS total
		FROM `+table+`
		WHERE user_id = $1::uuid AND date >= $2
		GROUP BY year, month
		ORDER BY year, month`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthlyBucket, 0)
	for rows.Next() {
		var b MonthlyBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Total); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MonthlyTrends buckets the trailing window by calendar month, income and
// expense independently. Months with no activity are absent from the series.
func (r *Repo) MonthlyTrends(ctx context.Context, userID string, since time.Time) (Trends, error) {
	income, err := r.monthlySeries(ctx, "incomes", userID, since)
	if err != nil {
		return Trends{}, err
	}
	expenseSeries, err := r.monthlySeries(ctx, "expenses", userID, since)
	if err != nil {
		return Trends{}, err
	}
	return Trends{Income: income, Expense: expenseSeries}, nil
}

func (r *Repo) recent(ctx context.Context, table, typ, userID string, limit int) ([]Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id, name, amount::float8, date, category
		FROM `+table+`
		WHERE user_id = $1::uuid
		ORDER BY date DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0, limit)
	for rows.Next() {
		t := Transaction{Type: typ}
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount, &t.Date, &t.Category); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) RecentIncomes(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	return r.recent(ctx, "incomes", "income", userID, limit)
}

func (r *Repo) RecentExpenses(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	return r.recent(ctx, "expenses", "expense", userID, limit)
}
