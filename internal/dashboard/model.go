package dashboard

import "time"

type Summary struct {
	TotalIncome       float64 `json:"totalIncome"`
	TotalExpense      float64 `json:"totalExpense"`
	Balance           float64 `json:"balance"`
	IncomeCount       int64   `json:"incomeCount"`
	ExpenseCount      int64   `json:"expenseCount"`
	ActiveAutomations int64   `json:"activeAutomations"`
}

// CategoryBucket is one row of a category breakdown. Categories with no
// entries are omitted, not zero-filled.
type CategoryBucket struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// MonthlyBucket is one (year, month) cell of a trend series.
type MonthlyBucket struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// Trends reports the income and expense series side by side. The two
// series are independent and not necessarily aligned month for month.
type Trends struct {
	Income  []MonthlyBucket `json:"income"`
	Expense []MonthlyBucket `json:"expense"`
}

// Transaction is a ledger entry tagged with its variant for the merged
// recent-activity view.
type Transaction struct {
	Type     string    `json:"type"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
}
