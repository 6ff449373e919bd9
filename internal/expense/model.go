package expense

import "time"

type Expense struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Name        string    `db:"name" json:"name"`
	Amount      float64   `db:"amount" json:"amount"`
	Date        time.Time `db:"date" json:"date"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Date        *string `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// UpdateRequest is a partial update: only non-nil fields are applied.
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
}

// Patch carries the validated, type-converted fields down to the store.
type Patch struct {
	Name        *string
	Amount      *float64
	Date        *time.Time
	Category    *string
	Description *string
}
