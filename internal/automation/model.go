package automation

import "time"

// Automation is a recurring-charge template. The frequency is informational
// in this service: materialization happens only on an explicit process call.
type Automation struct {
	ID                string     `db:"id" json:"id"`
	UserID            string     `db:"user_id" json:"userId"`
	Name              string     `db:"name" json:"name"`
	Amount            float64    `db:"amount" json:"amount"`
	Frequency         string     `db:"frequency" json:"frequency"`
	Category          string     `db:"category" json:"category"`
	StartDate         time.Time  `db:"start_date" json:"startDate"`
	EndDate           *time.Time `db:"end_date" json:"endDate,omitempty"`
	IsActive          bool       `db:"is_active" json:"isActive"`
	LastProcessedDate *time.Time `db:"last_processed_date" json:"lastProcessedDate,omitempty"`
	Description       string     `db:"description" json:"description"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Frequency   string  `json:"frequency"`
	Category    string  `json:"category"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
}

// UpdateRequest is a partial update: only non-nil fields are applied.
type UpdateRequest struct {
	Name        *string  `json:"name"`
	Amount      *float64 `json:"amount"`
	Frequency   *string  `json:"frequency"`
	Category    *string  `json:"category"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	IsActive    *bool    `json:"isActive"`
	Description *string  `json:"description"`
}

// Patch carries the validated, type-converted fields down to the store.
type Patch struct {
	Name        *string
	Amount      *float64
	Frequency   *string
	Category    *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
	Description *string
}
