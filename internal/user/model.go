package user

import "time"

// User is a persisted identity record. The password hash never serializes.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     *string   `db:"last_name" json:"lastName,omitempty"`
	Email        string    `db:"email" json:"emailId"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
