package domain

import "time"

// ResetPasswordToken stores the bcrypt hash of a single-use reset secret.
// The raw secret is only ever handed to the mailer.
type ResetPasswordToken struct {
	ID        string
	OwnerID   string
	TokenHash string
	ExpiresAt time.Time
	Valid     bool
	CreatedAt time.Time
}
