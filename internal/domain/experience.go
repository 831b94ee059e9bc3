package domain

import "time"

// Experience is a portfolio work/education entry managed by admins.
type Experience struct {
	ID          string
	Title       string
	Company     string
	Description string
	StartedAt   time.Time
	EndedAt     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
