package domain

import "time"

// Skill is a portfolio skill entry managed by admins.
type Skill struct {
	ID        string
	Name      string
	Level     int
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
