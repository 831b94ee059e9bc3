package domain

import "time"

// Session is the server-side record of a logged-in state. A session is tied
// to one owner for its lifetime and can only transition active -> inactive.
type Session struct {
	ID        string
	OwnerID   string
	UserAgent *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
