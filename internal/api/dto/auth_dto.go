package dto

import (
	"time"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest payload for requesting a reset email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// SetPasswordRequest payload for completing a reset.
type SetPasswordRequest struct {
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// SessionResponse is the sanitized session record returned to clients.
type SessionResponse struct {
	ID        string                  `json:"id"`
	OwnerID   string                  `json:"ownerId"`
	UserAgent *string                 `json:"userAgent"`
	Active    bool                    `json:"isActive"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
	Account   *domain.AccountSnapshot `json:"account,omitempty"`
}

// NewSessionResponse maps a session to its response shape.
func NewSessionResponse(session *domain.Session, account *domain.AccountSnapshot) SessionResponse {
	return SessionResponse{
		ID:        session.ID,
		OwnerID:   session.OwnerID,
		UserAgent: session.UserAgent,
		Active:    session.Active,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		Account:   account,
	}
}
