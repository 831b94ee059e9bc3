package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
	"github.com/spec-kit/admin-portal-service/internal/events"
	"github.com/spec-kit/admin-portal-service/internal/repository"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

const resetSecretBytes = 32

// PasswordResetService issues and consumes single-use reset tokens.
type PasswordResetService struct {
	admins     repository.AdminRepository
	resets     repository.ResetTokenRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	resetTTL   time.Duration
	bcryptCost int
}

// NewPasswordResetService builds the service.
func NewPasswordResetService(admins repository.AdminRepository, resets repository.ResetTokenRepository, dispatcher events.Dispatcher, logger *zap.Logger, resetTTL time.Duration, bcryptCost int) *PasswordResetService {
	if resetTTL <= 0 {
		resetTTL = 5 * time.Minute
	}
	return &PasswordResetService{
		admins:     admins,
		resets:     resets,
		dispatcher: dispatcher,
		logger:     logger,
		resetTTL:   resetTTL,
		bcryptCost: bcryptCost,
	}
}

// Issue invalidates every previously valid token for the owner, stores the
// bcrypt hash of a fresh random secret with a short expiry, and returns the
// raw secret. The raw secret is never persisted.
func (s *PasswordResetService) Issue(ctx context.Context, ownerID string) (string, error) {
	if _, err := s.resets.InvalidateByOwner(ctx, ownerID); err != nil {
		return "", err
	}

	secret, hash, err := s.generateSecret()
	if err != nil {
		return "", err
	}

	token := &domain.ResetPasswordToken{
		OwnerID:   ownerID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(s.resetTTL),
		Valid:     true,
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return "", err
	}
	return secret, nil
}

// Request handles a reset request by email. The response is identical
// whether or not the account exists, and the secret-generation work runs in
// both cases to keep the code paths timing-comparable.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			if _, _, genErr := s.generateSecret(); genErr != nil {
				s.logger.Error("reset secret generation failed", zap.Error(genErr))
			}
			return nil
		}
		return err
	}

	secret, err := s.Issue(ctx, admin.ID)
	if err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventPasswordResetRequested, admin.ID, admin.Email, map[string]any{
			"reset_secret": secret,
		}))
	}
	return nil
}

// Consume validates and burns the owner's reset token. A missing or expired
// token and a mismatched secret both map to the reset-token error; a
// mismatch leaves the stored token valid so the owner can retry within the
// window.
func (s *PasswordResetService) Consume(ctx context.Context, ownerID, rawSecret string) error {
	token, err := s.resets.GetUsableByOwner(ctx, ownerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewResetTokenInvalid()
		}
		return err
	}

	if !auth.ComparePassword(token.TokenHash, rawSecret) {
		return apperrors.NewResetTokenInvalid()
	}

	return s.resets.Invalidate(ctx, token.ID)
}

// SetNewPassword consumes the reset token and replaces the owner's password.
func (s *PasswordResetService) SetNewPassword(ctx context.Context, ownerID, rawSecret, newPassword string) error {
	if err := s.Consume(ctx, ownerID, rawSecret); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.admins.UpdatePassword(ctx, ownerID, hash); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventPasswordChanged, ownerID, "", nil))
	}
	return nil
}

func (s *PasswordResetService) generateSecret() (string, string, error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	secret := hex.EncodeToString(buf)
	hash, err := auth.HashPassword(secret, s.bcryptCost)
	if err != nil {
		return "", "", err
	}
	return secret, hash, nil
}
