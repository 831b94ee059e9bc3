package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
	"github.com/spec-kit/admin-portal-service/internal/events"
	"github.com/spec-kit/admin-portal-service/internal/repository"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

// AuthService coordinates credential verification and the session lifecycle.
type AuthService struct {
	admins     repository.AdminRepository
	sessions   repository.SessionRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AdminRepo   repository.AdminRepository
	SessionRepo repository.SessionRepository
	TokenMgr    *auth.TokenManager
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:     deps.AdminRepo,
		sessions:   deps.SessionRepo,
		tokens:     deps.TokenMgr,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// LoginResult carries everything the transport needs to answer a successful
// login: a sanitized session record and both signed credentials.
type LoginResult struct {
	Session          *domain.Session
	Account          domain.AccountSnapshot
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Authenticate checks an email/password pair against the stored hash. A
// missing account, a disabled account and a wrong password all produce the
// same generic failure so callers cannot enumerate emails.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if !admin.Active {
		return nil, apperrors.NewInvalidCredentials()
	}
	if !auth.ComparePassword(admin.PasswordHash, password) {
		return nil, apperrors.NewInvalidCredentials()
	}
	return admin, nil
}

// Login verifies credentials, opens a new session, enforces the
// single-active-session policy and signs both credentials.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent string) (*LoginResult, error) {
	admin, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{OwnerID: admin.ID, Active: true}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	// Revoke every other active session before the response is written so
	// the single-active-session invariant holds at the moment the new
	// credentials become usable. Failure here is logged, not fatal: the
	// login itself already succeeded.
	if _, err := s.sessions.DeactivateOthers(ctx, admin.ID, session.ID); err != nil {
		s.logger.Error("failed to deactivate previous sessions",
			zap.String("owner_id", admin.ID), zap.Error(err))
	}

	account := admin.Snapshot()
	accessToken, accessExp, err := s.tokens.SignAccessToken(account, session.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokens.SignRefreshToken(admin.ID, session.ID)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventLoginSucceeded, admin.ID, admin.Email, map[string]any{
			"session_id": session.ID,
			"user_agent": userAgent,
		}))
	}

	return &LoginResult{
		Session:          session,
		Account:          account,
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Logout deactivates every active session owned by the account. Logging out
// with no active sessions is a no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, ownerID string) error {
	revoked, err := s.sessions.DeactivateByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if revoked > 0 && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventSessionRevoked, ownerID, "", map[string]any{
			"revoked": revoked,
		}))
	}
	return nil
}

// Refresh mints a new access token from a refresh token. It fails closed:
// any invalid, expired or incomplete refresh token, any missing or inactive
// session, and any missing or disabled account all yield ok=false. The
// account snapshot is re-read from persistence so role or profile changes
// made since the refresh token was issued are reflected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, bool) {
	result := s.tokens.Verify(refreshToken)
	if !result.Valid || result.Claims.SessionID == "" || result.Claims.AccountID == "" {
		return "", false
	}

	session, err := s.sessions.GetByID(ctx, result.Claims.SessionID)
	if err != nil || !session.Active || session.OwnerID != result.Claims.AccountID {
		return "", false
	}

	admin, err := s.admins.GetByID(ctx, result.Claims.AccountID)
	if err != nil || !admin.Active {
		return "", false
	}

	accessToken, _, err := s.tokens.SignAccessToken(admin.Snapshot(), session.ID)
	if err != nil {
		return "", false
	}
	return accessToken, true
}

// ActiveSession returns the caller's current active session, if any.
func (s *AuthService) ActiveSession(ctx context.Context, ownerID string) (*domain.Session, error) {
	session, err := s.sessions.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// ListSessions returns every session owned by the account.
func (s *AuthService) ListSessions(ctx context.Context, ownerID string) ([]*domain.Session, error) {
	return s.sessions.ListByOwner(ctx, ownerID)
}

// DeleteSession hard-deletes one session record. This is an administrative
// operation separate from logout, which only deactivates.
func (s *AuthService) DeleteSession(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("session", map[string]any{"id": id})
		}
		return nil, err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteInactiveSessions bulk-deletes every deactivated session. Only
// inactive rows are targeted, so it can run alongside live traffic.
func (s *AuthService) DeleteInactiveSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteInactive(ctx)
}
