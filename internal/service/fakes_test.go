package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
)

func testTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return auth.NewTokenManagerFromKeys(key, &key.PublicKey, 15*time.Minute, 7*24*time.Hour)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// memAdminRepo is an in-memory AdminRepository.
type memAdminRepo struct {
	mu     sync.Mutex
	nextID int
	admins map[string]*domain.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *memAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	admin.ID = "admin-" + strconv.Itoa(r.nextID)
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *memAdminRepo) Update(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[admin.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *admin
	clone.UpdatedAt = time.Now()
	r.admins[admin.ID] = &clone
	return nil
}

func (r *memAdminRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.PasswordHash = passwordHash
	return nil
}

func (r *memAdminRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.Active = active
	return nil
}

func (r *memAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *admin
	return &clone, nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAdminRepo) List(_ context.Context) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admins := make([]*domain.Admin, 0, len(r.admins))
	for _, admin := range r.admins {
		clone := *admin
		admins = append(admins, &clone)
	}
	return admins, nil
}

func (r *memAdminRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.admins, id)
	return nil
}

// memSessionRepo is an in-memory SessionRepository.
type memSessionRepo struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	session.ID = "session-" + strconv.Itoa(r.nextID)
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *memSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (r *memSessionRepo) GetActiveByOwner(_ context.Context, ownerID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Session
	for _, session := range r.sessions {
		if session.OwnerID != ownerID || !session.Active {
			continue
		}
		if latest == nil || session.CreatedAt.After(latest.CreatedAt) {
			latest = session
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (r *memSessionRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sessions []*domain.Session
	for _, session := range r.sessions {
		if session.OwnerID == ownerID {
			clone := *session
			sessions = append(sessions, &clone)
		}
	}
	return sessions, nil
}

func (r *memSessionRepo) DeactivateOthers(_ context.Context, ownerID, keepID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, session := range r.sessions {
		if session.OwnerID == ownerID && session.Active && session.ID != keepID {
			session.Active = false
			count++
		}
	}
	return count, nil
}

func (r *memSessionRepo) DeactivateByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, session := range r.sessions {
		if session.OwnerID == ownerID && session.Active {
			session.Active = false
			count++
		}
	}
	return count, nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteInactive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, session := range r.sessions {
		if !session.Active {
			delete(r.sessions, id)
			count++
		}
	}
	return count, nil
}

func (r *memSessionRepo) activeCount(ownerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, session := range r.sessions {
		if session.OwnerID == ownerID && session.Active {
			count++
		}
	}
	return count
}

// memResetRepo is an in-memory ResetTokenRepository.
type memResetRepo struct {
	mu     sync.Mutex
	nextID int
	tokens map[string]*domain.ResetPasswordToken
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: make(map[string]*domain.ResetPasswordToken)}
}

func (r *memResetRepo) Create(_ context.Context, token *domain.ResetPasswordToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = "reset-" + strconv.Itoa(r.nextID)
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *memResetRepo) GetUsableByOwner(_ context.Context, ownerID string) (*domain.ResetPasswordToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.ResetPasswordToken
	now := time.Now()
	for _, token := range r.tokens {
		if token.OwnerID != ownerID || !token.Valid || token.ExpiresAt.Before(now) {
			continue
		}
		if latest == nil || token.CreatedAt.After(latest.CreatedAt) {
			latest = token
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (r *memResetRepo) Invalidate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	token.Valid = false
	return nil
}

func (r *memResetRepo) InvalidateByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, token := range r.tokens {
		if token.OwnerID == ownerID && token.Valid {
			token.Valid = false
			count++
		}
	}
	return count, nil
}
