package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// SessionRepository manages session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetActiveByOwner(ctx context.Context, ownerID string) (*domain.Session, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Session, error)
	// DeactivateOthers deactivates every active session for the owner except
	// keepID in a single statement, closing the concurrent-login race.
	DeactivateOthers(ctx context.Context, ownerID, keepID string) (int64, error)
	DeactivateByOwner(ctx context.Context, ownerID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteInactive(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (owner_id, user_agent, active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		session.OwnerID,
		session.UserAgent,
		session.Active,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	const query = `
        SELECT id, owner_id, user_agent, active, created_at, updated_at
        FROM sessions WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *sessionRepository) GetActiveByOwner(ctx context.Context, ownerID string) (*domain.Session, error) {
	const query = `
        SELECT id, owner_id, user_agent, active, created_at, updated_at
        FROM sessions WHERE owner_id=$1 AND active ORDER BY created_at DESC LIMIT 1`

	return r.scanOne(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *sessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Session, error) {
	const query = `
        SELECT id, owner_id, user_agent, active, created_at, updated_at
        FROM sessions WHERE owner_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) DeactivateOthers(ctx context.Context, ownerID, keepID string) (int64, error) {
	const query = `
        UPDATE sessions SET active=false, updated_at=NOW()
        WHERE owner_id=$1 AND active AND id<>$2`

	cmd, err := r.pool.Exec(ctx, query, ownerID, keepID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) DeactivateByOwner(ctx context.Context, ownerID string) (int64, error) {
	const query = `
        UPDATE sessions SET active=false, updated_at=NOW()
        WHERE owner_id=$1 AND active`

	cmd, err := r.pool.Exec(ctx, query, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) DeleteInactive(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE NOT active`

	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) scanOne(row pgx.Row) (*domain.Session, error) {
	var session domain.Session
	if err := row.Scan(
		&session.ID,
		&session.OwnerID,
		&session.UserAgent,
		&session.Active,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}
