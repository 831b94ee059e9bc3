package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// ResetTokenRepository manages password reset token persistence.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *domain.ResetPasswordToken) error
	// GetUsableByOwner returns the owner's valid, unexpired token. Validity
	// and expiry are filtered server-side so stale or consumed tokens can
	// never be accepted.
	GetUsableByOwner(ctx context.Context, ownerID string) (*domain.ResetPasswordToken, error)
	Invalidate(ctx context.Context, id string) error
	InvalidateByOwner(ctx context.Context, ownerID string) (int64, error)
}

type resetTokenRepository struct {
	pool *pgxpool.Pool
}

// NewResetTokenRepository constructs repository.
func NewResetTokenRepository(pool *pgxpool.Pool) ResetTokenRepository {
	return &resetTokenRepository{pool: pool}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *domain.ResetPasswordToken) error {
	const query = `
        INSERT INTO reset_password_tokens (owner_id, token_hash, expires_at, valid)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		token.OwnerID,
		token.TokenHash,
		token.ExpiresAt,
		token.Valid,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *resetTokenRepository) GetUsableByOwner(ctx context.Context, ownerID string) (*domain.ResetPasswordToken, error) {
	const query = `
        SELECT id, owner_id, token_hash, expires_at, valid, created_at
        FROM reset_password_tokens
        WHERE owner_id=$1 AND valid AND expires_at >= NOW()
        ORDER BY created_at DESC LIMIT 1`

	var token domain.ResetPasswordToken
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&token.ID,
		&token.OwnerID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.Valid,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *resetTokenRepository) Invalidate(ctx context.Context, id string) error {
	const query = `UPDATE reset_password_tokens SET valid=false WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resetTokenRepository) InvalidateByOwner(ctx context.Context, ownerID string) (int64, error) {
	const query = `UPDATE reset_password_tokens SET valid=false WHERE owner_id=$1 AND valid`

	cmd, err := r.pool.Exec(ctx, query, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
