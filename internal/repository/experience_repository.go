package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// ExperienceRepository defines persistence access for experiences.
type ExperienceRepository interface {
	Create(ctx context.Context, experience *domain.Experience) error
	Update(ctx context.Context, experience *domain.Experience) error
	GetByID(ctx context.Context, id string) (*domain.Experience, error)
	List(ctx context.Context) ([]*domain.Experience, error)
	Delete(ctx context.Context, id string) error
}

type experienceRepository struct {
	pool *pgxpool.Pool
}

// NewExperienceRepository returns a Postgres-backed implementation.
func NewExperienceRepository(pool *pgxpool.Pool) ExperienceRepository {
	return &experienceRepository{pool: pool}
}

func (r *experienceRepository) Create(ctx context.Context, experience *domain.Experience) error {
	const query = `
        INSERT INTO experiences (title, company, description, started_at, ended_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		experience.Title,
		experience.Company,
		experience.Description,
		experience.StartedAt,
		experience.EndedAt,
	).Scan(&experience.ID, &experience.CreatedAt, &experience.UpdatedAt)
}

func (r *experienceRepository) Update(ctx context.Context, experience *domain.Experience) error {
	const query = `
        UPDATE experiences SET title=$1, company=$2, description=$3, started_at=$4, ended_at=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		experience.Title,
		experience.Company,
		experience.Description,
		experience.StartedAt,
		experience.EndedAt,
		experience.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *experienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	const query = `
        SELECT id, title, company, description, started_at, ended_at, created_at, updated_at
        FROM experiences WHERE id=$1`

	var experience domain.Experience
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&experience.ID,
		&experience.Title,
		&experience.Company,
		&experience.Description,
		&experience.StartedAt,
		&experience.EndedAt,
		&experience.CreatedAt,
		&experience.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *experienceRepository) List(ctx context.Context) ([]*domain.Experience, error) {
	const query = `
        SELECT id, title, company, description, started_at, ended_at, created_at, updated_at
        FROM experiences ORDER BY started_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var experiences []*domain.Experience
	for rows.Next() {
		var experience domain.Experience
		if err := rows.Scan(
			&experience.ID,
			&experience.Title,
			&experience.Company,
			&experience.Description,
			&experience.StartedAt,
			&experience.EndedAt,
			&experience.CreatedAt,
			&experience.UpdatedAt,
		); err != nil {
			return nil, err
		}
		experiences = append(experiences, &experience)
	}
	return experiences, rows.Err()
}

func (r *experienceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM experiences WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
