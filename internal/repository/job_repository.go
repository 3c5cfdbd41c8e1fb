package repository

import (
	"context"

	"career-ready/internal/database"
	"career-ready/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	ListActive(ctx context.Context, limit, offset int) ([]job.Role, error)
	FindByID(ctx context.Context, jobID uuid.UUID) (job.Role, error)
	ListActiveIDsWithRequirements(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobRoleColumns = `id, title, COALESCE(company, ''), COALESCE(location, ''), COALESCE(description, ''),
	COALESCE(salary_range, ''), COALESCE(experience_required, ''), is_active, created_at`

func scanJobRole(row database.Row) (job.Role, error) {
	var j job.Role
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Description,
		&j.SalaryRange,
		&j.ExperienceRequired,
		&j.IsActive,
		&j.CreatedAt,
	)
	return j, err
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Role, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobRoleColumns+`
		 FROM job_roles
		 WHERE is_active = true
		 ORDER BY created_at DESC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Role, 0)
	for rows.Next() {
		j, err := scanJobRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns ErrJobNotFound for unknown and inactive roles alike.
func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (job.Role, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobRoleColumns+` FROM job_roles WHERE id = $1 AND is_active = true`,
		jobID,
	)
	j, err := scanJobRole(row)
	if err != nil {
		if isNoRows(err) {
			return job.Role{}, ErrJobNotFound
		}
		return job.Role{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListActiveIDsWithRequirements(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id
		 FROM job_roles j
		 WHERE j.is_active = true
		   AND EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id)
		 ORDER BY j.created_at DESC, j.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
