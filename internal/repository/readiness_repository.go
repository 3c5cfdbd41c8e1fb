package repository

import (
	"context"
	"time"

	"career-ready/internal/database"
	"career-ready/internal/domain/readiness"

	"github.com/google/uuid"
)

type ReadinessRepository interface {
	Upsert(ctx context.Context, s readiness.Score) (readiness.Score, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]readiness.Score, error)
	FindByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (readiness.Score, error)
}

type PostgresReadinessRepository struct {
	db database.DB
}

func NewPostgresReadinessRepository(db database.DB) *PostgresReadinessRepository {
	return &PostgresReadinessRepository{db: db}
}

const readinessColumns = `rs.id, rs.user_id, rs.job_id, COALESCE(j.title, ''), COALESCE(j.company, ''), rs.score, rs.status,
	rs.missing_skills, rs.weak_skills, rs.strong_skills, rs.calculated_at`

func scanReadiness(row database.Row) (readiness.Score, error) {
	var s readiness.Score
	var status string
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.JobID,
		&s.JobTitle,
		&s.Company,
		&s.Score,
		&status,
		&s.Missing,
		&s.Weak,
		&s.Strong,
		&s.CalculatedAt,
	); err != nil {
		return readiness.Score{}, err
	}
	s.Status = readiness.Status(status)
	if s.Missing == nil {
		s.Missing = []string{}
	}
	if s.Weak == nil {
		s.Weak = []string{}
	}
	if s.Strong == nil {
		s.Strong = []string{}
	}
	return s, nil
}

// Upsert replaces the score for (UserID, JobID) in one statement. The row id
// survives recomputation.
func (r *PostgresReadinessRepository) Upsert(ctx context.Context, s readiness.Score) (readiness.Score, error) {
	if s.CalculatedAt.IsZero() {
		s.CalculatedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx,
		`WITH up AS (
			INSERT INTO readiness_scores (user_id, job_id, score, status, missing_skills, weak_skills, strong_skills, calculated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, job_id) DO UPDATE SET
				score = EXCLUDED.score,
				status = EXCLUDED.status,
				missing_skills = EXCLUDED.missing_skills,
				weak_skills = EXCLUDED.weak_skills,
				strong_skills = EXCLUDED.strong_skills,
				calculated_at = EXCLUDED.calculated_at
			RETURNING *
		)
		SELECT `+readinessColumns+`
		FROM up rs
		LEFT JOIN job_roles j ON j.id = rs.job_id`,
		s.UserID,
		s.JobID,
		s.Score,
		string(s.Status),
		nonNil(s.Missing),
		nonNil(s.Weak),
		nonNil(s.Strong),
		s.CalculatedAt,
	)
	return scanReadiness(row)
}

func (r *PostgresReadinessRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]readiness.Score, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+readinessColumns+`
		 FROM readiness_scores rs
		 LEFT JOIN job_roles j ON j.id = rs.job_id
		 WHERE rs.user_id = $1
		 ORDER BY rs.score DESC, rs.calculated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]readiness.Score, 0)
	for rows.Next() {
		s, err := scanReadiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReadinessRepository) FindByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (readiness.Score, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+readinessColumns+`
		 FROM readiness_scores rs
		 LEFT JOIN job_roles j ON j.id = rs.job_id
		 WHERE rs.user_id = $1 AND rs.job_id = $2`,
		userID, jobID,
	)
	s, err := scanReadiness(row)
	if err != nil {
		if isNoRows(err) {
			return readiness.Score{}, ErrReadinessNotFound
		}
		return readiness.Score{}, err
	}
	return s, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
