package repository

import (
	"context"

	"career-ready/internal/database"
	"career-ready/internal/domain/job"
	"career-ready/internal/domain/skill"

	"github.com/google/uuid"
)

type JobSkillRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]job.Requirement, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

// FindByJobID returns mandatory requirements first, then by skill name. A NULL weight is
// returned as a nil Weight.
func (r *PostgresJobSkillRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]job.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, js.skill_id, COALESCE(s.name, ''), js.required_level::text, js.weight::float8, js.is_mandatory
		 FROM job_skills js
		 LEFT JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY js.is_mandatory DESC, s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Requirement, 0)
	for rows.Next() {
		var req job.Requirement
		var level string
		if err := rows.Scan(&req.JobID, &req.SkillID, &req.SkillName, &level, &req.Weight, &req.IsMandatory); err != nil {
			return nil, err
		}
		req.RequiredLevel = skill.Level(level)
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
