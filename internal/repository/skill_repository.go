package repository

import (
	"context"

	"career-ready/internal/database"
	"career-ready/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	ListAll(ctx context.Context) ([]skill.Skill, error)
	FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category::text, COALESCE(description, ''), created_at
		 FROM skills
		 ORDER BY category ASC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var category string
		if err := rows.Scan(&s.ID, &s.Name, &category, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Category = skill.Category(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category::text, COALESCE(description, ''), created_at FROM skills WHERE id = $1`,
		id,
	)

	var s skill.Skill
	var category string
	if err := row.Scan(&s.ID, &s.Name, &category, &s.Description, &s.CreatedAt); err != nil {
		if isNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	s.Category = skill.Category(category)
	return s, nil
}
