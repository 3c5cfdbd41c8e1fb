package repository

import (
	"context"

	"career-ready/internal/database"
	"career-ready/internal/domain/skill"

	"github.com/google/uuid"
)

type StudentSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.StudentSkill, error)
	Upsert(ctx context.Context, s skill.StudentSkill) (skill.StudentSkill, error)
	Delete(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresStudentSkillRepository struct {
	db database.DB
}

func NewPostgresStudentSkillRepository(db database.DB) *PostgresStudentSkillRepository {
	return &PostgresStudentSkillRepository{db: db}
}

const studentSkillColumns = `ss.id, ss.user_id, ss.skill_id, s.name, s.category::text, ss.level::text, ss.last_used, ss.source, ss.created_at, ss.updated_at`

func scanStudentSkill(row database.Row) (skill.StudentSkill, error) {
	var out skill.StudentSkill
	var category, level string
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.SkillID,
		&out.SkillName,
		&category,
		&level,
		&out.LastUsed,
		&out.Source,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return skill.StudentSkill{}, err
	}
	out.Category = skill.Category(category)
	out.Level = skill.Level(level)
	return out, nil
}

func (r *PostgresStudentSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.StudentSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentSkillColumns+`
		 FROM student_skills ss
		 JOIN skills s ON s.id = ss.skill_id
		 WHERE ss.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.StudentSkill, 0)
	for rows.Next() {
		s, err := scanStudentSkill(rows)
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

// Upsert writes the declared level for (UserID, SkillID); re-adding an
// existing skill overwrites its level and metadata.
func (r *PostgresStudentSkillRepository) Upsert(ctx context.Context, s skill.StudentSkill) (skill.StudentSkill, error) {
	row := r.db.QueryRow(ctx,
		`WITH up AS (
			INSERT INTO student_skills (user_id, skill_id, level, last_used, source)
			VALUES ($1, $2, $3::skill_level, $4, $5)
			ON CONFLICT (user_id, skill_id) DO UPDATE SET
				level = EXCLUDED.level,
				last_used = EXCLUDED.last_used,
				source = EXCLUDED.source,
				updated_at = now()
			RETURNING *
		)
		SELECT `+studentSkillColumns+`
		FROM up ss
		JOIN skills s ON s.id = ss.skill_id`,
		s.UserID,
		s.SkillID,
		string(s.Level),
		s.LastUsed,
		s.Source,
	)
	return scanStudentSkill(row)
}

func (r *PostgresStudentSkillRepository) Delete(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM student_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStudentSkillNotFound
	}
	return nil
}

func (r *PostgresStudentSkillRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT user_id FROM student_skills ORDER BY user_id`)
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
