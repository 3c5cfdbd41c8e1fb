package seeder

import (
	"context"
	"fmt"

	"career-ready/internal/database"
	"career-ready/internal/domain/skill"
)

// JobSkillsSeeder links seeded job roles to catalog skills. It must run after
// SkillsSeeder and JobRolesSeeder.
type JobSkillsSeeder struct{}

func (JobSkillsSeeder) Name() string { return "job_skills" }

func (JobSkillsSeeder) Requires() Schema {
	labels := make([]string, 0, 3)
	for _, l := range skill.Levels() {
		labels = append(labels, string(l))
	}
	return Schema{
		Tables: []Table{{Name: "job_skills", Columns: []string{"job_id", "skill_id", "required_level", "weight", "is_mandatory"}}},
		Enums:  []Enum{{Name: "skill_level", Labels: labels}},
	}
}

// Validate checks that every requirement names a skill of the seeded catalog.
func (JobSkillsSeeder) Validate() error {
	names := make(map[string]struct{}, len(skillSeeds))
	for _, s := range skillSeeds {
		names[s.Name] = struct{}{}
	}
	for _, role := range jobRoleSeeds {
		for _, r := range role.Requirements {
			if _, ok := names[r.Skill]; !ok {
				return fmt.Errorf("%w: job role %q requires unknown skill %q", ErrInvalidSeed, role.Title, r.Skill)
			}
		}
	}
	return nil
}

func (JobSkillsSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	rows := 0
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, role := range jobRoleSeeds {
			for _, r := range role.Requirements {
				affected, err := tx.Exec(
					ctx,
					`INSERT INTO job_skills (job_id, skill_id, required_level, weight, is_mandatory)
					 SELECT j.id, s.id, $3::skill_level, $4, $5
					 FROM job_roles j, skills s
					 WHERE j.title = $1 AND j.company = $6 AND s.name = $2
					 ON CONFLICT (job_id, skill_id) DO UPDATE SET
					   required_level = EXCLUDED.required_level,
					   weight = EXCLUDED.weight,
					   is_mandatory = EXCLUDED.is_mandatory`,
					role.Title,
					r.Skill,
					string(r.Level),
					r.Weight,
					r.Mandatory,
					role.Company,
				)
				if err != nil {
					return err
				}
				if affected == 0 {
					return fmt.Errorf("job %q or skill %q not seeded", role.Title, r.Skill)
				}
				rows += int(affected)
			}
		}
		return nil
	})
	return rows, err
}
