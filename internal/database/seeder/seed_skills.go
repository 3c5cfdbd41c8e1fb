package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-ready/internal/database"
	"career-ready/internal/domain/skill"
)

var ErrInvalidSeed = errors.New("invalid seed data")

// SkillsSeeder upserts the skill catalog by name. A zero value seeds the
// built-in catalog.
type SkillsSeeder struct {
	seeds []skillSeed
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) catalog() []skillSeed {
	if s.seeds == nil {
		return skillSeeds
	}
	return s.seeds
}

type skillSeed struct {
	Name        string
	Category    skill.Category
	Description string
}

var skillSeeds = []skillSeed{
	{Name: "Python", Category: skill.CategoryProgramming, Description: "General purpose programming language"},
	{Name: "Go", Category: skill.CategoryProgramming, Description: "Statically typed compiled language for services"},
	{Name: "JavaScript", Category: skill.CategoryProgramming},
	{Name: "TypeScript", Category: skill.CategoryProgramming},
	{Name: "Java", Category: skill.CategoryProgramming},
	{Name: "Pandas", Category: skill.CategoryDataScience, Description: "Tabular data analysis"},
	{Name: "Statistics", Category: skill.CategoryDataScience},
	{Name: "Data Visualization", Category: skill.CategoryDataScience},
	{Name: "React", Category: skill.CategoryWebDevelopment},
	{Name: "HTML/CSS", Category: skill.CategoryWebDevelopment},
	{Name: "REST API Design", Category: skill.CategoryWebDevelopment},
	{Name: "Flutter", Category: skill.CategoryMobileDevelopment},
	{Name: "Kotlin", Category: skill.CategoryMobileDevelopment},
	{Name: "AWS", Category: skill.CategoryCloudComputing},
	{Name: "GCP", Category: skill.CategoryCloudComputing},
	{Name: "SQL", Category: skill.CategoryDatabase},
	{Name: "PostgreSQL", Category: skill.CategoryDatabase},
	{Name: "Redis", Category: skill.CategoryDatabase},
	{Name: "Docker", Category: skill.CategoryDevOps},
	{Name: "Kubernetes", Category: skill.CategoryDevOps},
	{Name: "CI/CD", Category: skill.CategoryDevOps},
	{Name: "Machine Learning", Category: skill.CategoryAIML},
	{Name: "Deep Learning", Category: skill.CategoryAIML},
	{Name: "Prompt Engineering", Category: skill.CategoryAIML},
	{Name: "Communication", Category: skill.CategorySoftSkills},
	{Name: "Teamwork", Category: skill.CategorySoftSkills},
	{Name: "Problem Solving", Category: skill.CategorySoftSkills},
	{Name: "Git", Category: skill.CategoryTools},
	{Name: "Linux", Category: skill.CategoryTools},
	{Name: "Jira", Category: skill.CategoryTools},
}

func (SkillsSeeder) Requires() Schema {
	labels := make([]string, 0, len(skill.Categories()))
	for _, c := range skill.Categories() {
		labels = append(labels, string(c))
	}
	return Schema{
		Tables: []Table{{Name: "skills", Columns: []string{"id", "name", "category", "description", "created_at"}}},
		Enums:  []Enum{{Name: "skill_category", Labels: labels}},
	}
}

func (s SkillsSeeder) Validate() error {
	return validateSkillSeeds(s.catalog())
}

// validateSkillSeeds rejects blank or duplicate names and categories the
// skill_category enum does not know.
func validateSkillSeeds(seeds []skillSeed) error {
	seen := make(map[string]struct{}, len(seeds))
	for _, it := range seeds {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return fmt.Errorf("%w: skill with empty name", ErrInvalidSeed)
		}
		if !it.Category.Valid() {
			return fmt.Errorf("%w: skill %q has unknown category %q", ErrInvalidSeed, name, it.Category)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate skill %q", ErrInvalidSeed, name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	seeds := s.catalog()
	if err := validateSkillSeeds(seeds); err != nil {
		return 0, err
	}

	rows := 0
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range seeds {
			n, err := tx.Exec(
				ctx,
				`INSERT INTO skills (name, category, description) VALUES ($1, $2::skill_category, NULLIF($3, ''))
				 ON CONFLICT (name) DO UPDATE SET
				   category = EXCLUDED.category,
				   description = COALESCE(EXCLUDED.description, skills.description)`,
				strings.TrimSpace(it.Name),
				string(it.Category),
				it.Description,
			)
			if err != nil {
				return fmt.Errorf("upsert skill %q: %w", it.Name, err)
			}
			rows += int(n)
		}
		return nil
	})
	return rows, err
}
