package seeder

import (
	"context"
	"fmt"

	"career-ready/internal/database"
	"career-ready/internal/domain/skill"
)

type JobRolesSeeder struct{}

func (JobRolesSeeder) Name() string { return "job_roles" }

type requirementSeed struct {
	Skill     string
	Level     skill.Level
	Weight    float64
	Mandatory bool
}

type jobRoleSeed struct {
	Title              string
	Company            string
	Location           string
	Description        string
	SalaryRange        string
	ExperienceRequired string
	Requirements       []requirementSeed
}

var jobRoleSeeds = []jobRoleSeed{
	{
		Title:              "Backend Engineer (Go)",
		Company:            "Nusantara Tech",
		Location:           "Jakarta, ID",
		Description:        "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
		SalaryRange:        "IDR 12-18 jt",
		ExperienceRequired: "0-2 years",
		Requirements: []requirementSeed{
			{Skill: "Go", Level: skill.LevelIntermediate, Weight: 3, Mandatory: true},
			{Skill: "PostgreSQL", Level: skill.LevelIntermediate, Weight: 2, Mandatory: true},
			{Skill: "REST API Design", Level: skill.LevelIntermediate, Weight: 2},
			{Skill: "Docker", Level: skill.LevelBeginner, Weight: 1},
			{Skill: "Git", Level: skill.LevelBeginner, Weight: 1},
		},
	},
	{
		Title:              "Frontend Developer",
		Company:            "Kreasi Digital",
		Location:           "Bandung, ID",
		Description:        "Ship React applications with a strong eye for accessibility.",
		SalaryRange:        "IDR 9-14 jt",
		ExperienceRequired: "0-1 years",
		Requirements: []requirementSeed{
			{Skill: "React", Level: skill.LevelIntermediate, Weight: 3, Mandatory: true},
			{Skill: "TypeScript", Level: skill.LevelIntermediate, Weight: 2},
			{Skill: "HTML/CSS", Level: skill.LevelAdvanced, Weight: 2},
			{Skill: "Git", Level: skill.LevelBeginner, Weight: 1},
		},
	},
	{
		Title:              "Data Analyst",
		Company:            "InsightWorks",
		Location:           "Surabaya, ID",
		Description:        "Turn product data into dashboards and decisions.",
		SalaryRange:        "IDR 8-12 jt",
		ExperienceRequired: "Fresh graduate",
		Requirements: []requirementSeed{
			{Skill: "Python", Level: skill.LevelIntermediate, Weight: 2, Mandatory: true},
			{Skill: "SQL", Level: skill.LevelBeginner, Weight: 1, Mandatory: true},
			{Skill: "Statistics", Level: skill.LevelIntermediate, Weight: 2},
			{Skill: "Data Visualization", Level: skill.LevelBeginner, Weight: 1},
			{Skill: "Communication", Level: skill.LevelIntermediate, Weight: 1},
		},
	},
	{
		Title:              "Machine Learning Engineer",
		Company:            "Cerdas AI",
		Location:           "Remote",
		Description:        "Train, evaluate and deploy ML models to production.",
		SalaryRange:        "IDR 15-25 jt",
		ExperienceRequired: "1-3 years",
		Requirements: []requirementSeed{
			{Skill: "Python", Level: skill.LevelAdvanced, Weight: 3, Mandatory: true},
			{Skill: "Machine Learning", Level: skill.LevelIntermediate, Weight: 3, Mandatory: true},
			{Skill: "Deep Learning", Level: skill.LevelBeginner, Weight: 2},
			{Skill: "GCP", Level: skill.LevelBeginner, Weight: 1},
		},
	},
	{
		Title:              "DevOps Engineer",
		Company:            "CloudKita",
		Location:           "Remote",
		Description:        "Operate CI/CD, containers and cloud infrastructure.",
		SalaryRange:        "IDR 14-22 jt",
		ExperienceRequired: "1-3 years",
		Requirements: []requirementSeed{
			{Skill: "Docker", Level: skill.LevelIntermediate, Weight: 2, Mandatory: true},
			{Skill: "Kubernetes", Level: skill.LevelIntermediate, Weight: 2},
			{Skill: "CI/CD", Level: skill.LevelIntermediate, Weight: 2},
			{Skill: "AWS", Level: skill.LevelBeginner, Weight: 1},
			{Skill: "Linux", Level: skill.LevelIntermediate, Weight: 2},
		},
	},
	{
		Title:              "Mobile Developer",
		Company:            "Aplikasi Kita",
		Location:           "Yogyakarta, ID",
		Description:        "Build cross-platform mobile apps.",
		SalaryRange:        "IDR 9-15 jt",
		ExperienceRequired: "0-2 years",
		Requirements: []requirementSeed{
			{Skill: "Flutter", Level: skill.LevelIntermediate, Weight: 3},
			{Skill: "Kotlin", Level: skill.LevelBeginner, Weight: 1},
			{Skill: "REST API Design", Level: skill.LevelBeginner, Weight: 1},
			{Skill: "Teamwork", Level: skill.LevelIntermediate, Weight: 1},
		},
	},
}

func (JobRolesSeeder) Requires() Schema {
	return Schema{Tables: []Table{{Name: "job_roles", Columns: []string{
		"id",
		"title",
		"company",
		"location",
		"description",
		"salary_range",
		"experience_required",
		"is_active",
		"created_at",
	}}}}
}

// Validate checks every role names a title, a company and at least one
// requirement with a known level and a positive weight.
func (JobRolesSeeder) Validate() error {
	for _, role := range jobRoleSeeds {
		if role.Title == "" || role.Company == "" {
			return fmt.Errorf("%w: job role needs title and company", ErrInvalidSeed)
		}
		if len(role.Requirements) == 0 {
			return fmt.Errorf("%w: job role %q has no requirements", ErrInvalidSeed, role.Title)
		}
		for _, r := range role.Requirements {
			if !r.Level.Valid() || r.Weight <= 0 {
				return fmt.Errorf("%w: job role %q requirement %q", ErrInvalidSeed, role.Title, r.Skill)
			}
		}
	}
	return nil
}

func (JobRolesSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	rows := 0
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range jobRoleSeeds {
			n, err := tx.Exec(
				ctx,
				`INSERT INTO job_roles (title, company, location, description, salary_range, experience_required, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, true)
				 ON CONFLICT (title, company) DO UPDATE SET
				   location = EXCLUDED.location,
				   description = EXCLUDED.description,
				   salary_range = EXCLUDED.salary_range,
				   experience_required = EXCLUDED.experience_required`,
				it.Title,
				it.Company,
				it.Location,
				it.Description,
				it.SalaryRange,
				it.ExperienceRequired,
			)
			if err != nil {
				return fmt.Errorf("upsert job role %q: %w", it.Title, err)
			}
			rows += int(n)
		}
		return nil
	})
	return rows, err
}
