package usecase

import (
	"context"
	"errors"
	"time"

	"career-ready/internal/domain/job"
	"career-ready/internal/repository"

	"github.com/google/uuid"
)

type JobItem struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Location           string    `json:"location"`
	Description        string    `json:"description"`
	SalaryRange        string    `json:"salary_range"`
	ExperienceRequired string    `json:"experience_required"`
	CreatedAt          time.Time `json:"created_at"`
}

type RequirementItem struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	RequiredLevel string    `json:"required_level"`
	Weight        float64   `json:"weight"`
	IsMandatory   bool      `json:"is_mandatory"`
}

type JobUsecase interface {
	ListActiveJobs(ctx context.Context, limit, offset int) ([]JobItem, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (JobItem, error)
	ListRequirements(ctx context.Context, jobID uuid.UUID) ([]RequirementItem, error)
}

type Job struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
}

func NewJobUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository) *Job {
	return &Job{jobs: jobs, jobSkills: jobSkills}
}

func (u *Job) ListActiveJobs(ctx context.Context, limit, offset int) ([]JobItem, error) {
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.jobs.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]JobItem, 0, len(items))
	for _, it := range items {
		out = append(out, toJobItem(it))
	}
	return out, nil
}

func (u *Job) GetJob(ctx context.Context, jobID uuid.UUID) (JobItem, error) {
	j, err := u.findJob(ctx, jobID)
	if err != nil {
		return JobItem{}, err
	}
	return toJobItem(j), nil
}

func (u *Job) ListRequirements(ctx context.Context, jobID uuid.UUID) ([]RequirementItem, error) {
	if _, err := u.findJob(ctx, jobID); err != nil {
		return nil, err
	}
	reqs, err := u.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]RequirementItem, 0, len(reqs))
	for _, r := range reqs {
		w := 1.0
		if r.Weight != nil {
			w = *r.Weight
		}
		out = append(out, RequirementItem{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			RequiredLevel: string(r.RequiredLevel),
			Weight:        w,
			IsMandatory:   r.IsMandatory,
		})
	}
	return out, nil
}

func (u *Job) findJob(ctx context.Context, jobID uuid.UUID) (job.Role, error) {
	if jobID == uuid.Nil {
		return job.Role{}, ErrInvalidInput
	}
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Role{}, ErrJobNotFound
		}
		return job.Role{}, ErrInternal
	}
	return j, nil
}

func toJobItem(j job.Role) JobItem {
	return JobItem{
		ID:                 j.ID,
		Title:              j.Title,
		Company:            j.Company,
		Location:           j.Location,
		Description:        j.Description,
		SalaryRange:        j.SalaryRange,
		ExperienceRequired: j.ExperienceRequired,
		CreatedAt:          j.CreatedAt,
	}
}
