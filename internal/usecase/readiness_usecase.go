package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"career-ready/internal/domain/job"
	"career-ready/internal/domain/readiness"
	"career-ready/internal/domain/skill"
	"career-ready/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ReadinessItem struct {
	ID            uuid.UUID `json:"id"`
	JobID         uuid.UUID `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	Company       string    `json:"company"`
	Score         int       `json:"score"`
	Status        string    `json:"status"`
	MissingSkills []string  `json:"missing_skills"`
	WeakSkills    []string  `json:"weak_skills"`
	StrongSkills  []string  `json:"strong_skills"`
	CalculatedAt  time.Time `json:"calculated_at"`
}

type ReadinessUsecase interface {
	Calculate(ctx context.Context, userID, jobID uuid.UUID) (ReadinessItem, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ReadinessItem, error)
	GetForJob(ctx context.Context, userID, jobID uuid.UUID) (ReadinessItem, error)
}

type Readiness struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	skills    repository.SkillRepository
	students  repository.StudentSkillRepository
	scores    repository.ReadinessRepository
	cache     Cache
	notifier  Notifier
	logger    *log.Logger
	now       func() time.Time
}

type ReadinessDeps struct {
	Jobs      repository.JobRepository
	JobSkills repository.JobSkillRepository
	Skills    repository.SkillRepository
	Students  repository.StudentSkillRepository
	Scores    repository.ReadinessRepository
	Cache     Cache
	Notifier  Notifier
	Logger    *log.Logger
}

func NewReadinessUsecase(d ReadinessDeps) *Readiness {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Readiness{
		jobs:      d.Jobs,
		jobSkills: d.JobSkills,
		skills:    d.Skills,
		students:  d.Students,
		scores:    d.Scores,
		cache:     d.Cache,
		notifier:  d.Notifier,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Calculate recomputes and stores the readiness of userID for jobID. When
// the job has no requirements nothing is written.
func (u *Readiness) Calculate(ctx context.Context, userID, jobID uuid.UUID) (ReadinessItem, error) {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return ReadinessItem{}, ErrInvalidInput
	}

	if _, err := u.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ReadinessItem{}, ErrJobNotFound
		}
		u.logger.Printf("Readiness job lookup failed | job_id=%s err=%v", jobID, err)
		return ReadinessItem{}, ErrInternal
	}

	var (
		studentSkills []skill.StudentSkill
		reqs          []job.Requirement
		catalog       []skill.Skill
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		studentSkills, err = u.students.FindByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		reqs, err = u.jobSkills.FindByJobID(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = u.skills.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Printf("Readiness inputs load failed | user_id=%s job_id=%s err=%v", userID, jobID, err)
		return ReadinessItem{}, ErrInternal
	}

	result, err := readiness.Compute(toReadinessStudentSkills(studentSkills), toReadinessRequirements(reqs), toReadinessCatalog(catalog))
	if err != nil {
		if errors.Is(err, readiness.ErrNoRequirementsDefined) {
			return ReadinessItem{}, ErrNoRequirementsDefined
		}
		return ReadinessItem{}, ErrInternal
	}

	saved, err := u.scores.Upsert(ctx, readiness.NewScore(userID, jobID, result, u.now()))
	if err != nil {
		u.logger.Printf("Readiness upsert failed | user_id=%s job_id=%s err=%v", userID, jobID, err)
		return ReadinessItem{}, ErrInternal
	}

	u.logger.Printf("Readiness calculated | user_id=%s job_id=%s score=%d status=%s", userID, jobID, saved.Score, saved.Status)

	if u.cache != nil {
		if _, err := u.cache.Incr(ctx, readinessGenKey(userID)); err != nil {
			u.logger.Printf("Readiness cache invalidate failed | user_id=%s err=%v", userID, err)
		}
	}

	item := toReadinessItem(saved)
	if u.notifier != nil {
		u.notifier.NotifyUser(userID, EventReadinessUpdated, item)
	}
	return item, nil
}

func (u *Readiness) ListForUser(ctx context.Context, userID uuid.UUID) ([]ReadinessItem, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	// the generation must be read before the scores
	cache := u.cache
	var key string
	if cache != nil {
		var gen int64
		if _, err := cache.GetJSON(ctx, readinessGenKey(userID), &gen); err != nil {
			cache = nil
		} else {
			key = ReadinessListCacheKey(userID, gen)
			var cached []ReadinessItem
			if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
				return cached, nil
			}
		}
	}

	scores, err := u.scores.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]ReadinessItem, 0, len(scores))
	for _, s := range scores {
		out = append(out, toReadinessItem(s))
	}

	if cache != nil {
		if err := cache.SetJSON(ctx, key, out, readinessListTTL); err != nil {
			u.logger.Printf("Readiness cache set failed | user_id=%s err=%v", userID, err)
		}
	}
	return out, nil
}

func (u *Readiness) GetForJob(ctx context.Context, userID, jobID uuid.UUID) (ReadinessItem, error) {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return ReadinessItem{}, ErrInvalidInput
	}
	s, err := u.scores.FindByUserAndJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrReadinessNotFound) {
			return ReadinessItem{}, ErrReadinessNotFound
		}
		return ReadinessItem{}, ErrInternal
	}
	return toReadinessItem(s), nil
}

func toReadinessStudentSkills(in []skill.StudentSkill) []readiness.StudentSkill {
	out := make([]readiness.StudentSkill, 0, len(in))
	for _, s := range in {
		out = append(out, readiness.StudentSkill{SkillID: s.SkillID, Level: s.Level})
	}
	return out
}

func toReadinessRequirements(in []job.Requirement) []readiness.Requirement {
	out := make([]readiness.Requirement, 0, len(in))
	for _, r := range in {
		out = append(out, readiness.Requirement{
			SkillID:       r.SkillID,
			RequiredLevel: r.RequiredLevel,
			Weight:        r.Weight,
			IsMandatory:   r.IsMandatory,
		})
	}
	return out
}

func toReadinessCatalog(in []skill.Skill) []readiness.CatalogEntry {
	out := make([]readiness.CatalogEntry, 0, len(in))
	for _, s := range in {
		out = append(out, readiness.CatalogEntry{ID: s.ID, Name: s.Name})
	}
	return out
}

func toReadinessItem(s readiness.Score) ReadinessItem {
	return ReadinessItem{
		ID:            s.ID,
		JobID:         s.JobID,
		JobTitle:      s.JobTitle,
		Company:       s.Company,
		Score:         s.Score,
		Status:        string(s.Status),
		MissingSkills: nonNilStrings(s.Missing),
		WeakSkills:    nonNilStrings(s.Weak),
		StrongSkills:  nonNilStrings(s.Strong),
		CalculatedAt:  s.CalculatedAt,
	}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
