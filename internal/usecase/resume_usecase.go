package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"career-ready/internal/ai/ats"
	"career-ready/internal/domain/resume"
	"career-ready/internal/repository"

	"github.com/google/uuid"
)

const maxATSRequiredSkills = 50

type ResumeAnalyzer interface {
	Analyze(ctx context.Context, in ats.Input) (ats.Result, error)
}

type ResumeAnalysisItem struct {
	ID              uuid.UUID  `json:"id"`
	FileName        string     `json:"file_name"`
	TargetJobID     *uuid.UUID `json:"target_job_id,omitempty"`
	ATSScore        int        `json:"ats_score"`
	ExtractedSkills []string   `json:"extracted_skills"`
	MatchedSkills   []string   `json:"matched_skills"`
	MissingSkills   []string   `json:"missing_skills"`
	Suggestions     string     `json:"suggestions"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ResumeUsecase interface {
	Analyze(ctx context.Context, userID, jobID uuid.UUID, fileName string) (ResumeAnalysisItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]ResumeAnalysisItem, error)
}

type Resume struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	analyses  repository.ResumeAnalysisRepository
	analyzer  ResumeAnalyzer
	locker    Locker
	logger    *log.Logger
}

func NewResumeUsecase(
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	analyses repository.ResumeAnalysisRepository,
	analyzer ResumeAnalyzer,
	locker Locker,
	logger *log.Logger,
) *Resume {
	if logger == nil {
		logger = log.Default()
	}
	return &Resume{
		jobs:      jobs,
		jobSkills: jobSkills,
		analyses:  analyses,
		analyzer:  analyzer,
		locker:    locker,
		logger:    logger,
	}
}

func (u *Resume) Analyze(ctx context.Context, userID, jobID uuid.UUID, fileName string) (ResumeAnalysisItem, error) {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return ResumeAnalysisItem{}, ErrInvalidInput
	}

	role, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ResumeAnalysisItem{}, ErrJobNotFound
		}
		return ResumeAnalysisItem{}, ErrInternal
	}

	reqs, err := u.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return ResumeAnalysisItem{}, ErrInternal
	}
	skills := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if name := strings.TrimSpace(r.SkillName); name != "" {
			skills = append(skills, name)
		}
		if len(skills) == maxATSRequiredSkills {
			break
		}
	}
	if len(skills) == 0 {
		return ResumeAnalysisItem{}, ErrNoRequirementsDefined
	}

	release, err := u.acquire(ctx, userID)
	if err != nil {
		return ResumeAnalysisItem{}, err
	}
	defer release()

	res, err := u.analyzer.Analyze(ctx, ats.Input{
		FileName:       strings.TrimSpace(fileName),
		JobTitle:       role.Title,
		RequiredSkills: skills,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation), errors.Is(err, ErrAnalysisFailed), errors.Is(err, ErrInvalidAIResponseFormat):
			return ResumeAnalysisItem{}, err
		default:
			return ResumeAnalysisItem{}, ErrInternal
		}
	}

	target := jobID
	saved, err := u.analyses.Create(ctx, resume.Analysis{
		UserID:          userID,
		FileName:        strings.TrimSpace(fileName),
		TargetJobID:     &target,
		ATSScore:        res.ATSScore,
		ExtractedSkills: res.ExtractedSkills,
		MatchedSkills:   res.MatchedSkills,
		MissingSkills:   res.MissingSkills,
		Suggestions:     res.Suggestions,
	})
	if err != nil {
		u.logger.Printf("Resume analysis persist failed | user_id=%s job_id=%s err=%v", userID, jobID, err)
		return ResumeAnalysisItem{}, ErrInternal
	}
	return toResumeAnalysisItem(saved), nil
}

// acquire takes the per-user analysis lock. If Redis cannot be reached the
// analysis proceeds unlocked.
func (u *Resume) acquire(ctx context.Context, userID uuid.UUID) (func(), error) {
	noop := func() {}
	if u.locker == nil {
		return noop, nil
	}

	key := resumeLockKey(userID)
	token := uuid.NewString()
	ok, err := u.locker.SetIfNotExists(ctx, key, token, resumeLockTTL)
	if err != nil {
		u.logger.Printf("Resume lock unavailable, continuing unlocked | user_id=%s err=%v", userID, err)
		return noop, nil
	}
	if !ok {
		return nil, ErrAnalysisInProgress
	}
	return func() {
		if err := u.locker.ReleaseIfValue(context.Background(), key, token); err != nil {
			u.logger.Printf("Resume lock release failed | user_id=%s err=%v", userID, err)
		}
	}, nil
}

func (u *Resume) List(ctx context.Context, userID uuid.UUID) ([]ResumeAnalysisItem, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.analyses.ListByUser(ctx, userID, 20)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]ResumeAnalysisItem, 0, len(items))
	for _, it := range items {
		out = append(out, toResumeAnalysisItem(it))
	}
	return out, nil
}

func toResumeAnalysisItem(a resume.Analysis) ResumeAnalysisItem {
	return ResumeAnalysisItem{
		ID:              a.ID,
		FileName:        a.FileName,
		TargetJobID:     a.TargetJobID,
		ATSScore:        a.ATSScore,
		ExtractedSkills: nonNilStrings(a.ExtractedSkills),
		MatchedSkills:   nonNilStrings(a.MatchedSkills),
		MissingSkills:   nonNilStrings(a.MissingSkills),
		Suggestions:     a.Suggestions,
		CreatedAt:       a.CreatedAt,
	}
}
