package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"career-ready/internal/ai/ats"
	"career-ready/internal/domain/job"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resumeFixture struct {
	userID   uuid.UUID
	jobID    uuid.UUID
	analyzer *fakeAnalyzer
	repo     *fakeResumeRepo
	locker   *fakeLocker
	reqs     *fakeJobSkillRepo
	uc       *Resume
}

func newResumeFixture() *resumeFixture {
	f := &resumeFixture{userID: uuid.New(), jobID: uuid.New()}
	jobs := &fakeJobRepo{jobs: map[uuid.UUID]job.Role{f.jobID: {ID: f.jobID, Title: "Backend Engineer"}}}
	f.reqs = &fakeJobSkillRepo{reqs: map[uuid.UUID][]job.Requirement{f.jobID: {
		{SkillName: "Go"},
		{SkillName: " "},
		{SkillName: "PostgreSQL"},
	}}}
	f.analyzer = &fakeAnalyzer{res: ats.Result{
		ATSScore:        70,
		ExtractedSkills: []string{"Go"},
		MatchedSkills:   []string{"Go"},
		MissingSkills:   []string{"PostgreSQL"},
		Suggestions:     "Add SQL projects.",
	}}
	f.repo = &fakeResumeRepo{}
	f.locker = &fakeLocker{}
	f.uc = NewResumeUsecase(jobs, f.reqs, f.repo, f.analyzer, f.locker, quietLogger())
	return f
}

func TestResumeAnalyze_Success(t *testing.T) {
	f := newResumeFixture()

	item, err := f.uc.Analyze(context.Background(), f.userID, f.jobID, " cv.pdf ")
	require.NoError(t, err)
	assert.Equal(t, 70, item.ATSScore)
	assert.Equal(t, "cv.pdf", item.FileName)
	require.NotNil(t, item.TargetJobID)
	assert.Equal(t, f.jobID, *item.TargetJobID)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, f.analyzer.in.RequiredSkills)
	assert.Equal(t, "Backend Engineer", f.analyzer.in.JobTitle)
	assert.Len(t, f.repo.created, 1)
	assert.Empty(t, f.locker.held)
	assert.Len(t, f.locker.released, 1)
}

func TestResumeAnalyze_LockHeld(t *testing.T) {
	f := newResumeFixture()
	f.locker.held = map[string]string{resumeLockKey(f.userID): "other"}

	_, err := f.uc.Analyze(context.Background(), f.userID, f.jobID, "cv.pdf")
	assert.ErrorIs(t, err, ErrAnalysisInProgress)
	assert.Zero(t, f.analyzer.calls)
}

func TestResumeAnalyze_LockBackendDownProceeds(t *testing.T) {
	f := newResumeFixture()
	f.locker.err = errors.New("redis unavailable")

	_, err := f.uc.Analyze(context.Background(), f.userID, f.jobID, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, f.analyzer.calls)
}

func TestResumeAnalyze_AnalyzerErrorsPassThrough(t *testing.T) {
	for _, sentinel := range []error{ErrAnalysisFailed, ErrInvalidAIResponseFormat, ErrValidation} {
		f := newResumeFixture()
		f.analyzer.err = fmt.Errorf("%w: detail", sentinel)

		_, err := f.uc.Analyze(context.Background(), f.userID, f.jobID, "cv.pdf")
		assert.ErrorIs(t, err, sentinel)
		assert.Empty(t, f.repo.created)
		assert.Empty(t, f.locker.held, "lock must be released on failure")
	}
}

func TestResumeAnalyze_JobWithoutRequirements(t *testing.T) {
	f := newResumeFixture()
	f.reqs.reqs[f.jobID] = nil

	_, err := f.uc.Analyze(context.Background(), f.userID, f.jobID, "cv.pdf")
	assert.ErrorIs(t, err, ErrNoRequirementsDefined)
	assert.Zero(t, f.analyzer.calls)
}

func TestResumeAnalyze_UnknownJob(t *testing.T) {
	f := newResumeFixture()
	_, err := f.uc.Analyze(context.Background(), f.userID, uuid.New(), "cv.pdf")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestResumeList(t *testing.T) {
	f := newResumeFixture()
	ctx := context.Background()
	_, err := f.uc.Analyze(ctx, f.userID, f.jobID, "a.pdf")
	require.NoError(t, err)
	_, err = f.uc.Analyze(ctx, f.userID, f.jobID, "b.pdf")
	require.NoError(t, err)

	items, err := f.uc.List(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b.pdf", items[0].FileName)
}
