package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"career-ready/internal/ai/ats"
	"career-ready/internal/domain/alert"
	"career-ready/internal/domain/job"
	"career-ready/internal/domain/readiness"
	"career-ready/internal/domain/resume"
	"career-ready/internal/domain/skill"
	"career-ready/internal/repository"

	"github.com/google/uuid"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

type fakeJobRepo struct {
	jobs map[uuid.UUID]job.Role
	err  error
}

func (f *fakeJobRepo) ListActive(context.Context, int, int) ([]job.Role, error) {
	out := make([]job.Role, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, f.err
}

func (f *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (job.Role, error) {
	if f.err != nil {
		return job.Role{}, f.err
	}
	j, ok := f.jobs[id]
	if !ok {
		return job.Role{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) ListActiveIDsWithRequirements(context.Context) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(f.jobs))
	for id := range f.jobs {
		out = append(out, id)
	}
	return out, f.err
}

type fakeJobSkillRepo struct {
	reqs map[uuid.UUID][]job.Requirement
	err  error
}

func (f *fakeJobSkillRepo) FindByJobID(_ context.Context, id uuid.UUID) ([]job.Requirement, error) {
	return f.reqs[id], f.err
}

type fakeSkillRepo struct {
	skills []skill.Skill
	err    error
	calls  int
}

func (f *fakeSkillRepo) ListAll(context.Context) ([]skill.Skill, error) {
	f.calls++
	return f.skills, f.err
}

func (f *fakeSkillRepo) FindByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	if f.err != nil {
		return skill.Skill{}, f.err
	}
	for _, s := range f.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

type fakeStudentSkillRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID][]skill.StudentSkill
	err    error
}

func (f *fakeStudentSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.StudentSkill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byUser[userID], f.err
}

func (f *fakeStudentSkillRepo) Upsert(_ context.Context, s skill.StudentSkill) (skill.StudentSkill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return skill.StudentSkill{}, f.err
	}
	if f.byUser == nil {
		f.byUser = map[uuid.UUID][]skill.StudentSkill{}
	}
	list := f.byUser[s.UserID]
	for i := range list {
		if list[i].SkillID == s.SkillID {
			s.ID = list[i].ID
			list[i] = s
			return s, nil
		}
	}
	s.ID = uuid.New()
	f.byUser[s.UserID] = append(list, s)
	return s, nil
}

func (f *fakeStudentSkillRepo) Delete(_ context.Context, userID, skillID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.byUser[userID]
	for i := range list {
		if list[i].SkillID == skillID {
			f.byUser[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrStudentSkillNotFound
}

func (f *fakeStudentSkillRepo) ListUserIDs(context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uuid.UUID, 0, len(f.byUser))
	for id := range f.byUser {
		out = append(out, id)
	}
	return out, f.err
}

type fakeReadinessRepo struct {
	mu      sync.Mutex
	rows    map[[2]uuid.UUID]readiness.Score
	upserts int
	err     error
}

func (f *fakeReadinessRepo) Upsert(_ context.Context, s readiness.Score) (readiness.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return readiness.Score{}, f.err
	}
	if f.rows == nil {
		f.rows = map[[2]uuid.UUID]readiness.Score{}
	}
	key := [2]uuid.UUID{s.UserID, s.JobID}
	if prev, ok := f.rows[key]; ok {
		s.ID = prev.ID
	} else {
		s.ID = uuid.New()
	}
	f.rows[key] = s
	f.upserts++
	return s, nil
}

func (f *fakeReadinessRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]readiness.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]readiness.Score, 0)
	for k, v := range f.rows {
		if k[0] == userID {
			out = append(out, v)
		}
	}
	return out, f.err
}

func (f *fakeReadinessRepo) FindByUserAndJob(_ context.Context, userID, jobID uuid.UUID) (readiness.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[[2]uuid.UUID{userID, jobID}]
	if !ok {
		return readiness.Score{}, repository.ErrReadinessNotFound
	}
	return s, nil
}

type fakeAlertRepo struct {
	alerts []alert.Alert
	err    error
}

func (f *fakeAlertRepo) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]alert.Alert, error) {
	out := make([]alert.Alert, 0)
	for _, a := range f.alerts {
		if a.UserID != userID || (unreadOnly && a.IsRead) {
			continue
		}
		out = append(out, a)
	}
	return out, f.err
}

func (f *fakeAlertRepo) FindByID(_ context.Context, userID, alertID uuid.UUID) (alert.Alert, error) {
	for _, a := range f.alerts {
		if a.ID == alertID && a.UserID == userID {
			return a, nil
		}
	}
	return alert.Alert{}, repository.ErrAlertNotFound
}

func (f *fakeAlertRepo) MarkRead(_ context.Context, userID, alertID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.alerts {
		if f.alerts[i].ID == alertID && f.alerts[i].UserID == userID {
			if f.alerts[i].IsRead {
				return false, nil
			}
			f.alerts[i].IsRead = true
			return true, nil
		}
	}
	return false, repository.ErrAlertNotFound
}

func (f *fakeAlertRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, a := range f.alerts {
		if a.UserID == userID && !a.IsRead {
			n++
		}
	}
	return n, f.err
}

type fakeResumeRepo struct {
	created []resume.Analysis
	err     error
}

func (f *fakeResumeRepo) Create(_ context.Context, a resume.Analysis) (resume.Analysis, error) {
	if f.err != nil {
		return resume.Analysis{}, f.err
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeResumeRepo) ListByUser(_ context.Context, userID uuid.UUID, _ int) ([]resume.Analysis, error) {
	out := make([]resume.Analysis, 0)
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			out = append(out, f.created[i])
		}
	}
	return out, f.err
}

type fakeAnalyzer struct {
	res   ats.Result
	err   error
	calls int
	in    ats.Input
}

func (f *fakeAnalyzer) Analyze(_ context.Context, in ats.Input) (ats.Result, error) {
	f.calls++
	f.in = in
	return f.res, f.err
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes = append(c.deletes, key)
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if b, ok := c.data[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	b, _ := json.Marshal(n)
	c.data[key] = b
	return n, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]string
	err      error
	released []string
}

func (l *fakeLocker) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.held == nil {
		l.held = map[string]string{}
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = value
	return true, nil
}

func (l *fakeLocker) ReleaseIfValue(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == value {
		delete(l.held, key)
		l.released = append(l.released, key)
	}
	return nil
}

type notification struct {
	UserID uuid.UUID
	Event  string
	Data   any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) NotifyUser(userID uuid.UUID, event string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{UserID: userID, Event: event, Data: data})
}
