package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"career-ready/internal/domain/skill"
	"career-ready/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

type StudentSkillItem struct {
	ID        uuid.UUID  `json:"id"`
	SkillID   uuid.UUID  `json:"skill_id"`
	SkillName string     `json:"skill_name"`
	Category  string     `json:"category"`
	Level     string     `json:"level"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	Source    *string    `json:"source,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type UpsertStudentSkillInput struct {
	Level    string
	LastUsed *time.Time
	Source   *string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	GetSkill(ctx context.Context, id uuid.UUID) (SkillItem, error)
	ListStudentSkills(ctx context.Context, userID uuid.UUID) ([]StudentSkillItem, error)
	UpsertStudentSkill(ctx context.Context, userID, skillID uuid.UUID, in UpsertStudentSkillInput) (StudentSkillItem, error)
	RemoveStudentSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type Skill struct {
	skills   repository.SkillRepository
	students repository.StudentSkillRepository
	cache    Cache
	logger   *log.Logger
}

func NewSkillUsecase(skills repository.SkillRepository, students repository.StudentSkillRepository, cache Cache, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{skills: skills, students: students, cache: cache, logger: logger}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	if u.cache != nil {
		var cached []SkillItem
		if hit, err := u.cache.GetJSON(ctx, skillCatalogCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.skills.ListAll(ctx)
	if err != nil {
		u.logger.Printf("Skill catalog load failed | err=%v", err)
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toSkillItem(it))
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, skillCatalogCacheKey, out, skillCatalogTTL); err != nil {
			u.logger.Printf("Skill catalog cache set failed | err=%v", err)
		}
	}
	return out, nil
}

func (u *Skill) GetSkill(ctx context.Context, id uuid.UUID) (SkillItem, error) {
	if id == uuid.Nil {
		return SkillItem{}, ErrInvalidInput
	}
	s, err := u.skills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return SkillItem{}, ErrSkillNotFound
		}
		return SkillItem{}, ErrInternal
	}
	return toSkillItem(s), nil
}

func (u *Skill) ListStudentSkills(ctx context.Context, userID uuid.UUID) ([]StudentSkillItem, error) {
	items, err := u.students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]StudentSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toStudentSkillItem(it))
	}
	return out, nil
}

func (u *Skill) UpsertStudentSkill(ctx context.Context, userID, skillID uuid.UUID, in UpsertStudentSkillInput) (StudentSkillItem, error) {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return StudentSkillItem{}, ErrInvalidInput
	}
	level, ok := skill.ParseLevel(in.Level)
	if !ok {
		return StudentSkillItem{}, ErrInvalidLevel
	}

	if _, err := u.skills.FindByID(ctx, skillID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return StudentSkillItem{}, ErrSkillNotFound
		}
		return StudentSkillItem{}, ErrInternal
	}

	saved, err := u.students.Upsert(ctx, skill.StudentSkill{
		UserID:   userID,
		SkillID:  skillID,
		Level:    level,
		LastUsed: in.LastUsed,
		Source:   in.Source,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return StudentSkillItem{}, ErrSkillNotFound
		}
		u.logger.Printf("Student skill upsert failed | user_id=%s skill_id=%s err=%v", userID, skillID, err)
		return StudentSkillItem{}, ErrInternal
	}
	return toStudentSkillItem(saved), nil
}

func (u *Skill) RemoveStudentSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.students.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrStudentSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func toSkillItem(s skill.Skill) SkillItem {
	return SkillItem{ID: s.ID, Name: s.Name, Category: string(s.Category), Description: s.Description}
}

func toStudentSkillItem(s skill.StudentSkill) StudentSkillItem {
	return StudentSkillItem{
		ID:        s.ID,
		SkillID:   s.SkillID,
		SkillName: s.SkillName,
		Category:  string(s.Category),
		Level:     string(s.Level),
		LastUsed:  s.LastUsed,
		Source:    s.Source,
		UpdatedAt: s.UpdatedAt,
	}
}
