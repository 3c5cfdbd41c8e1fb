package job

import (
	"time"

	"career-ready/internal/domain/skill"

	"github.com/google/uuid"
)

type Role struct {
	ID                 uuid.UUID
	Title              string
	Company            string
	Location           string
	Description        string
	SalaryRange        string
	ExperienceRequired string
	IsActive           bool
	CreatedAt          time.Time
}

// Requirement is one required skill of a job role. Weight is nil when the
// column is NULL; scoring treats that as 1.
type Requirement struct {
	JobID         uuid.UUID
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel skill.Level
	Weight        *float64
	IsMandatory   bool
}
