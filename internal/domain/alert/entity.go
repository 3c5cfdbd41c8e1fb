package alert

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeJobEligible    Type = "job_eligible"
	TypeSkillGap       Type = "skill_gap"
	TypeRecommendation Type = "recommendation"
	TypeGeneric        Type = "generic"
)

// Normalize folds unknown or empty types into TypeGeneric.
func (t Type) Normalize() Type {
	switch t {
	case TypeJobEligible, TypeSkillGap, TypeRecommendation:
		return t
	default:
		return TypeGeneric
	}
}

// Alert is a notification owned by a student. IsRead only ever moves from
// false to true.
type Alert struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
	Metadata  json.RawMessage
}
