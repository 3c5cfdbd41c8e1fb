package resume

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FileName        string
	TargetJobID     *uuid.UUID
	ATSScore        int
	ExtractedSkills []string
	MatchedSkills   []string
	MissingSkills   []string
	Suggestions     string
	CreatedAt       time.Time
}
