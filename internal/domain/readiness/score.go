package readiness

import (
	"time"

	"github.com/google/uuid"
)

// Score is the persisted readiness of one student for one job. There is at
// most one per (UserID, JobID).
type Score struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	JobID        uuid.UUID
	JobTitle     string
	Company      string
	Score        int
	Status       Status
	Missing      []string
	Weak         []string
	Strong       []string
	CalculatedAt time.Time
}

func NewScore(userID, jobID uuid.UUID, r Result, at time.Time) Score {
	return Score{
		UserID:       userID,
		JobID:        jobID,
		Score:        r.Score,
		Status:       r.Status,
		Missing:      r.Missing,
		Weak:         r.Weak,
		Strong:       r.Strong,
		CalculatedAt: at,
	}
}
