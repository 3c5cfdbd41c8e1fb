package readiness

import (
	"errors"
	"math"

	"career-ready/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrNoRequirementsDefined = errors.New("no skill requirements defined for this job")

type Status string

const (
	StatusJobReady       Status = "job_ready"
	StatusPartiallyReady Status = "partially_ready"
	StatusNotReady       Status = "not_ready"
)

const (
	jobReadyThreshold       = 70
	partiallyReadyThreshold = 40
)

type StudentSkill struct {
	SkillID uuid.UUID
	Level   skill.Level
}

type Requirement struct {
	SkillID       uuid.UUID
	RequiredLevel skill.Level
	Weight        *float64
	// IsMandatory is carried for callers; scoring does not read it.
	IsMandatory bool
}

type CatalogEntry struct {
	ID   uuid.UUID
	Name string
}

type Result struct {
	Score   int
	Status  Status
	Missing []string
	Weak    []string
	Strong  []string
}

// Compute scores a student's declared skills against a job's weighted
// requirements. It is pure: the same inputs always give the same Result.
func Compute(studentSkills []StudentSkill, reqs []Requirement, catalog []CatalogEntry) (Result, error) {
	if len(reqs) == 0 {
		return Result{}, ErrNoRequirementsDefined
	}

	names := make(map[uuid.UUID]string, len(catalog))
	for _, c := range catalog {
		names[c.ID] = c.Name
	}

	levels := make(map[uuid.UUID]skill.Level, len(studentSkills))
	for _, s := range studentSkills {
		levels[s.SkillID] = s.Level
	}

	res := Result{
		Missing: make([]string, 0),
		Weak:    make([]string, 0),
		Strong:  make([]string, 0),
	}

	var matchScore, totalWeight float64
	for _, r := range reqs {
		name := names[r.SkillID]
		weight := effectiveWeight(r.Weight)
		totalWeight += weight

		lvl, ok := levels[r.SkillID]
		if !ok {
			res.Missing = append(res.Missing, name)
			continue
		}

		studentLevel := lvl.Weight()
		requiredLevel := r.RequiredLevel.Weight()
		if studentLevel >= requiredLevel {
			res.Strong = append(res.Strong, name)
			matchScore += weight
			continue
		}

		res.Weak = append(res.Weak, name)
		if requiredLevel > 0 {
			matchScore += weight * (studentLevel / requiredLevel)
		}
	}

	res.Score = clampInt(int(math.Round(matchScore/totalWeight*100)), 0, 100)
	res.Status = StatusFor(res.Score)
	return res, nil
}

// StatusFor classifies a score. Each band includes its lower bound.
func StatusFor(score int) Status {
	switch {
	case score >= jobReadyThreshold:
		return StatusJobReady
	case score >= partiallyReadyThreshold:
		return StatusPartiallyReady
	default:
		return StatusNotReady
	}
}

func effectiveWeight(w *float64) float64 {
	if w == nil {
		return 1
	}
	v := *w
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
