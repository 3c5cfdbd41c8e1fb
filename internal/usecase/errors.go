package usecase

import (
	"errors"

	"career-ready/internal/ai/ats"
	"career-ready/internal/domain/readiness"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	ErrJobNotFound       = errors.New("job not found")
	ErrSkillNotFound     = errors.New("skill not found")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrReadinessNotFound = errors.New("readiness score not found")
	ErrInvalidLevel      = errors.New("invalid skill level")

	ErrAnalysisInProgress = errors.New("a resume analysis is already in progress")

	ErrNoRequirementsDefined   = readiness.ErrNoRequirementsDefined
	ErrValidation              = ats.ErrValidation
	ErrAnalysisFailed          = ats.ErrAnalysisFailed
	ErrInvalidAIResponseFormat = ats.ErrInvalidAIResponseFormat
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
