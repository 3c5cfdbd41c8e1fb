package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrSkillNotFound        = errors.New("skill not found")
	ErrStudentSkillNotFound = errors.New("student skill not found")
	ErrReadinessNotFound    = errors.New("readiness score not found")
	ErrAlertNotFound        = errors.New("alert not found")
)

func isNoRows(err error) bool {
	return err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows)
}
