package seeder

import (
	"context"

	"career-ready/internal/database"
)

// Seeder upserts one slice of reference data keyed by natural keys, so running
// it twice leaves the same rows. Requires names the schema Run writes to; the
// Runner checks it before Run is called.
type Seeder interface {
	Name() string
	Requires() Schema
	Run(ctx context.Context, db database.DB) (int, error)
}

// validator is implemented by seeders whose static data can be checked
// without a database.
type validator interface {
	Validate() error
}
