package seeder

import (
	"context"
	"fmt"
	"log"

	"career-ready/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Applied is the outcome of one seeder.
type Applied struct {
	Name string
	Rows int
}

// Run validates all seed data up front, then runs each seeder in order after
// checking its schema. It stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) ([]Applied, error) {
	if db == nil {
		return nil, database.ErrNoDB
	}
	for _, s := range r.Seeders {
		if v, ok := s.(validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
	}

	out := make([]Applied, 0, len(r.Seeders))
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := EnsureSchema(ctx, db, s.Requires()); err != nil {
			return out, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		n, err := s.Run(ctx, db)
		if err != nil {
			return out, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		out = append(out, Applied{Name: s.Name(), Rows: n})
		if r.Logger != nil {
			r.Logger.Printf("Seeder applied | name=%s rows=%d", s.Name(), n)
		}
	}
	return out, nil
}
