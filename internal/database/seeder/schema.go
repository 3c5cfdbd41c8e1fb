package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"career-ready/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// Table lists columns a seeder writes.
type Table struct {
	Name    string
	Columns []string
}

// Enum lists labels a seeder casts values to.
type Enum struct {
	Name   string
	Labels []string
}

type Schema struct {
	Tables []Table
	Enums  []Enum
}

// EnsureSchema reports every missing column or enum label of s in one error,
// so a database migrated to an older version fails before any row is written.
func EnsureSchema(ctx context.Context, db database.DB, s Schema) error {
	if db == nil {
		return database.ErrNoDB
	}

	var missing []string
	for _, t := range s.Tables {
		got, err := queryStrings(ctx, db,
			`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
			t.Name,
		)
		if err != nil {
			return err
		}
		for _, c := range t.Columns {
			if _, ok := got[c]; !ok {
				missing = append(missing, "column "+t.Name+"."+c)
			}
		}
	}
	for _, e := range s.Enums {
		got, err := queryStrings(ctx, db,
			`SELECT e.enumlabel FROM pg_enum e JOIN pg_type t ON t.oid = e.enumtypid WHERE t.typname = $1`,
			e.Name,
		)
		if err != nil {
			return err
		}
		for _, l := range e.Labels {
			if _, ok := got[l]; !ok {
				missing = append(missing, "enum "+e.Name+"."+l)
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

func queryStrings(ctx context.Context, db database.DB, query string, arg string) (map[string]struct{}, error) {
	rows, err := db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = struct{}{}
	}
	return out, rows.Err()
}
