package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"career-ready/internal/database"
)

// advisoryLockKey serialises concurrent runners (server replicas and
// careerctl). The lock is transaction scoped so it is safe on a pool.
const advisoryLockKey int64 = 582014733

var (
	ErrBadFileName      = errors.New("migration file name must match V<version>__<name>.sql")
	ErrVersionGap       = errors.New("migration versions must be contiguous from V1")
	ErrChecksumMismatch = errors.New("applied migration was edited")
)

// Runner applies the versioned files of Dir in order. The layout starts at
// V1__init_schema.sql and every further change is a new V<n+1>__<name>.sql;
// applied files are never edited.
type Runner struct {
	Dir    string
	Logger *log.Logger
}

// Result lists the files applied by one Run and the schema version reached.
type Result struct {
	Applied []string
	Version int64
}

func (r Runner) Run(ctx context.Context, db database.DB) (Result, error) {
	var res Result
	if db == nil {
		return res, database.ErrNoDB
	}

	dir, err := resolveDir(r.Dir)
	if err != nil {
		return res, err
	}

	migs, err := LoadMigrations(dir)
	if err != nil {
		return res, err
	}
	if len(migs) == 0 {
		r.logf("Migrations skipped | dir=%s reason=no_files", dir)
		return res, nil
	}

	for _, m := range migs {
		applied, err := applyOne(ctx, db, m)
		if err != nil {
			return res, err
		}
		res.Version = m.Version
		if !applied {
			continue
		}
		res.Applied = append(res.Applied, m.Filename)
		r.logf("Migration applied | version=%d file=%s checksum=%s", m.Version, m.Filename, m.Checksum[:12])
	}

	r.logf("Migrations done | dir=%s version=%d applied=%d", dir, res.Version, len(res.Applied))
	return res, nil
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

func resolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		return dir, nil
	}
	if st, err := os.Stat("migrations"); err == nil && st.IsDir() {
		return "migrations", nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "migrations"), nil
}

// LoadMigrations reads every .sql file of dir. Other files are ignored, but a
// .sql file outside the V<n>__<name> layout or a hole in the version sequence
// is an error.
func LoadMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".sql") {
			continue
		}
		m := fileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrBadFileName, name)
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("%w: %s", ErrBadFileName, name)
		}

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     m[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i, m := range migs {
		if i > 0 && m.Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", m.Version)
		}
		if m.Version != int64(i+1) {
			return nil, fmt.Errorf("%w: expected V%d, found %s", ErrVersionGap, i+1, m.Filename)
		}
	}

	return migs, nil
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// applyOne runs m in its own transaction under the advisory lock, re-reading
// schema_migrations after the lock is held so a concurrent runner that got
// there first is observed. It reports whether m was applied by this call.
func applyOne(ctx context.Context, db database.DB, m Migration) (bool, error) {
	applied := false
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey); err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}
		if _, err := tx.Exec(ctx, createSchemaMigrations); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		var checksum string
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE((SELECT checksum FROM schema_migrations WHERE version = $1), '')`,
			m.Version,
		).Scan(&checksum); err != nil {
			return err
		}
		if checksum != "" {
			if checksum != m.Checksum {
				return fmt.Errorf("%w: version=%d file=%s", ErrChecksumMismatch, m.Version, m.Filename)
			}
			return nil
		}

		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
			m.Version, m.Name, m.Checksum,
		); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
