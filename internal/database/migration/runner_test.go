package migration

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"career-ready/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__alerts.sql", "CREATE TABLE alerts (id INT);")
	writeFile(t, dir, "V1__skills.sql", "CREATE TABLE skills (id INT);")
	writeFile(t, dir, "README.md", "not a migration")

	migs, err := LoadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "skills", migs[0].Name)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.NotEqual(t, migs[0].Checksum, migs[1].Checksum)
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V1__b.sql", "SELECT 2;")

	_, err := LoadMigrations(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")
}

func TestLoadMigrations_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   \n")

	_, err := LoadMigrations(dir)
	require.Error(t, err)
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	migs, err := LoadMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestLoadMigrations_RepositorySchema(t *testing.T) {
	migs, err := LoadMigrations(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Contains(t, migs[0].SQL, "readiness_scores")
}

func TestLoadMigrations_RejectsMisnamedSQL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__init_schema.sql", "SELECT 1;")
	writeFile(t, dir, "2_alerts.sql", "SELECT 2;")

	_, err := LoadMigrations(dir)
	assert.ErrorIs(t, err, ErrBadFileName)
}

func TestLoadMigrations_RejectsVersionGap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__init_schema.sql", "SELECT 1;")
	writeFile(t, dir, "V3__alerts.sql", "SELECT 3;")

	_, err := LoadMigrations(dir)
	assert.ErrorIs(t, err, ErrVersionGap)
}

// recordingDB keeps schema_migrations in memory and records executed SQL.
type recordingDB struct {
	applied map[int64]string
	execs   []string
}

func (d *recordingDB) Ping(context.Context) error { return nil }
func (d *recordingDB) Close() error { return nil }
func (d *recordingDB) Exec(_ context.Context, q string, _ ...any) (int64, error) {
	d.execs = append(d.execs, q)
	return 0, nil
}
func (d *recordingDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, nil
}
func (d *recordingDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (d *recordingDB) Begin(context.Context) (database.Tx, error) {
	return &recordingTx{db: d, pending: map[int64]string{}}, nil
}

type recordingTx struct {
	db      *recordingDB
	pending map[int64]string
}

func (t *recordingTx) Exec(_ context.Context, q string, args ...any) (int64, error) {
	t.db.execs = append(t.db.execs, q)
	if strings.HasPrefix(q, "INSERT INTO schema_migrations") {
		t.pending[args[0].(int64)] = args[2].(string)
	}
	return 1, nil
}
func (t *recordingTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, nil
}
func (t *recordingTx) QueryRow(_ context.Context, _ string, args ...any) database.Row {
	return checksumRow(t.db.applied[args[0].(int64)])
}
func (t *recordingTx) Commit(context.Context) error {
	for v, c := range t.pending {
		t.db.applied[v] = c
	}
	return nil
}
func (t *recordingTx) Rollback(context.Context) error { return nil }

type checksumRow string

func (r checksumRow) Scan(dest ...any) error {
	*dest[0].(*string) = string(r)
	return nil
}

func TestRunner_AppliesPendingFilesOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__init_schema.sql", "CREATE TABLE skills (id INT);")
	writeFile(t, dir, "V2__alerts.sql", "CREATE TABLE alerts (id INT);")

	var buf bytes.Buffer
	db := &recordingDB{applied: map[int64]string{}}
	r := Runner{Dir: dir, Logger: log.New(&buf, "", 0)}

	res, err := r.Run(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"V1__init_schema.sql", "V2__alerts.sql"}, res.Applied)
	assert.Equal(t, int64(2), res.Version)
	assert.Contains(t, buf.String(), "Migration applied | version=1 file=V1__init_schema.sql")
	assert.Contains(t, db.execs, "CREATE TABLE alerts (id INT);")

	res, err = r.Run(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.Equal(t, int64(2), res.Version)
}

func TestRunner_RejectsEditedMigration(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__init_schema.sql", "CREATE TABLE skills (id INT);")
	db := &recordingDB{applied: map[int64]string{1: "stale-checksum"}}

	_, err := Runner{Dir: dir}.Run(context.Background(), db)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}
