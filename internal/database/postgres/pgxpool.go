package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"career-ready/internal/config"
	"career-ready/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "career-ready"

// ErrNilPool is returned by every method of a Pool that was never connected.
var ErrNilPool = errors.New("postgres: pool not connected")

// Pool adapts pgxpool to database.DB so repositories, migrations and seeders
// share one connection pool.
type Pool struct {
	pool *pgxpool.Pool
}

// DSN builds a libpq keyword/value connection string.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(cfg.DBHost),
		strings.TrimSpace(cfg.DBPort),
		strings.TrimSpace(cfg.DBUser),
		cfg.DBPassword,
		strings.TrimSpace(cfg.DBName),
		strings.TrimSpace(cfg.DBSSLMode),
	)
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pcfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if pcfg.MinConns > pcfg.MaxConns {
		pcfg.MinConns = pcfg.MaxConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolHealthCheckPeriod > 0 {
		pcfg.HealthCheckPeriod = cfg.PoolHealthCheckPeriod
	}
	return pcfg, nil
}

// Connect opens the pool and verifies it with a ping. Without a deadline on
// ctx the ping is bounded to five seconds.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *log.Logger) (*Pool, error) {
	pcfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if logger != nil {
		logger.Printf("Postgres connected | host=%s db=%s app=%s max_conns=%d min_conns=%d",
			cfg.DBHost, cfg.DBName, applicationName, pcfg.MaxConns, pcfg.MinConns)
	}
	return &Pool{pool: p}, nil
}

func (p *Pool) connected() bool {
	return p != nil && p.pool != nil
}

func (p *Pool) Ping(ctx context.Context) error {
	if !p.connected() {
		return ErrNilPool
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p.connected() {
		p.pool.Close()
	}
	return nil
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if !p.connected() {
		return 0, ErrNilPool
	}
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Pool) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if !p.connected() {
		return nil, ErrNilPool
	}
	r, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if !p.connected() {
		return errRow{err: ErrNilPool}
	}
	return p.pool.QueryRow(ctx, query, args...)
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if !p.connected() {
		return nil, ErrNilPool
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return txAdapter{tx: tx}, nil
}

// Stats is a snapshot of pool usage, reported by the health endpoint.
func (p *Pool) Stats() database.PoolStats {
	if !p.connected() {
		return database.PoolStats{}
	}
	s := p.pool.Stat()
	return database.PoolStats{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		Acquired: s.AcquiredConns(),
		Max:      s.MaxConns(),
	}
}

// txAdapter narrows pgx.Tx to database.Tx. pgx.Rows and pgx.Row already
// satisfy database.Rows and database.Row.
type txAdapter struct {
	tx pgx.Tx
}

func (t txAdapter) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t txAdapter) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	r, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (t txAdapter) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.tx.QueryRow(ctx, query, args...)
}

func (t txAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t txAdapter) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
