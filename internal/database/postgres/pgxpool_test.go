package postgres

import (
	"context"
	"testing"
	"time"

	"career-ready/internal/config"
	"career-ready/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		DBHost:     " localhost ",
		DBPort:     "5432",
		DBName:     "career_ready",
		DBUser:     "career",
		DBPassword: "secret",
		DBSSLMode:  "disable",
	}
}

func TestDSN_TrimsFields(t *testing.T) {
	assert.Equal(t,
		"host=localhost port=5432 user=career password=secret dbname=career_ready sslmode=disable",
		DSN(testConfig()),
	)
}

func TestPoolConfig_AppliesOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.ConnectTimeout = 3 * time.Second
	cfg.PoolMaxConns = 4
	cfg.PoolMinConns = 10
	cfg.PoolMaxConnIdleTime = time.Minute

	pcfg, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, applicationName, pcfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(4), pcfg.MaxConns)
	assert.Equal(t, int32(4), pcfg.MinConns)
	assert.Equal(t, time.Minute, pcfg.MaxConnIdleTime)
}

func TestPool_NotConnected(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), ErrNilPool)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNilPool)
	_, err = p.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNilPool)
	var one int
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(&one), ErrNilPool)
	_, err = p.Begin(ctx)
	assert.ErrorIs(t, err, ErrNilPool)
	assert.Equal(t, database.PoolStats{}, p.Stats())
	assert.NoError(t, p.Close())
}
