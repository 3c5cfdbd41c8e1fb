package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"career-ready/internal/database"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// poolReporter is implemented by pinger backends that expose pool usage.
type poolReporter interface {
	Stats() database.PoolStats
}

type ComponentStatus struct {
	Status    string              `json:"status"`
	LatencyMS int64               `json:"latency_ms"`
	Error     string              `json:"error,omitempty"`
	Pool      *database.PoolStats `json:"pool,omitempty"`
}

type HealthStatus struct {
	Status    string          `json:"status"`
	Database  ComponentStatus `json:"database"`
	Redis     ComponentStatus `json:"redis"`
	CheckedAt time.Time       `json:"checked_at"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

// Health reports dependency status. Postgres is required; a Redis outage only
// degrades the service since caching and locks are bypassed.
type Health struct {
	db    Pinger
	redis Pinger
	log   *log.Logger
}

func NewHealthUsecase(db Pinger, redis Pinger, logger *log.Logger) *Health {
	if logger == nil {
		logger = log.Default()
	}
	return &Health{db: db, redis: redis, log: logger}
}

func (u *Health) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var dbStatus, redisStatus ComponentStatus

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		dbStatus = probe(ctx, u.db)
	}()
	go func() {
		defer wg.Done()
		redisStatus = probe(ctx, u.redis)
	}()
	wg.Wait()

	overall := "ok"
	switch {
	case dbStatus.Status != "up":
		overall = "down"
		u.log.Printf("health step=database status=%s err=%s", dbStatus.Status, dbStatus.Error)
	case redisStatus.Status != "up":
		overall = "degraded"
		u.log.Printf("health step=redis status=%s err=%s", redisStatus.Status, redisStatus.Error)
	}

	return HealthStatus{
		Status:    overall,
		Database:  dbStatus,
		Redis:     redisStatus,
		CheckedAt: time.Now().UTC(),
	}
}

func probe(ctx context.Context, p Pinger) ComponentStatus {
	if p == nil {
		return ComponentStatus{Status: "disabled"}
	}
	started := time.Now()
	err := p.Ping(ctx)
	st := ComponentStatus{Status: "up", LatencyMS: time.Since(started).Milliseconds()}
	if err != nil {
		st.Status = "down"
		st.Error = err.Error()
	}
	if r, ok := p.(poolReporter); ok {
		stats := r.Stats()
		st.Pool = &stats
	}
	return st
}
