package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}

type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	ReleaseIfValue(ctx context.Context, key string, value string) error
}

// Notifier pushes an event to every live connection of one user.
type Notifier interface {
	NotifyUser(userID uuid.UUID, event string, data any)
}

const (
	EventReadinessUpdated = "readiness_updated"
	EventAlertRead        = "alert_read"
	EventAlertCreated     = "alert_created"
)

const (
	skillCatalogCacheKey = "skills:catalog"
	skillCatalogTTL      = 30 * time.Minute
	readinessListTTL     = 10 * time.Minute
	resumeLockTTL        = 2 * time.Minute
)

// ReadinessListCacheKey is versioned by the user's readiness generation, which
// Calculate bumps after every upsert. A list read before the bump can only be
// stored under a key that is no longer read.
func ReadinessListCacheKey(userID uuid.UUID, gen int64) string {
	return "readiness:list:" + userID.String() + ":" + strconv.FormatInt(gen, 10)
}

func readinessGenKey(userID uuid.UUID) string {
	return "readiness:gen:" + userID.String()
}

const ReadinessListCachePattern = "readiness:list:*"

func resumeLockKey(userID uuid.UUID) string {
	return "resume:lock:" + userID.String()
}
