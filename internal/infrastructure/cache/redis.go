package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"career-ready/internal/config"

	"github.com/redis/go-redis/v9"
)

var ErrUnavailable = errors.New("redis unavailable")

// Redis wraps a go-redis client. When the server cannot be reached at startup
// every cache operation becomes a miss or a no-op so callers fall through to
// Postgres.
type Redis struct {
	client     *redis.Client
	logger     *log.Logger
	defaultTTL time.Duration

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	addr := fmt.Sprintf("%s:%s", strings.TrimSpace(cfg.Host), strings.TrimSpace(cfg.Port))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 600 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache | addr=%s err=%v", addr, err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger, defaultTTL: ttl}
	}

	if logger != nil {
		logger.Printf("[Cache] Redis connected | addr=%s", addr)
	}
	return &Redis{client: client, logger: logger, defaultTTL: ttl}
}

// NewRedisFromClient wraps an existing client without pinging it.
func NewRedisFromClient(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	if ttl <= 0 {
		ttl = 600 * time.Second
	}
	return &Redis{client: client, logger: logger, defaultTTL: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis error, bypassing cache: %v", err)
	}
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Incr bumps a counter key and returns its new value. Counters carry no TTL.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	if r.isUnavailable() {
		return 0, nil
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return 0, err
	}
	return n, nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if r.isUnavailable() {
		return 0, nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return 0, nil
	}

	deleted := 0
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			if r.logger != nil {
				r.logger.Printf("[Cache] Redis delete error | key=%s pattern=%s err=%v", k, pattern, err)
			}
			continue
		}
		deleted++
	}
	return deleted, iter.Err()
}

// SetIfNotExists returns ErrUnavailable when Redis is down so callers can
// decide whether to proceed without the lock.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return false, ErrUnavailable
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	return ok, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseIfValue deletes key only while it still holds value.
func (r *Redis) ReleaseIfValue(ctx context.Context, key string, value string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := releaseScript.Run(ctx, r.client, []string{key}, value).Err(); err != nil && !errors.Is(err, redis.Nil) {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Publish(ctx context.Context, channel string, payload any) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, channel, b).Err()
}

// Subscribe calls handle for every message on channel until ctx is done.
func (r *Redis) Subscribe(ctx context.Context, channel string, handle func(payload []byte)) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	sub := r.client.Subscribe(ctx, channel)
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			handle([]byte(msg.Payload))
		}
	}
}
