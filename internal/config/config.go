package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	AI       AIConfig
	WS       WSConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
	Issuer          string
}

type AIConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	RequestTimeout time.Duration
}

type WSConfig struct {
	// AllowedOrigins empty means any origin may connect.
	AllowedOrigins []string
	SendBuffer     int
	PingInterval   time.Duration
	AlertChannel   string
}

const (
	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

func FromLookup(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	seconds := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return time.Duration(v) * time.Second
	}
	intDefault := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	int32Opt := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     optDefault("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        seconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32Opt("DB_POOL_MAX_CONNS"),
		PoolMinConns:          int32Opt("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   seconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   seconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: seconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      seconds("REDIS_TTL", 600*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: seconds("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		Issuer:          opt("JWT_ISSUER"),
	}

	cfg.AI = AIConfig{
		Provider:       strings.ToLower(optDefault("AI_PROVIDER", AIProviderOpenAI)),
		APIKey:         opt("AI_API_KEY"),
		BaseURL:        opt("AI_BASE_URL"),
		Model:          optDefault("AI_MODEL", "google/gemini-2.5-flash"),
		RequestTimeout: seconds("AI_REQUEST_TIMEOUT", 60*time.Second),
	}
	if cfg.AI.Provider != AIProviderOpenAI && cfg.AI.Provider != AIProviderGemini {
		invalid = append(invalid, "AI_PROVIDER")
	}

	cfg.WS = WSConfig{
		AllowedOrigins: splitList(opt("WS_ALLOWED_ORIGINS")),
		SendBuffer:     intDefault("WS_SEND_BUFFER", 64),
		PingInterval:   seconds("WS_PING_INTERVAL", 30*time.Second),
		AlertChannel:   optDefault("ALERTS_CHANNEL", "alerts:created"),
	}
	if cfg.WS.PingInterval <= 0 {
		cfg.WS.PingInterval = 30 * time.Second
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
