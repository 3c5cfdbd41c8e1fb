package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":          "career-ready",
		"APP_ENV":           "test",
		"HTTP_PORT":         "8080",
		"DB_HOST":           "localhost",
		"DB_NAME":           "career",
		"DB_USER":           "postgres",
		"JWT_ACCESS_SECRET": "secret",
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, AIProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Empty(t, cfg.WS.AllowedOrigins)
	assert.Equal(t, 64, cfg.WS.SendBuffer)
	assert.Equal(t, 30*time.Second, cfg.WS.PingInterval)
	assert.Equal(t, "alerts:created", cfg.WS.AlertChannel)
}

func TestFromLookup_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "APP_NAME")
	delete(env, "JWT_ACCESS_SECRET")

	_, err := FromLookup(envFrom(env))
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestFromLookup_InvalidValues(t *testing.T) {
	env := baseEnv()
	env["AI_PROVIDER"] = "llama"
	env["AI_REQUEST_TIMEOUT"] = "soon"
	env["WS_SEND_BUFFER"] = "0"

	_, err := FromLookup(envFrom(env))
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "AI_PROVIDER")
	assert.Contains(t, err.Error(), "AI_REQUEST_TIMEOUT")
	assert.Contains(t, err.Error(), "WS_SEND_BUFFER")
}

func TestFromLookup_WSOrigins(t *testing.T) {
	env := baseEnv()
	env["WS_ALLOWED_ORIGINS"] = " https://a.example , ,https://b.example"

	cfg, err := FromLookup(envFrom(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.WS.AllowedOrigins)
}

func TestFromLookup_GeminiProvider(t *testing.T) {
	env := baseEnv()
	env["AI_PROVIDER"] = "Gemini"
	env["AI_REQUEST_TIMEOUT"] = "15"

	cfg, err := FromLookup(envFrom(env))
	require.NoError(t, err)
	assert.Equal(t, AIProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 15*time.Second, cfg.AI.RequestTimeout)
}
