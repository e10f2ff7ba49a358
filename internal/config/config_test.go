package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, DefaultLatestLimit, cfg.LatestLimit)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":         "9000",
		"DATABASE_URL": "postgres://u:p@db:5432/polls",
		"LOG_LEVEL":    "debug",
		"TIME_ZONE":    "UTC",
		"LATEST_LIMIT": "10",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://u:p@db:5432/polls", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.LatestLimit)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric port", map[string]string{"PORT": "http"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"unknown time zone", map[string]string{"TIME_ZONE": "Mars/Olympus_Mons"}},
		{"zero latest limit", map[string]string{"LATEST_LIMIT": "0"}},
		{"non-numeric latest limit", map[string]string{"LATEST_LIMIT": "five"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}
