package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestFromEnv_Defaults(t *testing.T) {
	setSQLiteEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 9*time.Hour+30*time.Minute, cfg.LateAfter())
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, 12*time.Hour, cfg.AccessTTL())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.Cron.MarkAbsent)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("ATTENDANCE_LATE_AFTER", "08:45")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CRON_MARK_ABSENT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
	assert.Equal(t, 8*time.Hour+45*time.Minute, cfg.LateAfter())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.Cron.MarkAbsent)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":   {"JWT_SECRET_KEY": ""},
		"bad timezone":     {"APP_TIMEZONE": "Mars/Olympus"},
		"bad late clock":   {"ATTENDANCE_LATE_AFTER": "9:30"},
		"unknown driver":   {"STORE_DRIVER": "mongo"},
		"postgres no pass": {"STORE_DRIVER": "postgres", "DB_PASSWORD": ""},
		"bad port":         {"APP_PORT": "http"},
		"bad cron flag":    {"CRON_MARK_ABSENT": "sometimes"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setSQLiteEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "salon", Password: "pw", Name: "salon", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://salon:pw@db:5432/salon?sslmode=disable", cfg.DatabaseURL())
}
