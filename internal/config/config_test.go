package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "college-portal.backend/internal/domain/errors"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "pass",
		DBName:   "db",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=user password=pass dbname=db sslmode=disable", cfg.DSN())
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("JWT_REFRESH_EXPIRY", "24h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "a", cfg.JWT.AccessSecret)
	assert.Equal(t, "r", cfg.JWT.RefreshSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFallbacks(t *testing.T) {
	t.Setenv("DB_PORT", "not-number")
	t.Setenv("JWT_ACCESS_EXPIRY", "bad-duration")
	t.Setenv("BCRYPT_COST", "")

	cfg := Load()
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, time.Minute, cfg.Jobs.PendingMetricsInterval)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWT:      JWTConfig{AccessSecret: "access", RefreshSecret: "refresh"},
			Security: SecurityConfig{BcryptCost: 10},
		}
	}

	require.NoError(t, base().Validate())

	cases := map[string]func(*Config){
		"missing access secret":  func(c *Config) { c.JWT.AccessSecret = "" },
		"missing refresh secret": func(c *Config) { c.JWT.RefreshSecret = "" },
		"shared secret":          func(c *Config) { c.JWT.RefreshSecret = c.JWT.AccessSecret },
		"cost too low":           func(c *Config) { c.Security.BcryptCost = 0 },
		"cost too high":          func(c *Config) { c.Security.BcryptCost = 32 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), domainerrors.ErrConfiguration)
		})
	}
}

func TestLoad_DayDurations(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("JWT_REFRESH_EXPIRY", "30d")

	cfg := Load()
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshExpiry)
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsUnreadableDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")

	for _, value := range []string{"bad-duration", "7days", "-3d"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("JWT_REFRESH_EXPIRY", value)
			cfg := Load()
			err := cfg.Validate()
			require.ErrorIs(t, err, domainerrors.ErrConfiguration)
			assert.Contains(t, err.Error(), "JWT_REFRESH_EXPIRY")
		})
	}
}
