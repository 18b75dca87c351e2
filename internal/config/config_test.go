package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: "8083"},
		Database:  DatabaseConfig{DSN: "postgres://x"},
		Log:       LogConfig{Level: "info", Format: "json"},
		Calendar:  CalendarConfig{Timezone: "America/Chicago", HorizonDays: 30},
		Retention: RetentionConfig{Schedule: "@daily", AnnouncementDays: 90},
	}
}

func TestValidateResolvesLocation(t *testing.T) {
	cfg := validConfig()

	require.NoError(t, cfg.Validate())
	require.NotNil(t, cfg.Calendar.Location)
	assert.Equal(t, "America/Chicago", cfg.Calendar.Location.String())
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = " "
	cfg.Calendar.Timezone = "Mars/Olympus"
	cfg.Retention.Schedule = "not a schedule"
	cfg.Log.Format = "xml"
	cfg.Calendar.HorizonDays = 400

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn")
	assert.Contains(t, err.Error(), "calendar.timezone")
	assert.Contains(t, err.Error(), "retention.schedule")
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "calendar.horizon_days")
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
calendar:
  timezone: UTC
  horizon_days: 14
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CALENDAR_HORIZON_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Calendar.HorizonDays)
	assert.Equal(t, "UTC", cfg.Calendar.Location.String())
	assert.Equal(t, "gameplan.events", cfg.AMQP.Exchange)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()

	require.Error(t, err)
}
