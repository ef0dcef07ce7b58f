package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 14, cfg.HorizonDays)
	assert.Equal(t, 20, cfg.DailyCapacity)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 8, cfg.AgentMaxTurns)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Contains(t, cfg.ScheduleFile, "full_hospital_schedule_with_specialty.json")
	assert.Contains(t, cfg.BookingsFile, "bookings.json")
	assert.Contains(t, cfg.AbsencesFile, "dr_absents.json")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HORIZON_DAYS", "7")
	t.Setenv("DAILY_CAPACITY", "5")
	t.Setenv("DATA_DIR", "/var/lib/healthline")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("AGENT_TEMPERATURE", "0.7")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7, cfg.HorizonDays)
	assert.Equal(t, 5, cfg.DailyCapacity)
	assert.Equal(t, "/var/lib/healthline/bookings.json", cfg.BookingsFile)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.InDelta(t, 0.7, cfg.AgentTemperature, 1e-9)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("HORIZON_DAYS", "soon")
	t.Setenv("SESSION_TTL", "whenever")

	cfg := Load()

	assert.Equal(t, 14, cfg.HorizonDays)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
