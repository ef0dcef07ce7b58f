package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Flat-file table locations. The schedule and absence files are
	// read-only reference data; the bookings file is the ledger.
	DataDir      string
	ScheduleFile string
	AbsencesFile string
	BookingsFile string
	HospitalFile string

	// Availability window and per-doctor daily cap.
	HorizonDays   int
	DailyCapacity int

	// LLM agent settings.
	GeminiAPIKey     string
	GeminiModel      string
	AgentMaxTurns    int
	AgentTemperature float64

	// Session history. Redis when an address is set, in-memory otherwise.
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DataDir:          dataDir,
		ScheduleFile:     getEnv("SCHEDULE_FILE", filepath.Join(dataDir, "full_hospital_schedule_with_specialty.json")),
		AbsencesFile:     getEnv("ABSENCES_FILE", filepath.Join(dataDir, "dr_absents.json")),
		BookingsFile:     getEnv("BOOKINGS_FILE", filepath.Join(dataDir, "bookings.json")),
		HospitalFile:     getEnv("HOSPITAL_FILE", filepath.Join(dataDir, "hospital_info.json")),
		HorizonDays:      getEnvAsInt("HORIZON_DAYS", 14),
		DailyCapacity:    getEnvAsInt("DAILY_CAPACITY", 20),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AgentMaxTurns:    getEnvAsInt("AGENT_MAX_TURNS", 8),
		AgentTemperature: getEnvAsFloat("AGENT_TEMPERATURE", 0.2),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 24*time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
