package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Cron       CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// AutoMigrate applies the embedded schema migrations on startup.
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig holds the organization's working-day rules.
type AttendanceConfig struct {
	Timezone               string
	StandardCheckInTime    string
	LateThresholdMinutes   int
	HalfDayLateMinutes     int
	MaxWorkingMinutes      int
	PaidLeavesPerMonthDays int
	MaxCarryoverLeaveDays  int
	MinutesPerWorkDay      int
	QRCodeSuffix           string
	QRCodeValidity         time.Duration
}

type CronConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_system"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),

		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// Attendance rules
	attendance := AttendanceConfig{
		Timezone:            getEnv("TIMEZONE", "Asia/Karachi"),
		StandardCheckInTime: getEnv("STANDARD_CHECKIN_TIME", "12:00"),
		QRCodeSuffix:        getEnv("QR_CODE_SUFFIX", "syntax_move"),
	}
	ints := []struct {
		key      string
		fallback string
		dst      *int
	}{
		{"LATE_THRESHOLD_MINUTES", "15", &attendance.LateThresholdMinutes},
		{"HALF_DAY_LATE_MINUTES", "60", &attendance.HalfDayLateMinutes},
		{"MAX_WORKING_MINUTES", "540", &attendance.MaxWorkingMinutes},
		{"PAID_LEAVES_PER_MONTH_DAYS", "2", &attendance.PaidLeavesPerMonthDays},
		{"MAX_CARRYOVER_LEAVE_DAYS", "1", &attendance.MaxCarryoverLeaveDays},
		{"MINUTES_PER_WORK_DAY", "540", &attendance.MinutesPerWorkDay},
	}
	for _, v := range ints {
		n, err := strconv.Atoi(getEnv(v.key, v.fallback))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		*v.dst = n
	}
	attendance.QRCodeValidity, err = time.ParseDuration(getEnv("QR_CODE_VALIDITY", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid QR_CODE_VALIDITY: %w", err)
	}
	config.Attendance = attendance

	config.Cron = CronConfig{
		Enabled: getEnv("CRON_ENABLED", "true") == "true",
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	return c.Attendance.Validate()
}

// Validate checks the attendance rules are usable.
func (a AttendanceConfig) Validate() error {
	if _, err := a.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", a.Timezone, err)
	}
	if _, _, err := a.CheckInClock(); err != nil {
		return err
	}
	if a.MaxWorkingMinutes <= 0 {
		return fmt.Errorf("MAX_WORKING_MINUTES must be positive")
	}
	if a.MinutesPerWorkDay <= 0 {
		return fmt.Errorf("MINUTES_PER_WORK_DAY must be positive")
	}
	if a.QRCodeSuffix == "" {
		return fmt.Errorf("QR_CODE_SUFFIX is required")
	}
	if a.HalfDayLateMinutes < a.LateThresholdMinutes {
		slog.Warn("half-day threshold is below the late threshold",
			"half_day_late_minutes", a.HalfDayLateMinutes,
			"late_threshold_minutes", a.LateThresholdMinutes,
		)
	}
	return nil
}

// Location loads the organization timezone.
func (a AttendanceConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

// CheckInClock parses StandardCheckInTime ("HH:MM").
func (a AttendanceConfig) CheckInClock() (hour, minute int, err error) {
	parts := strings.Split(a.StandardCheckInTime, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid STANDARD_CHECKIN_TIME %q: want HH:MM", a.StandardCheckInTime)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid STANDARD_CHECKIN_TIME hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid STANDARD_CHECKIN_TIME minute %q", parts[1])
	}
	return hour, minute, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (a AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
