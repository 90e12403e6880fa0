package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/madarij/center/internal/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Interview struct {
		// Weekdays lists the two days interviews are held on, in tie-break order
		Weekdays  []string `yaml:"weekdays" env:"INTERVIEW_WEEKDAYS"`
		StartTime string   `yaml:"start_time" env:"INTERVIEW_START_TIME"`
		TimeZone  string   `yaml:"time_zone" env:"INTERVIEW_TIME_ZONE"`
		SlotLabel string   `yaml:"slot_label" env:"INTERVIEW_SLOT_LABEL"`
	} `yaml:"interview"`

	Scheduler struct {
		Enabled      bool   `yaml:"enabled" env:"SCHEDULER_ENABLED"`
		ReminderCron string `yaml:"reminder_cron" env:"SCHEDULER_REMINDER_CRON"`
	} `yaml:"scheduler"`

	Mail struct {
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
		FromName       string `yaml:"from_name" env:"MAIL_FROM_NAME"`
		FromEmail      string `yaml:"from_email" env:"MAIL_FROM_EMAIL"`
	} `yaml:"mail"`

	Seed struct {
		DirectorEmail    string `yaml:"director_email" env:"SEED_DIRECTOR_EMAIL"`
		DirectorPassword string `yaml:"director_password" env:"SEED_DIRECTOR_PASSWORD"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "madarij"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "madarij.center"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Interviews are held on Saturdays and Tuesdays after the afternoon anchor
	config.Interview.Weekdays = []string{"saturday", "tuesday"}
	config.Interview.StartTime = "16:00"
	config.Interview.TimeZone = "Africa/Cairo"
	config.Interview.SlotLabel = "after Asr"

	config.Scheduler.Enabled = true
	config.Scheduler.ReminderCron = "0 0 8 * * *"

	config.Mail.FromName = "Madarij"
	config.Mail.FromEmail = "noreply@madarij.center"

	config.Seed.DirectorEmail = "director@madarij.center"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config))
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime format: %w", err)
	}

	if err := validateInterview(config); err != nil {
		return err
	}

	if config.Scheduler.Enabled && strings.TrimSpace(config.Scheduler.ReminderCron) == "" {
		return fmt.Errorf("scheduler reminder cron spec is required when the scheduler is enabled")
	}

	return nil
}

func validateInterview(config *Config) error {
	days := config.Interview.Weekdays
	if len(days) != 2 {
		return fmt.Errorf("exactly two interview weekdays are required, got %d", len(days))
	}
	first, ok := validation.ParseWeekday(days[0])
	if !ok {
		return fmt.Errorf("invalid interview weekday %q", days[0])
	}
	second, ok := validation.ParseWeekday(days[1])
	if !ok {
		return fmt.Errorf("invalid interview weekday %q", days[1])
	}
	if first == second {
		return fmt.Errorf("interview weekdays must be distinct")
	}

	if _, _, err := helpers.ParseClock(config.Interview.StartTime); err != nil {
		return fmt.Errorf("invalid interview start time: %w", err)
	}

	if _, err := time.LoadLocation(config.Interview.TimeZone); err != nil {
		return fmt.Errorf("invalid interview time zone: %w", err)
	}

	return nil
}

// InterviewWeekdays returns the configured interview days in tie-break order.
// It must only be called on a validated config.
func (c *Config) InterviewWeekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(c.Interview.Weekdays))
	for _, name := range c.Interview.Weekdays {
		if d, ok := validation.ParseWeekday(name); ok {
			out = append(out, d)
		}
	}
	return out
}

// InterviewLocation returns the time zone interviews are scheduled in.
func (c *Config) InterviewLocation() *time.Location {
	loc, err := time.LoadLocation(c.Interview.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
