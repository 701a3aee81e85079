package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	BotToken         string `env:"BOT_TOKEN" validate:"required"`
	StoreDriver      string `env:"STORE_DRIVER" validate:"required,oneof=sqlite postgres redis memory"`
	SQLitePath       string `env:"SQLITE_PATH"`
	RedisURL         string `env:"REDIS_URL"`
	Timezone         string `env:"TIMEZONE" validate:"required,timezone"`
	WordsFile        string `env:"WORDS_FILE"`
	ReminderSchedule string `env:"REMINDER_SCHEDULE" validate:"required,cronexpr"`
	Database         DatabaseConfig

	location *time.Location
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" validate:"required"`
	Port     string `env:"DB_PORT" validate:"required,numeric"`
	Name     string `env:"DB_NAME" validate:"required"`
	User     string `env:"DB_USER" validate:"required"`
	Password string `env:"DB_PASSWORD"`
}

var defaults = map[string]string{
	"STORE_DRIVER":      DriverSQLite,
	"SQLITE_PATH":       "./wordtrainer.db",
	"REDIS_URL":         "redis://localhost:6379/0",
	"TIMEZONE":          "UTC",
	"REMINDER_SCHEDULE": "0 9 * * *",
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DB_NAME":           "wordtrainer",
	"DB_USER":           "wordtrainer",
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		BotToken:         v.GetString("BOT_TOKEN"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		RedisURL:         v.GetString("REDIS_URL"),
		Timezone:         v.GetString("TIMEZONE"),
		WordsFile:        v.GetString("WORDS_FILE"),
		ReminderSchedule: v.GetString("REMINDER_SCHEDULE"),
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	cfg.location = loc

	return cfg, nil
}

func registerValidations(validate *validator.Validate, funcs map[string]validator.Func) error {
	for tag, fn := range funcs {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
	err := registerValidations(validate, map[string]validator.Func{
		"cronexpr": func(fl validator.FieldLevel) bool {
			_, err := cron.ParseStandard(fl.Field().String())
			return err == nil
		},
	})
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return fmt.Errorf("%s is required", fe.Field())
		}
		return fmt.Errorf("%s is invalid: %q", fe.Field(), fe.Value())
	}

	switch c.StoreDriver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required")
		}
	}
	return nil
}

// Location returns the time zone calendar days are computed in
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
