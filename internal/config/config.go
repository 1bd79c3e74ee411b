package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/billy/internal/database"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Billy"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"Europe/Lisbon"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"billy"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"3"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
		ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	SMTP struct {
		Host     string `envconfig:"SMTP_HOST"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		Username string `envconfig:"SMTP_USERNAME"`
		Password string `envconfig:"SMTP_PASSWORD"`
		Sender   string `envconfig:"SMTP_SENDER" default:"billy@localhost"`
	}

	AI struct {
		BaseURL string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
		APIKey  string        `envconfig:"AI_API_KEY"`
		Model   string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
		Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}

	TUI struct {
		UserEmail string `envconfig:"TUI_USER_EMAIL"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Pool is the connection pool sizing for database.New.
func (c *Config) Pool() database.Pool {
	return database.Pool{
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
		ConnMaxIdleTime: c.DB.ConnMaxIdleTime,
	}
}

// Location resolves App.Timezone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
