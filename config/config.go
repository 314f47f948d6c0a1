package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the configuration for the assistant.
//
//go:generate go run ../cmd/generate/main.go -type=Env -output=../.env.example
//go:generate go run ../cmd/generate/main.go -type=ConfigMap -output=../deploy/configmap.yaml
//go:generate go run ../cmd/generate/main.go -type=Secret -output=../deploy/secret.yaml
//go:generate go run ../cmd/generate/main.go -type=MD -output=../Configurations.md
type Config struct {
	// General settings
	ApplicationName string `env:"APPLICATION_NAME, default=ledger-calendar-assistant" description:"The name of the application"`
	Environment     string `env:"ENVIRONMENT, default=production" description:"The environment"`
	EnableTelemetry bool   `env:"ENABLE_TELEMETRY, default=false" description:"Enable telemetry"`
	Timezone        string `env:"TIMEZONE, default=America/Sao_Paulo" description:"Time zone used to resolve dates and event times"`
	SpreadsheetID   string `env:"SPREADSHEET_ID" description:"Identifier of the spreadsheet used as ledger"`

	// Telegram settings
	Telegram *TelegramConfig `env:", prefix=TELEGRAM_" description:"Telegram configuration"`

	// Google settings
	Google *GoogleConfig `env:", prefix=GOOGLE_" description:"Google APIs configuration"`

	// Server settings
	Server *ServerConfig `env:", prefix=SERVER_" description:"Health and metrics server configuration"`
}

// Telegram configuration
type TelegramConfig struct {
	Token       string `env:"TOKEN" type:"secret" description:"Telegram bot access token"`
	PollTimeout int    `env:"POLL_TIMEOUT, default=60" description:"Long polling timeout in seconds"`
	Debug       bool   `env:"DEBUG, default=false" description:"Log raw Telegram API traffic"`
}

// Google configuration
type GoogleConfig struct {
	CredentialsJSON string `env:"CREDENTIALS_JSON, default=credentials.json" description:"Path to the OAuth client secret file"`
	TokenPath       string `env:"TOKEN_PATH, default=token.json" description:"Path to the persisted authorization token"`
	CalendarID      string `env:"CALENDAR_ID, default=primary" description:"Calendar used for events"`
	SheetRange      string `env:"SHEET_RANGE, default=Sheet1!A2:E" description:"Range read by the monthly summary"`
}

// Server configuration
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0" description:"Server host"`
	Port         string        `env:"PORT, default=8080" description:"Server port"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s" description:"Read timeout"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s" description:"Write timeout"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s" description:"Idle timeout"`
}

// Load configuration
func (cfg *Config) Load(lookuper envconfig.Lookuper) (Config, error) {
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, err
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return *cfg, nil
}

// Validate checks the settings the bot cannot start without
func (cfg *Config) Validate() error {
	if cfg.Telegram == nil || cfg.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}
	return nil
}

// Location returns the configured time zone, falling back to UTC
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
