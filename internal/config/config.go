// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

// TranzakConfig holds the gateway credentials and the webhook shared secret.
// A missing credential is not a startup error: the charge path fails locally
// before any I/O and the webhook path fails closed, so the process can still
// serve whichever side is configured.
type TranzakConfig struct {
	AppID         string `yaml:"app_id"`
	APIKey        string `yaml:"api_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	BaseURL       string `yaml:"base_url"` // empty = production endpoint
}

type PaymentConfig struct {
	Tranzak TranzakConfig `yaml:"tranzak"`
	// PublicBaseURL is where the hosted payment page sends the payer back
	// after a redirect-flow charge.
	PublicBaseURL string `yaml:"public_base_url"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Payment PaymentConfig `yaml:"payment"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8085
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	// Secrets may be supplied via environment instead of the file.
	if v := os.Getenv("TRANZAK_APP_ID"); v != "" {
		cfg.Payment.Tranzak.AppID = v
	}
	if v := os.Getenv("TRANZAK_API_KEY"); v != "" {
		cfg.Payment.Tranzak.APIKey = v
	}
	if v := os.Getenv("TRANZAK_WEBHOOK_SECRET"); v != "" {
		cfg.Payment.Tranzak.WebhookSecret = v
	}

	// Minimal validation
	if cfg.Payment.PublicBaseURL == "" {
		return nil, errors.New("payment.public_base_url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
