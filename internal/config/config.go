package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

// PlaceholderToken is the value shipped in .env.example. A production
// deployment must never start with it.
const PlaceholderToken = "YOUR_PAWAPAY_API_TOKEN"

type Config struct {
	Primary Primary       `koanf:"primary"`
	Server  ServerConfig  `koanf:"server"`
	Gateway GatewayConfig `koanf:"gateway"`
	Relay   RelayConfig   `koanf:"relay"`
	Logger  LoggerConfig  `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
	RateRPS      int           `koanf:"rate_rps"`
}

// GatewayConfig holds the two pawaPay base URLs and the bearer token. The
// standard API and the widget API are separate hosts.
type GatewayConfig struct {
	APIBaseURL    string        `koanf:"api_base_url" validate:"required"`
	WidgetBaseURL string        `koanf:"widget_base_url" validate:"required"`
	Token         string        `koanf:"token" validate:"required"`
	ConnTimeout   time.Duration `koanf:"conn_timeout"`
}

// RelayConfig covers the relay's own public surface: the base URL used to
// build return URLs, and the sandbox policy of assuming COMPLETED when the
// post-redirect status check fails.
type RelayConfig struct {
	PublicBaseURL   string `koanf:"public_base_url" validate:"required"`
	AssumeCompleted *bool  `koanf:"assume_completed"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Primary.Env, "production")
}

// SandboxAssumeCompleted reports whether an unreachable gateway after the
// hosted-page redirect is treated as a completed payment. Defaults to on
// outside production.
func (c *Config) SandboxAssumeCompleted() bool {
	if c.Relay.AssumeCompleted != nil {
		return *c.Relay.AssumeCompleted
	}
	return !c.IsProduction()
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("RELAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "RELAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	applyDefaults(mainConfig)

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if mainConfig.IsProduction() && mainConfig.Gateway.Token == PlaceholderToken {
		err := errors.New("refusing to start: gateway token is still the placeholder value")
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Primary.Env == "" {
		cfg.Primary.Env = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Gateway.ConnTimeout == 0 {
		cfg.Gateway.ConnTimeout = 30 * time.Second
	}
	if cfg.Relay.PublicBaseURL == "" {
		cfg.Relay.PublicBaseURL = "http://localhost:" + cfg.Server.Port
	}
}
