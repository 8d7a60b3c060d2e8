package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "stockdeck"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv         = "STOCKDECK_APP_ENV"
	EnvPort           = "STOCKDECK_APP_PORT"
	EnvBackendBaseURL = "STOCKDECK_BACKEND_BASE_URL"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Refresh RefreshConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Refresh.FanOutLimit < 1 {
		return nil, fmt.Errorf("fan-out limit must be at least 1, got %d", cfg.Refresh.FanOutLimit)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKDECK_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKDECK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKDECK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKDECK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig locates the remote inventory API.
type BackendConfig struct {
	BaseURL string        `envconfig:"STOCKDECK_BACKEND_BASE_URL" default:"http://localhost:4567"`
	Timeout time.Duration `envconfig:"STOCKDECK_BACKEND_TIMEOUT" default:"30s"`
}

// RefreshConfig bounds the per-distributor offerings fan-out.
type RefreshConfig struct {
	FanOutLimit int `envconfig:"STOCKDECK_REFRESH_FANOUT_LIMIT" default:"4"`
}
