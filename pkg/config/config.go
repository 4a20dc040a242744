package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Session  SessionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SKSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"SKSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SKSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SKSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points the storefront at the remote store API that owns
// products, orders and admin auth.
type BackendConfig struct {
	BaseURL      string        `envconfig:"SKSTORE_BACKEND_BASE_URL" required:"true"`
	Timeout      time.Duration `envconfig:"SKSTORE_BACKEND_TIMEOUT" default:"15s"`
	ProbeTimeout time.Duration `envconfig:"SKSTORE_BACKEND_PROBE_TIMEOUT" default:"2s"`
}

func (b BackendConfig) validate() error {
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvBackendBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", EnvBackendBaseURL, b.BaseURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

type CatalogConfig struct {
	RefreshInterval time.Duration `envconfig:"SKSTORE_CATALOG_REFRESH_INTERVAL" default:"5m"`
}

type CheckoutConfig struct {
	// SubmitTimeout bounds the order-creation call. The upstream contract
	// imposes none, so the storefront does.
	SubmitTimeout time.Duration `envconfig:"SKSTORE_CHECKOUT_SUBMIT_TIMEOUT" default:"30s"`
}

type SessionConfig struct {
	CookieName    string        `envconfig:"SKSTORE_SESSION_COOKIE" default:"sk_session"`
	TTL           time.Duration `envconfig:"SKSTORE_SESSION_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"SKSTORE_SESSION_SWEEP_INTERVAL" default:"10m"`
}
