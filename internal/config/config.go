// Package config loads service configuration from the environment.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full service configuration.
type Config struct {
	Addr        string `env:"ADDR, default=:8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	LogJSON     bool   `env:"LOG_JSON, default=false"`

	OIDC OIDC `env:", prefix=OIDC_"`
}

// OIDC configures the optional SSO login flow. When Enabled is false the
// service runs with password auth only.
type OIDC struct {
	Enabled      bool   `env:"ENABLED, default=false"`
	IssuerURL    string `env:"ISSUER_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

// Load reads the configuration from process environment variables.
func Load(ctx context.Context) (*Config, error) {
	var c Config
	if err := envconfig.Process(ctx, &c); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if c.OIDC.Enabled && (c.OIDC.IssuerURL == "" || c.OIDC.ClientID == "") {
		return nil, fmt.Errorf("OIDC_ISSUER_URL and OIDC_CLIENT_ID are required when OIDC_ENABLED is set")
	}
	return &c, nil
}
