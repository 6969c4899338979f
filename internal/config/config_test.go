package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	var c Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &c,
		Lookuper: envconfig.MapLookuper(env),
	})
	return &c, err
}

func TestDefaults(t *testing.T) {
	c, err := load(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LogJSON)
	assert.False(t, c.OIDC.Enabled)
}

func TestOverrides(t *testing.T) {
	c, err := load(t, map[string]string{
		"ADDR":              ":9000",
		"DATABASE_URL":      "postgres://localhost/weightduel",
		"LOG_LEVEL":         "debug",
		"LOG_JSON":          "true",
		"OIDC_ENABLED":      "true",
		"OIDC_ISSUER_URL":   "https://id.example.com",
		"OIDC_CLIENT_ID":    "weightduel",
		"OIDC_REDIRECT_URL": "https://weightduel.example.com/api/auth/sso/callback",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "postgres://localhost/weightduel", c.DatabaseURL)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.LogJSON)
	assert.True(t, c.OIDC.Enabled)
	assert.Equal(t, "https://id.example.com", c.OIDC.IssuerURL)
}
