package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	testCases := map[string]struct {
		env         map[string]string
		expectedErr string
		verify      func(t *testing.T, cfg *Config)
	}{
		"should apply defaults when only DSN is set": {
			env: map[string]string{"POSTGRES_DSN": "postgres://localhost/store"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
				assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
				assert.Equal(t, PasswordModePlain, cfg.Auth.PasswordMode)
				assert.Equal(t, "admin@ecommercestore.com", cfg.Seed.AdminEmail)
				assert.Equal(t, "admim", cfg.Seed.AdminPassword)
				assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL())
				assert.Equal(t, 3*time.Second, cfg.Confirmation.Timeout())
			},
		},
		"should fail without DSN": {
			env:         map[string]string{},
			expectedErr: "POSTGRES_DSN is required",
		},
		"should fail on unknown password mode": {
			env: map[string]string{
				"POSTGRES_DSN":       "postgres://localhost/store",
				"AUTH_PASSWORD_MODE": "argon2",
			},
			expectedErr: `invalid AUTH_PASSWORD_MODE "argon2"`,
		},
		"should fail on malformed redis db": {
			env: map[string]string{
				"POSTGRES_DSN": "postgres://localhost/store",
				"REDIS_DB":     "one",
			},
			expectedErr: "invalid REDIS_DB",
		},
		"should honour overrides": {
			env: map[string]string{
				"POSTGRES_DSN":              "postgres://localhost/store",
				"APP_PORT":                  "8080",
				"AUTH_PASSWORD_MODE":        "BCRYPT",
				"CATALOG_CACHE_TTL_SECONDS": "0",
				"REDIS_ENABLED":             "false",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
				assert.Equal(t, PasswordModeBcrypt, cfg.Auth.PasswordMode)
				assert.Zero(t, cfg.Catalog.CacheTTL())
				assert.False(t, cfg.Redis.Enabled)
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"POSTGRES_DSN", "AUTH_PASSWORD_MODE", "REDIS_DB", "APP_PORT", "CATALOG_CACHE_TTL_SECONDS", "REDIS_ENABLED"} {
				t.Setenv(key, "")
			}
			for key, val := range tc.env {
				t.Setenv(key, val)
			}

			cfg, err := Load()
			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErr)
				return
			}
			require.NoError(t, err)
			tc.verify(t, cfg)
		})
	}
}
