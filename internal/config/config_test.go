package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:                "8420",
		JWTSecret:           "a-development-secret-that-is-long-enough",
		Env:                 "development",
		PageSize:            10,
		FeedCacheTTLSeconds: 20,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"Missing Port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT Secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero Page Size", func(c *Config) { c.PageSize = 0 }, true},
		{"Zero Cache TTL", func(c *Config) { c.FeedCacheTTLSeconds = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidateProduction(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Env = "production"
	cfg.DBPassword = "something-strong"
	assert.NoError(t, cfg.Validate())

	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "a-production-secret-that-is-long-enough!"
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())
}
