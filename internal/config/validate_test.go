package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			FuzzyAutoAccept:   0.85,
			FuzzyDisplayFloor: 0.30,
			FuzzyMinLength:    4,
			LengthWindow:      2,
			CandidateLimit:    50,
		},
		Enrichment: EnrichmentConfig{
			Timeout:   30 * time.Second,
			CacheSize: 256,
			CacheTTL:  10 * time.Minute,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func TestValidate_ResolverThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"auto accept zero", func(c *Config) { c.Resolver.FuzzyAutoAccept = 0 }},
		{"auto accept above one", func(c *Config) { c.Resolver.FuzzyAutoAccept = 1.1 }},
		{"floor negative", func(c *Config) { c.Resolver.FuzzyDisplayFloor = -0.1 }},
		{"floor above accept", func(c *Config) { c.Resolver.FuzzyDisplayFloor = 0.9 }},
		{"floor equals accept", func(c *Config) { c.Resolver.FuzzyDisplayFloor = 0.85 }},
		{"min length zero", func(c *Config) { c.Resolver.FuzzyMinLength = 0 }},
		{"negative window", func(c *Config) { c.Resolver.LengthWindow = -1 }},
		{"zero candidate limit", func(c *Config) { c.Resolver.CandidateLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_EnrichmentSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Enrichment.Timeout = 0 }},
		{"zero cache size", func(c *Config) { c.Enrichment.CacheSize = 0 }},
		{"negative ttl", func(c *Config) { c.Enrichment.CacheTTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}
