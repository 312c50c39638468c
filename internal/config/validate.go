package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	if err := c.Enrichment.validate(); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}
	return nil
}

func (r *ResolverConfig) validate() error {
	if r.FuzzyAutoAccept <= 0 || r.FuzzyAutoAccept > 1 {
		return fmt.Errorf("fuzzy_auto_accept must be in (0,1] (got %v)", r.FuzzyAutoAccept)
	}
	if r.FuzzyDisplayFloor < 0 || r.FuzzyDisplayFloor > 1 {
		return fmt.Errorf("fuzzy_display_floor must be in [0,1] (got %v)", r.FuzzyDisplayFloor)
	}
	if r.FuzzyDisplayFloor >= r.FuzzyAutoAccept {
		return fmt.Errorf("fuzzy_display_floor (%v) must be below fuzzy_auto_accept (%v)",
			r.FuzzyDisplayFloor, r.FuzzyAutoAccept)
	}
	if r.FuzzyMinLength < 1 {
		return fmt.Errorf("fuzzy_min_length must be >= 1 (got %d)", r.FuzzyMinLength)
	}
	if r.LengthWindow < 0 {
		return fmt.Errorf("length_window must be >= 0 (got %d)", r.LengthWindow)
	}
	if r.CandidateLimit <= 0 {
		return fmt.Errorf("candidate_limit must be > 0 (got %d)", r.CandidateLimit)
	}
	return nil
}

func (e *EnrichmentConfig) validate() error {
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", e.Timeout)
	}
	if e.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", e.CacheSize)
	}
	if e.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", e.CacheTTL)
	}
	return nil
}
