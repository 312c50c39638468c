package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ResolverConfig holds the tiered-resolver thresholds. They are injected
// into the resolver rather than inlined so they stay independently testable
// and tunable.
type ResolverConfig struct {
	// FuzzyAutoAccept is the similarity at or above which a fuzzy candidate
	// is treated as resolved without caller disambiguation.
	FuzzyAutoAccept float64 `yaml:"fuzzy_auto_accept"  env:"RESOLVER_FUZZY_AUTO_ACCEPT"  env-default:"0.85"`
	// FuzzyDisplayFloor is the similarity at or above which a fuzzy candidate
	// is still shown as a suggestion.
	FuzzyDisplayFloor float64 `yaml:"fuzzy_display_floor" env:"RESOLVER_FUZZY_DISPLAY_FLOOR" env-default:"0.30"`
	// FuzzyMinLength excludes short tokens from fuzzy matching entirely;
	// edit-distance ratios are unstable below this length.
	FuzzyMinLength int `yaml:"fuzzy_min_length"   env:"RESOLVER_FUZZY_MIN_LENGTH"   env-default:"4"`
	// LengthWindow bounds the fuzzy candidate listing to lemmas within
	// ±LengthWindow characters of the query.
	LengthWindow int `yaml:"length_window"      env:"RESOLVER_LENGTH_WINDOW"      env-default:"2"`
	// CandidateLimit caps the fuzzy candidate listing.
	CandidateLimit int `yaml:"candidate_limit"    env:"RESOLVER_CANDIDATE_LIMIT"    env-default:"50"`
}

// EnrichmentConfig holds external-model gateway settings.
type EnrichmentConfig struct {
	APIKey string `yaml:"api_key" env:"ENRICHMENT_API_KEY"`
	Model  string `yaml:"model"   env:"ENRICHMENT_MODEL"   env-default:"claude-3-5-haiku-latest"`
	// Timeout bounds a single external-model call; cancellation never leaves
	// a partially committed write behind.
	Timeout   time.Duration `yaml:"timeout"    env:"ENRICHMENT_TIMEOUT"    env-default:"30s"`
	CacheSize int           `yaml:"cache_size" env:"ENRICHMENT_CACHE_SIZE" env-default:"256"`
	CacheTTL  time.Duration `yaml:"cache_ttl"  env:"ENRICHMENT_CACHE_TTL"  env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
