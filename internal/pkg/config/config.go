package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is constructed once at
// startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr       string        `env:"SERVER_ADDR" envDefault:":8080"`
	AdminAddr        string        `env:"ADMIN_ADDR" envDefault:":9091"`
	PostgresURL      string        `env:"POSTGRES_URL,required"`
	RedisAddr        string        `env:"REDIS_ADDR"` // empty disables event fan-out
	ScoringURL       string        `env:"SCORING_URL,required"`
	ScoringTimeout   time.Duration `env:"SCORING_TIMEOUT" envDefault:"3s"`
	BlockThreshold   float64       `env:"BLOCK_THRESHOLD" envDefault:"0.8"`
	ApproveThreshold float64       `env:"APPROVE_THRESHOLD" envDefault:"0.3"`
	AutoDecisions    bool          `env:"AUTO_DECISIONS" envDefault:"true"`
	APIKeyCacheTTL   time.Duration `env:"API_KEY_CACHE_TTL" envDefault:"5m"`
	IngestRateLimit  float64       `env:"INGEST_RATE_LIMIT" envDefault:"100"`
	IngestRateBurst  int           `env:"INGEST_RATE_BURST" envDefault:"20"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces invariants that env parsing cannot express. A violated
// threshold ordering is a fatal startup error, never silently tolerated.
func (c *Config) Validate() error {
	if c.BlockThreshold < 0 || c.BlockThreshold > 1 {
		return fmt.Errorf("BLOCK_THRESHOLD %v out of range [0,1]", c.BlockThreshold)
	}
	if c.ApproveThreshold < 0 || c.ApproveThreshold > 1 {
		return fmt.Errorf("APPROVE_THRESHOLD %v out of range [0,1]", c.ApproveThreshold)
	}
	if c.ApproveThreshold >= c.BlockThreshold {
		return fmt.Errorf("APPROVE_THRESHOLD %v must be below BLOCK_THRESHOLD %v", c.ApproveThreshold, c.BlockThreshold)
	}
	if c.ScoringTimeout <= 0 {
		return fmt.Errorf("SCORING_TIMEOUT must be positive, got %v", c.ScoringTimeout)
	}
	return nil
}
