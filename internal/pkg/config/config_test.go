package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		PostgresURL:      "postgres://localhost/frauddb",
		ScoringURL:       "http://localhost:8000/score",
		ScoringTimeout:   3 * time.Second,
		BlockThreshold:   0.8,
		ApproveThreshold: 0.3,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"Approve Equals Block", func(c *Config) { c.ApproveThreshold = 0.8 }, true},
		{"Approve Above Block", func(c *Config) { c.ApproveThreshold = 0.9 }, true},
		{"Block Out Of Range", func(c *Config) { c.BlockThreshold = 1.2 }, true},
		{"Approve Negative", func(c *Config) { c.ApproveThreshold = -0.1 }, true},
		{"Zero Scoring Timeout", func(c *Config) { c.ScoringTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
