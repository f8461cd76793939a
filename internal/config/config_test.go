// internal/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AccessTokenExpiry != time.Hour {
		t.Errorf("AccessTokenExpiry = %v, want 1h", cfg.AccessTokenExpiry)
	}
	if cfg.RecommendationLimit != 18 {
		t.Errorf("RecommendationLimit = %d, want 18", cfg.RecommendationLimit)
	}
	if cfg.RecommendationMinRating != 3.5 {
		t.Errorf("RecommendationMinRating = %v, want 3.5", cfg.RecommendationMinRating)
	}
	if cfg.BaseURL == "" {
		t.Error("BaseURL should be derived from port when unset")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("USE_S3", "true")
	t.Setenv("RECOMMENDATION_MIN_RATING", "4.0")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.BCryptCost != 12 {
		t.Errorf("BCryptCost = %d, want 12", cfg.BCryptCost)
	}
	if !cfg.UseS3 {
		t.Error("UseS3 should be true")
	}
	if cfg.RecommendationMinRating != 4.0 {
		t.Errorf("RecommendationMinRating = %v, want 4.0", cfg.RecommendationMinRating)
	}
	if cfg.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("AccessTokenExpiry = %v, want 30m", cfg.AccessTokenExpiry)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "forever")

	cfg := Load()

	if cfg.BCryptCost != 10 {
		t.Errorf("BCryptCost = %d, want fallback 10", cfg.BCryptCost)
	}
	if cfg.AccessTokenExpiry != time.Hour {
		t.Errorf("AccessTokenExpiry = %v, want fallback 1h", cfg.AccessTokenExpiry)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{
			"default secret in production",
			func(c *Config) { c.Environment = "production" },
			true,
		},
		{
			"missing database URL",
			func(c *Config) { c.DatabaseURL = "" },
			true,
		},
		{
			"bcrypt cost out of range",
			func(c *Config) { c.BCryptCost = 2 },
			true,
		},
		{
			"S3 without bucket",
			func(c *Config) { c.UseS3 = true; c.S3Bucket = "" },
			true,
		},
		{
			"page size above max",
			func(c *Config) { c.DefaultPageSize = 500 },
			true,
		},
		{
			"min rating out of range",
			func(c *Config) { c.RecommendationMinRating = 6 },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
