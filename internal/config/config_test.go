package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rana718/autoservice/internal/seeder"
	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Database.Provider != "postgresql" {
		t.Errorf("Expected database provider to be 'postgresql', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}
	if cfg.Seed.Count != DefaultCount {
		t.Errorf("Expected seed count %d, got %d", DefaultCount, cfg.Seed.Count)
	}
	if cfg.Seed.RecentDays != DefaultRecentDays {
		t.Errorf("Expected recent days %d, got %d", DefaultRecentDays, cfg.Seed.RecentDays)
	}
	if cfg.Seed.InvoiceRange != seeder.InvoiceRangeFull {
		t.Errorf("Expected invoice range %q, got %q", seeder.InvoiceRangeFull, cfg.Seed.InvoiceRange)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "autoservice.config.json")
	content := `{
  "database": {"provider": "sqlite", "name": "shop.db"},
  "seed": {"count": 10, "recent_days": 30, "invoice_range": "legacy", "random_seed": 42}
}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Database.Provider != "sqlite" || cfg.Seed.Count != 10 || cfg.Seed.RecentDays != 30 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.Seed.InvoiceRange != seeder.InvoiceRangeLegacy || cfg.Seed.RandomSeed != 42 {
		t.Errorf("Unexpected seed config: %+v", cfg.Seed)
	}

	t.Setenv(cfg.Database.URLEnv, "")
	url, err := cfg.GetDatabaseURL()
	if err != nil {
		t.Fatalf("GetDatabaseURL failed: %v", err)
	}
	if url != "sqlite://shop.db" {
		t.Errorf("Expected sqlite://shop.db, got %s", url)
	}
}

func TestGetDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		db       Database
		env      string
		expected string
		wantErr  bool
	}{
		{
			name:     "environment wins",
			db:       Database{Provider: "postgresql", URLEnv: "AUTOSERVICE_TEST_URL", Host: "db", Name: "shop"},
			env:      "postgres://env@localhost/envdb",
			expected: "postgres://env@localhost/envdb",
		},
		{
			name:     "postgres from parts",
			db:       Database{Provider: "postgresql", URLEnv: "AUTOSERVICE_TEST_URL", Host: "db", User: "svc", Password: "p@ss", Name: "shop", SSLMode: "disable"},
			expected: "postgres://svc:p%40ss@db:5432/shop?sslmode=disable",
		},
		{
			name:     "mysql from parts",
			db:       Database{Provider: "mysql", URLEnv: "AUTOSERVICE_TEST_URL", Host: "db", Port: "3307", User: "svc", Name: "shop"},
			expected: "mysql://svc@db:3307/shop",
		},
		{
			name:    "nothing configured",
			db:      Database{Provider: "postgresql", URLEnv: "AUTOSERVICE_TEST_URL"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTOSERVICE_TEST_URL", tt.env)
			cfg := &Config{Database: tt.db}

			got, err := cfg.GetDatabaseURL()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %s", got)
				}
				if !strings.Contains(err.Error(), "AUTOSERVICE_TEST_URL") {
					t.Errorf("Error should name the env var: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDatabaseURL failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: Database{Provider: "mysql"},
			Seed:     Seed{Count: 1, RecentDays: 1, InvoiceRange: seeder.InvoiceRangeFull},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unsupported provider", func(c *Config) { c.Database.Provider = "oracle" }},
		{"zero count", func(c *Config) { c.Seed.Count = 0 }},
		{"negative days", func(c *Config) { c.Seed.RecentDays = -5 }},
		{"unknown invoice range", func(c *Config) { c.Seed.InvoiceRange = "half" }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Baseline config should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}
