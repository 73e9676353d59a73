package config

import (
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/Rana718/autoservice/internal/seeder"
	"github.com/spf13/viper"
)

const (
	DefaultCount      = 500
	DefaultRecentDays = 1000
)

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Database Database `json:"database" mapstructure:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Host     string `json:"host,omitempty" mapstructure:"host"`
	Port     string `json:"port,omitempty" mapstructure:"port"`
	User     string `json:"user,omitempty" mapstructure:"user"`
	Password string `json:"password,omitempty" mapstructure:"password"`
	Name     string `json:"name,omitempty" mapstructure:"name"`
	SSLMode  string `json:"sslmode,omitempty" mapstructure:"sslmode"`
}

type Seed struct {
	Count        int    `json:"count" mapstructure:"count"`
	RecentDays   int    `json:"recent_days" mapstructure:"recent_days"`
	InvoiceRange string `json:"invoice_range" mapstructure:"invoice_range"`
	RandomSeed   int64  `json:"random_seed,omitempty" mapstructure:"random_seed"`
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v and fills in defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Seed.Count == 0 {
		cfg.Seed.Count = DefaultCount
	}
	if cfg.Seed.RecentDays == 0 {
		cfg.Seed.RecentDays = DefaultRecentDays
	}
	if cfg.Seed.InvoiceRange == "" {
		cfg.Seed.InvoiceRange = seeder.InvoiceRangeFull
	}

	return &cfg, nil
}

// GetDatabaseURL prefers the URL from the configured environment variable and
// falls back to the discrete host/name/credential fields.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	db := c.Database
	switch c.Database.Provider {
	case "sqlite", "sqlite3":
		if db.Name != "" {
			return "sqlite://" + db.Name, nil
		}
	default:
		if db.Host != "" && db.Name != "" {
			return c.buildURL(), nil
		}
	}

	return "", fmt.Errorf("database URL not found in environment variable %s and database.host/database.name are not set", c.Database.URLEnv)
}

func (c *Config) buildURL() string {
	db := c.Database
	scheme := "postgres"
	port := db.Port
	if c.Database.Provider == "mysql" {
		scheme = "mysql"
		if port == "" {
			port = "3306"
		}
	} else if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(db.Host, port),
		Path:   "/" + db.Name,
	}
	if db.User != "" {
		if db.Password != "" {
			u.User = url.UserPassword(db.User, db.Password)
		} else {
			u.User = url.User(db.User)
		}
	}
	if scheme == "postgres" {
		u.RawQuery = url.Values{"sslmode": []string{db.SSLMode}}.Encode()
	}
	return u.String()
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Seed.Count < 1 {
		return fmt.Errorf("seed.count must be a positive integer, got %d", c.Seed.Count)
	}
	if c.Seed.RecentDays < 1 {
		return fmt.Errorf("seed.recent_days must be a positive integer, got %d", c.Seed.RecentDays)
	}

	switch c.Seed.InvoiceRange {
	case seeder.InvoiceRangeFull, seeder.InvoiceRangeLegacy:
	default:
		return fmt.Errorf("seed.invoice_range must be %q or %q, got %q", seeder.InvoiceRangeFull, seeder.InvoiceRangeLegacy, c.Seed.InvoiceRange)
	}

	return nil
}
