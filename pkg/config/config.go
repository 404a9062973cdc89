package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the digest service reads from the environment.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	ServerPort string

	// RetentionDays is the general cleanup window; analytics events are
	// kept for seven days less than this.
	RetentionDays     int
	RetentionInterval time.Duration

	// RunStaleAfter is how long an open collection run may sit without an
	// end time before it is reported as abandoned.
	RunStaleAfter time.Duration

	// Repositories lists "owner/name" entries to pre-create on startup.
	Repositories []string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "digest")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RETENTION_DAYS", 30)
	v.SetDefault("RETENTION_INTERVAL", "24h")
	v.SetDefault("RUN_STALE_AFTER", "2h")
	v.SetDefault("REPOSITORIES", "")

	cfg := &Config{
		DBHost:        v.GetString("DB_HOST"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBPort:        v.GetString("DB_PORT"),
		ServerPort:    v.GetString("SERVER_PORT"),
		RetentionDays: v.GetInt("RETENTION_DAYS"),
	}

	if cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("RETENTION_DAYS must be positive, got %d", cfg.RetentionDays)
	}

	var err error
	cfg.RetentionInterval, err = time.ParseDuration(v.GetString("RETENTION_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL: %w", err)
	}
	cfg.RunStaleAfter, err = time.ParseDuration(v.GetString("RUN_STALE_AFTER"))
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_STALE_AFTER: %w", err)
	}

	if repos := v.GetString("REPOSITORIES"); repos != "" {
		for _, r := range strings.Split(repos, ",") {
			r = strings.TrimSpace(r)
			if r != "" {
				cfg.Repositories = append(cfg.Repositories, r)
			}
		}
	}

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
