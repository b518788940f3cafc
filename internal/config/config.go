package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	Server     ServerConfig
	GitHub     GitHubConfig
	Database   DBConfig
	Logging    logger.Config
	Cache      CacheConfig
	Sync       SyncConfig
	RulesPath  string
	MaxWorkers int
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string
}

// GitHubConfig holds credentials and the set of tracked repositories.
type GitHubConfig struct {
	AppID                int64
	InstallationID       int64
	PrivateKeyPath       string
	WebhookSecret        string
	Token                string
	Org                  string
	Repositories         []string
	ReviewerTeam         string
	PublishApprovalCheck bool
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN builds a lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

// CacheConfig selects the failing-check snapshot cache backend.
type CacheConfig struct {
	Backend          string
	RedisURL         string
	FailingChecksTTL time.Duration
}

// SyncConfig controls the background reconciliation loops.
type SyncConfig struct {
	PollInterval         time.Duration
	VerifyInterval       time.Duration
	VerifySampleSize     int
	ReviewerSyncInterval time.Duration
	LeaseTTL             time.Duration
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets defaults, and validates required fields.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/pr-tracker.private-key.pem")
	v.SetDefault("GITHUB_REVIEWER_TEAM", "backend-review-group")
	v.SetDefault("GITHUB_PUBLISH_CHECK", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "pr_tracker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_FAILING_CHECKS_TTL", "6h")
	v.SetDefault("POLL_INTERVAL", "10m")
	v.SetDefault("VERIFY_INTERVAL", "30m")
	v.SetDefault("VERIFY_SAMPLE_SIZE", 25)
	v.SetDefault("REVIEWER_SYNC_INTERVAL", "1h")
	v.SetDefault("LEASE_TTL", "15m")
	v.SetDefault("MAX_WORKERS", 5)
	v.SetDefault("RULES_PATH", "gate-rules.yml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{Port: v.GetString("SERVER_PORT")},
		GitHub: GitHubConfig{
			AppID:                v.GetInt64("GITHUB_APP_ID"),
			InstallationID:       v.GetInt64("GITHUB_INSTALLATION_ID"),
			PrivateKeyPath:       v.GetString("GITHUB_PRIVATE_KEY_PATH"),
			WebhookSecret:        v.GetString("GITHUB_WEBHOOK_SECRET"),
			Token:                v.GetString("GITHUB_TOKEN"),
			Org:                  v.GetString("GITHUB_ORG"),
			Repositories:         splitList(v.GetString("GITHUB_REPOS")),
			ReviewerTeam:         v.GetString("GITHUB_REVIEWER_TEAM"),
			PublishApprovalCheck: v.GetBool("GITHUB_PUBLISH_CHECK"),
		},
		Database: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Username:        v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
		Cache: CacheConfig{
			Backend:          strings.ToLower(v.GetString("CACHE_BACKEND")),
			RedisURL:         v.GetString("REDIS_URL"),
			FailingChecksTTL: v.GetDuration("CACHE_FAILING_CHECKS_TTL"),
		},
		Sync: SyncConfig{
			PollInterval:         v.GetDuration("POLL_INTERVAL"),
			VerifyInterval:       v.GetDuration("VERIFY_INTERVAL"),
			VerifySampleSize:     v.GetInt("VERIFY_SAMPLE_SIZE"),
			ReviewerSyncInterval: v.GetDuration("REVIEWER_SYNC_INTERVAL"),
			LeaseTTL:             v.GetDuration("LEASE_TTL"),
		},
		RulesPath:  v.GetString("RULES_PATH"),
		MaxWorkers: v.GetInt("MAX_WORKERS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.GitHub.AppID == 0 && c.GitHub.Token == "" {
		return fmt.Errorf("either GITHUB_APP_ID or GITHUB_TOKEN must be set")
	}
	if c.GitHub.AppID != 0 && c.GitHub.InstallationID == 0 {
		return fmt.Errorf("GITHUB_INSTALLATION_ID must be set when GITHUB_APP_ID is used")
	}
	if c.GitHub.WebhookSecret == "" {
		return fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set")
	}
	if c.GitHub.Org == "" {
		return fmt.Errorf("GITHUB_ORG must be set")
	}
	for _, r := range c.GitHub.Repositories {
		if _, _, err := core.ParseRepo(r); err != nil {
			return fmt.Errorf("GITHUB_REPOS: %w", err)
		}
	}
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set when CACHE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Sync.VerifySampleSize < 0 {
		return fmt.Errorf("VERIFY_SAMPLE_SIZE must not be negative, got %d", c.Sync.VerifySampleSize)
	}
	if c.Sync.LeaseTTL <= 0 {
		return fmt.Errorf("LEASE_TTL must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
