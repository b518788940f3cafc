package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-tracker/internal/config"
)

// CreateInstallationClient creates a GitHub client authenticated as the configured
// App installation. The transport refreshes installation tokens on its own.
func CreateInstallationClient(cfg *config.GitHubConfig, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	privateKey, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.PrivateKeyPath, err)
	}

	transport, err := ghinstallation.New(http.DefaultTransport, cfg.AppID, cfg.InstallationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation transport: %w", err)
	}

	return NewGitHubClient(github.NewClient(&http.Client{Transport: transport}), logger), nil
}

// NewClientFromConfig picks App installation auth when an App ID is configured,
// otherwise a personal access token.
func NewClientFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Client, error) {
	if cfg.GitHub.AppID != 0 {
		return CreateInstallationClient(&cfg.GitHub, logger)
	}
	if cfg.GitHub.Token == "" {
		return nil, fmt.Errorf("no GitHub credentials configured")
	}
	logger.Info("creating GitHub client from personal access token")
	return NewPATClient(ctx, cfg.GitHub.Token, logger), nil
}
