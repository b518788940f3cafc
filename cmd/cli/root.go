package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/pr-tracker/internal/app"
	"github.com/sevigo/pr-tracker/internal/wire"
)

var (
	githubToken string
	logLevel    string
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "prt",
	Short: "prt is the command-line interface for the PR tracker.",
	Long:  `A CLI for inspecting and repairing the pull request approval state kept by the PR tracker.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// LoadConfig reads the environment, so flags are passed on through it.
		if githubToken != "" {
			_ = os.Setenv("GITHUB_TOKEN", githubToken)
		}
		if logLevel != "" {
			_ = os.Setenv("LOG_LEVEL", logLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token, overrides GITHUB_TOKEN")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
}

// withApp initializes the application services and runs fn with them.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app services: %w", err)
	}
	defer cleanup()

	return fn(ctx, a)
}
