package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-tracker/internal/app"
	"github.com/sevigo/pr-tracker/internal/reconcile"
)

var verifySample int

var reclassifyCmd = &cobra.Command{
	Use:   "reclassify",
	Short: "Re-runs the classifiers on the stored data of every open pull request",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			n, err := a.Controller.ReclassifyAll(ctx)
			successColor.Printf("Reclassified %d pull request(s)\n", n)
			return err
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks a sample of stored pull requests against GitHub and repairs drift",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			sample := verifySample
			if sample <= 0 {
				sample = a.Cfg.Sync.VerifySampleSize
			}
			report, err := a.Controller.Verify(ctx, sample)
			if errors.Is(err, reconcile.ErrLeaseHeld) {
				warnColor.Println("A verification pass is already running elsewhere.")
				return nil
			}
			if err != nil {
				return err
			}
			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			titleColor.Println("Verification report")
			fmt.Printf("  checked:       %d\n", report.Checked)
			if report.Discrepancies > 0 {
				errorColor.Printf("  discrepancies: %d (repaired)\n", report.Discrepancies)
			} else {
				successColor.Printf("  discrepancies: 0\n")
			}
			fmt.Printf("  errors:        %d\n", report.Errors)
			return nil
		})
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll [owner/repo]",
	Short: "Refreshes every open pull request of one or all configured repositories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			if len(args) == 1 {
				if err := a.Controller.PollRepository(ctx, args[0]); err != nil {
					return err
				}
				successColor.Printf("Polled %s\n", args[0])
				return nil
			}
			if err := a.Controller.PollAll(ctx); err != nil {
				return err
			}
			successColor.Printf("Polled %d repositories\n", len(a.Cfg.GitHub.Repositories))
			return nil
		})
	},
}

var syncReviewersCmd = &cobra.Command{
	Use:   "sync-reviewers",
	Short: "Refreshes the backend review group and reclassifies open pull requests on change",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			changed, err := a.Controller.SyncReviewerGroup(ctx)
			if err != nil {
				return err
			}
			if changed {
				successColor.Println("Reviewer group changed, open pull requests reclassified.")
			} else {
				dimColor.Println("Reviewer group unchanged.")
			}
			return nil
		})
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	verifyCmd.Flags().IntVar(&verifySample, "sample", 0, "Number of pull requests to verify (defaults to VERIFY_SAMPLE_SIZE)")
	verifyCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(reclassifyCmd, verifyCmd, pollCmd, syncReviewersCmd)
}
