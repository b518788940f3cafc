package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-tracker/internal/app"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/storage"
)

var (
	outputJSON   bool
	statusRepo   string
	onlyReady    bool
	onlyApproved bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the stored approval state of open pull requests",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			filter := storage.ListFilter{Repository: statusRepo}
			if onlyReady {
				filter.Ready = &onlyReady
			}
			if onlyApproved {
				filter.Approved = &onlyApproved
			}

			prs, err := a.Store.ListOpenPullRequests(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list pull requests: %w", err)
			}

			if outputJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(prs)
			}

			if len(prs) == 0 {
				dimColor.Println("No open pull requests are tracked.")
				return nil
			}
			return printStatusTable(prs)
		})
	},
}

func printStatusTable(prs []*core.PullRequest) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PULL REQUEST\tAUTHOR\tCHECKS\tBACKEND\tREADY\tFULLY APPROVED\tNARRATIVE")
	for _, pr := range prs {
		fmt.Fprintf(w, "%s\t%s\t%d/%d (%d failing)\t%s\t%s\t%s\t%s\n",
			pr.Ref().String(),
			pr.Author,
			pr.SuccessfulChecks, pr.TotalChecks, pr.FailedChecks,
			backendLabel(pr.BackendApprovalStatus),
			flag(pr.ReadyForBackendReview),
			flag(pr.FullyApproved),
			narrativeLabel(pr.Narrative),
		)
	}
	return w.Flush()
}

func backendLabel(s core.BackendApprovalStatus) string {
	if s == core.BackendApproved {
		return successColor.Sprint(s)
	}
	return warnColor.Sprint(s)
}

func flag(b bool) string {
	if b {
		return successColor.Sprint("yes")
	}
	return dimColor.Sprint("no")
}

func narrativeLabel(n core.Narrative) string {
	if n.Kind == core.NarrativeNone || n.Kind == "" {
		return dimColor.Sprint("-")
	}
	if n.Detail != "" {
		return errorColor.Sprint(n.Detail)
	}
	return errorColor.Sprint(string(n.Kind))
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output status as JSON")
	statusCmd.Flags().StringVar(&statusRepo, "repo", "", "Only show pull requests of owner/repo")
	statusCmd.Flags().BoolVar(&onlyReady, "ready", false, "Only show pull requests ready for backend review")
	statusCmd.Flags().BoolVar(&onlyApproved, "approved", false, "Only show fully approved pull requests")
	rootCmd.AddCommand(statusCmd)
}
