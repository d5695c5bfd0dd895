package cli

import (
	"fmt"

	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var reviewType string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Generate a periodic review report",
	Long: `Generate a review report aggregating the tier's window of daily answers:
completion rates and streaks for habits, rating trends for wellbeing
dimensions, plus free-form reflection prompts.

Tiers: tenDay (10 days), thirtyDay (30 days), hundredFifty (150 days).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reportType, err := parseReportType(reviewType)
		if err != nil {
			return err
		}
		if reportType == models.ReportDaily {
			return fmt.Errorf("use 'daybook generate' for daily reports")
		}

		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		builder := core.NewReviewBuilder(Registry, Store, nil)
		report, err := builder.Build(reportType)
		if err != nil {
			return fmt.Errorf("building review: %w", err)
		}

		info, err := Files.Write(report.Type, report.Date, report.Markdown)
		if err != nil {
			return fmt.Errorf("writing review file: %w", err)
		}

		logEvent("report.generated", "report generated", map[string]any{
			"report_type": string(report.Type),
			"date":        report.Date,
			"path":        info.Path,
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", info.Path)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewType, "type", "t", "tenDay", "review tier (tenDay, thirtyDay, hundredFifty)")
	rootCmd.AddCommand(reviewCmd)
}
