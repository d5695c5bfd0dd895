package cli

import (
	"fmt"

	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var collectType string

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect answers from the newest report file",
	Long: `Read the newest report file for a tier, extract the filled-in answers, and
persist them into the history database.

Daily-periodic items answered after missed days are backfilled: their value is
copied onto the in-period past days that have a report recorded. Collecting an
untouched report does nothing, and re-collecting a filled report replaces the
previous pass's records rather than duplicating them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reportType, err := parseReportType(collectType)
		if err != nil {
			return err
		}

		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		// Backfill only applies to dailies; review answers stay on their
		// own date.
		var backfiller *core.Backfiller
		if reportType == models.ReportDaily {
			backfiller = core.NewBackfiller(Registry.Items(), Store, reportType)
		}

		collector := core.NewCollector(Files, Store, backfiller, reportType)
		result, err := collector.Collect()
		if err != nil {
			return err
		}

		if result.Empty {
			logEvent("report.collect_empty", "report had no filled-in values", map[string]any{
				"report_type": string(reportType),
				"path":        result.Source.Path,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to collect: %s has no filled-in values\n", result.Source.Path)
			return nil
		}

		logEvent("report.collected", "report collected", map[string]any{
			"report_type": string(reportType),
			"date":        result.Source.ReportDate,
			"collected":   result.Collected,
			"backfilled":  result.Backfilled,
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Collected %d answers from %s", result.Collected, result.Source.Path)
		if result.Backfilled > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d backfilled)", result.Backfilled)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	collectCmd.Flags().StringVarP(&collectType, "type", "t", "daily", "report tier to collect (daily, tenDay, thirtyDay, hundredFifty)")
	rootCmd.AddCommand(collectCmd)
}
