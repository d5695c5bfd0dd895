package cli

import (
	"fmt"

	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's daily report file",
	Long: `Generate today's daily report and write it to the journal directory.

The report contains only the items scheduled for today: periodicity rules,
rolling targets and limits, and dependency conditions are all evaluated
against the answer history. Sections that fail to render are skipped with a
warning; the rest of the report still generates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		eval := newEvaluator(models.ReportDaily)
		components := core.NewComponentBuilder(Registry, eval, Store, models.ReportDaily, nil)
		builder := core.NewReportBuilder(components, nil)

		report, err := builder.BuildDaily()
		if err != nil {
			return fmt.Errorf("building daily report: %w", err)
		}

		for _, skipped := range report.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: section %s skipped: %v\n", skipped.ComponentID, skipped.Err)
			logEvent("component.failed", "report section failed to render", map[string]any{
				"component": skipped.ComponentID,
				"error":     skipped.Err.Error(),
			})
		}
		for _, failed := range report.FailedItems {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: item %s hidden: %v\n", failed.ItemID, failed.Err)
			logEvent("item.failed", "item evaluation failed, item hidden", map[string]any{
				"item":  failed.ItemID,
				"error": failed.Err.Error(),
			})
		}

		info, err := Files.Write(report.Type, report.Date, report.Markdown)
		if err != nil {
			return fmt.Errorf("writing report file: %w", err)
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
	rootCmd.AddCommand(generateCmd)
}
