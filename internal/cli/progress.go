package cli

import (
	"fmt"

	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <item-id>",
	Short: "Show an item's target and limit progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := args[0]
		item, ok := Registry.Get(itemID)
		if !ok {
			return fmt.Errorf("unknown item %q", itemID)
		}

		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		eval := newEvaluator(models.ReportDaily)
		progress, err := eval.Progress(item)
		if err != nil {
			return fmt.Errorf("computing progress: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", item.Label, item.ID)

		if progress.Target == nil && progress.Limit == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No target or limit configured.")
			return nil
		}

		if progress.Target != nil {
			status := ""
			if progress.Target.IsComplete {
				status = " (complete)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Target: %d/%d%s\n", progress.Target.Current, progress.Target.Target, status)
		}
		if progress.Limit != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Limit:  %d/%d (%.0f%%)\n", progress.Limit.Current, progress.Limit.Limit, progress.Limit.Percentage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
