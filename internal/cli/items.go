package cli

import (
	"fmt"

	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var (
	itemsCategory string
	itemsAll      bool
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List trackable items",
	Long: `List the trackable items scheduled for today's report, or every defined
item with --all. Items can be filtered by category: habit, wellbeing,
practice, or prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		items := Registry.Items()
		if itemsCategory != "" {
			items = Registry.ByCategory(models.ItemCategory(itemsCategory))
		}

		eval := newEvaluator(models.ReportDaily)
		shown := 0
		for _, item := range items {
			if !itemsAll {
				show, err := eval.ShouldShow(item)
				if err != nil {
					return fmt.Errorf("evaluating %s: %w", item.ID, err)
				}
				if !show {
					continue
				}
			}
			shown++

			line := fmt.Sprintf("%-24s %-10s %s", item.ID, item.Category, item.Label)
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}

		if shown == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No items.")
		}
		return nil
	},
}

func init() {
	itemsCmd.Flags().StringVarP(&itemsCategory, "category", "c", "", "filter by category (habit, wellbeing, practice, prompt)")
	itemsCmd.Flags().BoolVarP(&itemsAll, "all", "a", false, "list every defined item, not just today's")
	rootCmd.AddCommand(itemsCmd)
}
