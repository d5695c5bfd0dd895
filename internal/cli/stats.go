package cli

import (
	"fmt"
	"io"

	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var statsSince string

var statsCmd = &cobra.Command{
	Use:   "stats <item-id>",
	Short: "Show aggregated statistics for an item's history",
	Long: `Show aggregated statistics over an item's recorded answers: streaks and
true/false percentages for boolean items, descriptive statistics and a trend
sparkline for numeric ones.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := args[0]
		item, ok := Registry.Get(itemID)
		if !ok {
			return fmt.Errorf("unknown item %q", itemID)
		}

		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		answers, err := Store.AllAnswers(models.ReportDaily, itemID)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if statsSince != "" {
			var kept []models.Answer
			for _, a := range answers {
				if a.ReportDate >= statsSince {
					kept = append(kept, a)
				}
			}
			answers = kept
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n\n", item.Label, item.ID)

		if len(answers) == 0 {
			fmt.Fprintln(out, "No recorded answers.")
			return nil
		}

		if item.Input.Type == models.InputBoolean {
			// Missing days in the recorded range become nulls and stay
			// streak-neutral.
			printBooleanStats(out, core.BooleanSeries(core.BoolSeriesByDate(answers)))
			return nil
		}

		var values []float64
		for _, a := range answers {
			if v, ok := a.NumericValue(); ok {
				values = append(values, v)
			}
		}
		stats := core.NumericSeries(values)
		if stats == nil {
			fmt.Fprintln(out, "No numeric values recorded.")
			return nil
		}
		printNumericStats(out, stats, values)
		return nil
	},
}

func printBooleanStats(out io.Writer, stats core.BooleanStats) {
	fmt.Fprintf(out, "Recorded:       %d\n", stats.Count)
	fmt.Fprintf(out, "Done:           %d (%.0f%%)\n", stats.TrueCount, stats.TruePercentage)
	fmt.Fprintf(out, "Missed:         %d (%.0f%%)\n", stats.FalseCount, stats.FalsePercentage)
	if stats.NullCount > 0 {
		fmt.Fprintf(out, "Unanswered:     %d\n", stats.NullCount)
	}
	fmt.Fprintf(out, "Longest streak: %d done, %d missed\n", stats.LongestTrueStreak, stats.LongestFalseStreak)
	if stats.CurrentStreakType != core.StreakNone {
		kind := "done"
		if stats.CurrentStreakType == core.StreakFalse {
			kind = "missed"
		}
		fmt.Fprintf(out, "Current streak: %d %s\n", stats.CurrentStreak, kind)
	}
}

func printNumericStats(out io.Writer, stats *core.DescriptiveStats, values []float64) {
	fmt.Fprintf(out, "Recorded: %d\n", stats.Count)
	fmt.Fprintf(out, "Mean:     %.2f\n", stats.Mean)
	fmt.Fprintf(out, "Median:   %.2f\n", stats.Median)
	fmt.Fprintf(out, "Range:    %.2f (%.2f to %.2f)\n", stats.Range, stats.Min, stats.Max)
	fmt.Fprintf(out, "Std dev:  %.2f\n", stats.StandardDeviation)
	fmt.Fprintf(out, "IQR:      %.2f (Q1 %.2f, Q3 %.2f)\n", stats.IQR, stats.Q1, stats.Q3)
	if len(values) > 1 {
		fmt.Fprintf(out, "Trend:    %s\n", core.Sparkline(values))
	}
}

func init() {
	statsCmd.Flags().StringVar(&statsSince, "since", "", "earliest report date to include (YYYY-MM-DD)")
	rootCmd.AddCommand(statsCmd)
}
