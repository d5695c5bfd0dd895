package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var metricsSince string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show aggregated metrics from the event log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics not available (event logging is disabled)")
		}

		since, err := parseSinceFlag(metricsSince)
		if err != nil {
			return err
		}

		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Metrics since %s\n\n", since.Format("2006-01-02"))
		fmt.Fprintf(out, "Reports generated:  %d\n", metrics.ReportsGenerated)
		fmt.Fprintf(out, "Reports collected:  %d\n", metrics.ReportsCollected)
		fmt.Fprintf(out, "Answers collected:  %d\n", metrics.AnswersCollected)
		fmt.Fprintf(out, "Answers backfilled: %d\n", metrics.AnswersBackfilled)
		fmt.Fprintf(out, "Empty collections:  %d\n", metrics.EmptyCollections)
		fmt.Fprintf(out, "Section failures:   %d\n", metrics.ComponentFailures)
		fmt.Fprintf(out, "Total events:       %d\n", metrics.EventCount)

		if len(metrics.ReportsByType) > 0 {
			fmt.Fprintln(out, "\nBy report type:")
			for reportType, count := range metrics.ReportsByType {
				fmt.Fprintf(out, "  %-20s %d\n", reportType, count)
			}
		}
		return nil
	},
}

// parseSinceFlag parses durations like "7d" or "24h" into a point in the past.
func parseSinceFlag(s string) (time.Time, error) {
	now := time.Now().UTC()
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	var num int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}

func init() {
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "time window (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
