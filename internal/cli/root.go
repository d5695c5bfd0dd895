package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Daybook - daily journaling reports with habit scheduling",
	Long: `Daybook generates daily journaling reports as markdown files: habits,
wellbeing check-ins, contemplative practices, and free-form prompts, each
scheduled by periodicity rules, rolling targets and limits, and dependencies
between items.

Filled-in reports are collected back into a local history database, which
feeds progress labels, streak statistics, and the periodic review reports.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("daybook %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
