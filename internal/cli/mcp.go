package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	daybookmcp "github.com/daybook-sh/daybook/internal/mcp"
	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the Daybook MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Daybook MCP server on stdio",
	Long: `Start the Daybook MCP server on stdio transport.

The server exposes read-only journal data as MCP tools that AI assistants
can call: today_items, item_progress, item_stats, get_metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Registry == nil {
			return fmt.Errorf("item registry not initialized")
		}

		if err := Store.Load(); err != nil {
			return fmt.Errorf("loading history: %w", err)
		}

		eval := newEvaluator(models.ReportDaily)
		srv := daybookmcp.NewServer(Registry, eval, Store, MetricsCalc, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
