// Package mcp provides an MCP (Model Context Protocol) server that exposes
// read-only Daybook journal data as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/internal/observability"
	"github.com/daybook-sh/daybook/internal/storage"
	"github.com/daybook-sh/daybook/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps Daybook services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	reg         *core.Registry
	eval        *core.Evaluator
	store       storage.HistoryStore
	metricsCalc observability.MetricsCalculator
	reportType  models.ReportType
}

// NewServer creates a new MCP server with the given Daybook service
// dependencies. metricsCalc may be nil if event logging is disabled.
func NewServer(reg *core.Registry, eval *core.Evaluator, store storage.HistoryStore, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		reg:         reg,
		eval:        eval,
		store:       store,
		metricsCalc: metricsCalc,
		reportType:  models.ReportDaily,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "daybook", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on the given transport, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type todayItemsInput struct {
	Category string `json:"category,omitempty" jsonschema:"filter items by category (habit, wellbeing, practice, prompt)"`
}

type itemOutput struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Progress string `json:"progress,omitempty"`
}

type todayItemsOutput struct {
	Date  string       `json:"date"`
	Items []itemOutput `json:"items"`
	Count int          `json:"count"`
}

type itemProgressInput struct {
	ItemID string `json:"item_id" jsonschema:"required,the item identifier (e.g. exercise)"`
}

type itemProgressOutput struct {
	ItemID          string  `json:"item_id"`
	TargetCurrent   int     `json:"target_current,omitempty"`
	TargetCount     int     `json:"target_count,omitempty"`
	TargetComplete  bool    `json:"target_complete,omitempty"`
	LimitCurrent    int     `json:"limit_current,omitempty"`
	LimitMax        int     `json:"limit_max,omitempty"`
	LimitPercentage float64 `json:"limit_percentage,omitempty"`
}

type itemStatsInput struct {
	ItemID string `json:"item_id" jsonschema:"required,the item identifier (e.g. exercise)"`
	Since  string `json:"since,omitempty" jsonschema:"earliest report date to include, ISO format (YYYY-MM-DD). Defaults to all history."`
}

type itemStatsOutput struct {
	ItemID  string                 `json:"item_id"`
	Kind    string                 `json:"kind"` // boolean or numeric
	Boolean *core.BooleanStats     `json:"boolean,omitempty"`
	Numeric *core.DescriptiveStats `json:"numeric,omitempty"`
	Trend   string                 `json:"trend,omitempty"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	ReportsGenerated  int            `json:"reports_generated"`
	ReportsCollected  int            `json:"reports_collected"`
	ReportsByType     map[string]int `json:"reports_by_type"`
	AnswersCollected  int            `json:"answers_collected"`
	AnswersBackfilled int            `json:"answers_backfilled"`
	EmptyCollections  int            `json:"empty_collections"`
	ComponentFailures int            `json:"component_failures"`
	EventCount        int            `json:"event_count"`
	OldestEvent       string         `json:"oldest_event,omitempty"`
	NewestEvent       string         `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "today_items",
		Description: "List the trackable items scheduled to appear in today's daily report, with an optional category filter and current progress.",
	}, s.handleTodayItems)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "item_progress",
		Description: "Get an item's current progress toward its rolling target and limit.",
	}, s.handleItemProgress)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "item_stats",
		Description: "Get aggregated statistics for an item's answer history: streaks and percentages for booleans, descriptive statistics for numbers.",
	}, s.handleItemStats)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated metrics from the event log, including reports generated and collected and answers recorded.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleTodayItems(_ context.Context, _ *gomcp.CallToolRequest, input todayItemsInput) (*gomcp.CallToolResult, todayItemsOutput, error) {
	items := s.reg.Items()
	if input.Category != "" {
		items = s.reg.ByCategory(models.ItemCategory(input.Category))
	}

	out := todayItemsOutput{Date: core.FormatDate(time.Now())}
	for _, item := range items {
		show, err := s.eval.ShouldShow(item)
		if err != nil {
			return errorResult(fmt.Sprintf("evaluating item %s: %s", item.ID, err)), todayItemsOutput{}, nil
		}
		if !show {
			continue
		}

		progress, err := s.eval.Progress(item)
		if err != nil {
			return errorResult(fmt.Sprintf("progress for item %s: %s", item.ID, err)), todayItemsOutput{}, nil
		}

		out.Items = append(out.Items, itemOutput{
			ID:       item.ID,
			Label:    item.Label,
			Category: string(item.Category),
			Progress: progressSummary(progress),
		})
	}
	out.Count = len(out.Items)

	return nil, out, nil
}

func (s *Server) handleItemProgress(_ context.Context, _ *gomcp.CallToolRequest, input itemProgressInput) (*gomcp.CallToolResult, itemProgressOutput, error) {
	if input.ItemID == "" {
		return errorResult("item_id is required"), itemProgressOutput{}, nil
	}

	item, ok := s.reg.Get(input.ItemID)
	if !ok {
		return errorResult(fmt.Sprintf("unknown item %q", input.ItemID)), itemProgressOutput{}, nil
	}

	progress, err := s.eval.Progress(item)
	if err != nil {
		return errorResult(fmt.Sprintf("progress for item %s: %s", input.ItemID, err)), itemProgressOutput{}, nil
	}

	out := itemProgressOutput{ItemID: item.ID}
	if progress.Target != nil {
		out.TargetCurrent = progress.Target.Current
		out.TargetCount = progress.Target.Target
		out.TargetComplete = progress.Target.IsComplete
	}
	if progress.Limit != nil {
		out.LimitCurrent = progress.Limit.Current
		out.LimitMax = progress.Limit.Limit
		out.LimitPercentage = progress.Limit.Percentage
	}

	return nil, out, nil
}

func (s *Server) handleItemStats(_ context.Context, _ *gomcp.CallToolRequest, input itemStatsInput) (*gomcp.CallToolResult, itemStatsOutput, error) {
	if input.ItemID == "" {
		return errorResult("item_id is required"), itemStatsOutput{}, nil
	}

	item, ok := s.reg.Get(input.ItemID)
	if !ok {
		return errorResult(fmt.Sprintf("unknown item %q", input.ItemID)), itemStatsOutput{}, nil
	}

	answers, err := s.store.AllAnswers(s.reportType, input.ItemID)
	if err != nil {
		return errorResult(fmt.Sprintf("reading history for %s: %s", input.ItemID, err)), itemStatsOutput{}, nil
	}
	if input.Since != "" {
		var kept []models.Answer
		for _, a := range answers {
			if a.ReportDate >= input.Since {
				kept = append(kept, a)
			}
		}
		answers = kept
	}

	out := itemStatsOutput{ItemID: item.ID}
	if item.Input.Type == models.InputBoolean {
		out.Kind = "boolean"
		stats := core.BooleanSeries(core.BoolSeriesByDate(answers))
		out.Boolean = &stats
	} else {
		out.Kind = "numeric"
		var values []float64
		for _, a := range answers {
			if v, ok := a.NumericValue(); ok {
				values = append(values, v)
			}
		}
		out.Numeric = core.NumericSeries(values)
		if len(values) > 1 {
			out.Trend = core.Sparkline(values)
		}
	}

	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (event logging may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		ReportsGenerated:  metrics.ReportsGenerated,
		ReportsCollected:  metrics.ReportsCollected,
		ReportsByType:     metrics.ReportsByType,
		AnswersCollected:  metrics.AnswersCollected,
		AnswersBackfilled: metrics.AnswersBackfilled,
		EmptyCollections:  metrics.EmptyCollections,
		ComponentFailures: metrics.ComponentFailures,
		EventCount:        metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

// --- Helpers ---

func progressSummary(p models.Progress) string {
	switch {
	case p.Target != nil && p.Limit != nil:
		return fmt.Sprintf("target %d/%d, limit %d/%d", p.Target.Current, p.Target.Target, p.Limit.Current, p.Limit.Limit)
	case p.Target != nil:
		return fmt.Sprintf("target %d/%d", p.Target.Current, p.Target.Target)
	case p.Limit != nil:
		return fmt.Sprintf("limit %d/%d", p.Limit.Current, p.Limit.Limit)
	default:
		return ""
	}
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		ReportsByType: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
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
