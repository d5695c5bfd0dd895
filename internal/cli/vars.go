package cli

import (
	"fmt"

	"github.com/daybook-sh/daybook/internal/core"
	"github.com/daybook-sh/daybook/internal/observability"
	"github.com/daybook-sh/daybook/internal/storage"
	"github.com/daybook-sh/daybook/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.GlobalConfig
	Registry *core.Registry
	Store    storage.HistoryStore
	Files    storage.ReportFileManager

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)

// newEvaluator builds a schedule evaluator for the given report tier from
// the wired services.
func newEvaluator(reportType models.ReportType) *core.Evaluator {
	epoch := ""
	if Config != nil {
		epoch = Config.Epoch
	}
	return core.NewEvaluator(Store, reportType, epoch, nil)
}

// parseReportType maps a CLI tier name to its report type.
func parseReportType(s string) (models.ReportType, error) {
	switch s {
	case "", "daily":
		return models.ReportDaily, nil
	case "tenDay", "10day":
		return models.ReportTenDay, nil
	case "thirtyDay", "30day":
		return models.ReportThirtyDay, nil
	case "hundredFifty", "150day":
		return models.ReportHundredFifty, nil
	default:
		return "", fmt.Errorf("unknown report type %q (use daily, tenDay, thirtyDay, or hundredFifty)", s)
	}
}

// logEvent writes an event if logging is enabled. Event log failures never
// fail the command.
func logEvent(eventType, message string, data map[string]any) {
	if EventLog == nil {
		return
	}
	_ = EventLog.Write(observability.NewEvent(eventType, message, data))
}
