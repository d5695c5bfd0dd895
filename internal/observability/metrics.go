package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	ReportsGenerated  int            `json:"reports_generated"`
	ReportsCollected  int            `json:"reports_collected"`
	ReportsByType     map[string]int `json:"reports_by_type"`
	AnswersCollected  int            `json:"answers_collected"`
	AnswersBackfilled int            `json:"answers_backfilled"`
	EmptyCollections  int            `json:"empty_collections"`
	ComponentFailures int            `json:"component_failures"`
	EventCount        int            `json:"event_count"`
	OldestEvent       *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent       *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		ReportsByType: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "report.generated":
			m.ReportsGenerated++
			if reportType, ok := event.Data["report_type"].(string); ok {
				m.ReportsByType[reportType]++
			}
		case "report.collected":
			m.ReportsCollected++
			if n, ok := event.Data["collected"].(float64); ok {
				m.AnswersCollected += int(n)
			}
			if n, ok := event.Data["backfilled"].(float64); ok {
				m.AnswersBackfilled += int(n)
			}
		case "report.collect_empty":
			m.EmptyCollections++
		case "component.failed":
			m.ComponentFailures++
		}
	}

	return m, nil
}
