package observability

import (
	"testing"
	"time"
)

func TestCalculate_AggregatesJournalEvents(t *testing.T) {
	log, _ := newTestLog(t)

	_ = log.Write(NewEvent("report.generated", "daily written", map[string]any{"report_type": "dailyReport"}))
	_ = log.Write(NewEvent("report.generated", "review written", map[string]any{"report_type": "tenDayReview"}))
	_ = log.Write(NewEvent("report.collected", "collected", map[string]any{"collected": 12, "backfilled": 3}))
	_ = log.Write(NewEvent("report.collect_empty", "nothing filled in", nil))
	_ = log.Write(NewEvent("component.failed", "consistencyStats failed", map[string]any{"component": "consistencyStats"}))

	m, err := NewMetricsCalculator(log).Calculate(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if m.ReportsGenerated != 2 {
		t.Errorf("ReportsGenerated = %d, want 2", m.ReportsGenerated)
	}
	if m.ReportsByType["dailyReport"] != 1 || m.ReportsByType["tenDayReview"] != 1 {
		t.Errorf("ReportsByType = %v", m.ReportsByType)
	}
	if m.ReportsCollected != 1 || m.AnswersCollected != 12 || m.AnswersBackfilled != 3 {
		t.Errorf("collection metrics = %d/%d/%d", m.ReportsCollected, m.AnswersCollected, m.AnswersBackfilled)
	}
	if m.EmptyCollections != 1 || m.ComponentFailures != 1 {
		t.Errorf("empty/failures = %d/%d", m.EmptyCollections, m.ComponentFailures)
	}
	if m.EventCount != 5 {
		t.Errorf("EventCount = %d, want 5", m.EventCount)
	}
	if m.OldestEvent == nil || m.NewestEvent == nil {
		t.Error("event time range missing")
	}
}

func TestCalculate_SinceExcludesOldEvents(t *testing.T) {
	log, _ := newTestLog(t)

	old := NewEvent("report.generated", "old", map[string]any{"report_type": "dailyReport"})
	old.Time = time.Now().Add(-72 * time.Hour)
	_ = log.Write(old)
	_ = log.Write(NewEvent("report.generated", "recent", map[string]any{"report_type": "dailyReport"}))

	m, err := NewMetricsCalculator(log).Calculate(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.ReportsGenerated != 1 || m.EventCount != 1 {
		t.Errorf("old events counted: generated=%d events=%d", m.ReportsGenerated, m.EventCount)
	}
}

func TestCalculate_EmptyLog(t *testing.T) {
	log, _ := newTestLog(t)
	m, err := NewMetricsCalculator(log).Calculate(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.NewestEvent != nil {
		t.Errorf("empty log produced metrics: %+v", m)
	}
}
