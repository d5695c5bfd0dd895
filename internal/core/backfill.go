package core

import (
	"fmt"

	"github.com/daybook-sh/daybook/pkg/models"
)

// Backfiller expands answers of daily-periodic items into synthetic records
// for the in-period days they were not asked, so statistics over calendar
// days see a value on every day the journal was used.
//
// Expansion is not idempotent by construction: rerunning it resynthesizes the
// same records. The history store's upsert, keyed by (reportDate,
// reportNumber), absorbs the duplication.
type Backfiller struct {
	items map[string]models.Item
	store HistoryReader

	reportType models.ReportType
}

// NewBackfiller creates a Backfiller over the given item definitions and
// history view.
func NewBackfiller(items []models.Item, store HistoryReader, reportType models.ReportType) *Backfiller {
	byID := make(map[string]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &Backfiller{items: byID, store: store, reportType: reportType}
}

// Expand returns the union of the collected answers and synthetic copies for
// skipped in-period days. Only items with an active schedule and a daily
// show-every count above one are expanded; synthetic copies are only created
// for days that already have some report recorded, so days the journal was
// never used stay empty. Everything else passes through unchanged.
func (b *Backfiller) Expand(todayAnswers []models.Answer) ([]models.Answer, error) {
	expanded := make([]models.Answer, 0, len(todayAnswers))

	for _, ans := range todayAnswers {
		item, ok := b.items[ans.ItemID]
		if !ok || item.Schedule == nil || !item.Schedule.IsActive() || item.Schedule.ShowEvery == nil {
			expanded = append(expanded, ans)
			continue
		}

		// Only day-based periodicity is expanded.
		periodicity := 1
		if item.Schedule.ShowEvery.Unit == models.UnitDay {
			periodicity = item.Schedule.ShowEvery.Count
		}
		if periodicity <= 1 {
			expanded = append(expanded, ans)
			continue
		}

		pastDates, err := b.reportDatesInPast(periodicity, ans.ReportDate)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", ans.ItemID, err)
		}

		for _, pastDate := range pastDates {
			synthetic := ans
			synthetic.ReportDate = pastDate
			expanded = append(expanded, synthetic)
		}
		expanded = append(expanded, ans)
	}

	return expanded, nil
}

// reportDatesInPast returns the dates in [today-periodicity+1, today-1] that
// have any report recorded, oldest-skipped days excluded.
func (b *Backfiller) reportDatesInPast(periodicity int, today string) ([]string, error) {
	ref, ok := ParseDate(today)
	if !ok {
		return nil, fmt.Errorf("invalid report date %q", today)
	}

	var dates []string
	for i := 1; i < periodicity; i++ {
		pastDate := FormatDate(ref.AddDate(0, 0, -i))
		has, err := b.store.HasReport(b.reportType, pastDate)
		if err != nil {
			return nil, err
		}
		if has {
			dates = append(dates, pastDate)
		}
	}
	return dates, nil
}
