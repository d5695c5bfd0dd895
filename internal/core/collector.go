package core

import (
	"fmt"

	"github.com/daybook-sh/daybook/internal/storage"
	"github.com/daybook-sh/daybook/pkg/models"
)

// CollectResult summarizes one collection pass.
type CollectResult struct {
	Source     *storage.ReportFileInfo
	Collected  int  // answers written, including backfill copies
	Backfilled int  // synthetic answers attributed to past dates
	Empty      bool // the report had no filled-in values
}

// Collector reads the newest report file for a tier, extracts the user's
// answers, expands backfillable ones across missed past days, and persists
// everything into the history database.
type Collector struct {
	files      storage.ReportFileManager
	store      storage.HistoryStore
	backfill   *Backfiller
	reportType models.ReportType
}

// NewCollector wires a Collector for the given report tier.
func NewCollector(files storage.ReportFileManager, store storage.HistoryStore, backfill *Backfiller, reportType models.ReportType) *Collector {
	return &Collector{
		files:      files,
		store:      store,
		backfill:   backfill,
		reportType: reportType,
	}
}

// Collect runs one collection pass over the newest report file. A report
// with no filled-in values is skipped without touching the database, so an
// untouched report can be collected any number of times harmlessly. Re-running
// on a filled report is equally safe: the upsert replaces the previous pass's
// records for the same (date, number) key.
func (c *Collector) Collect() (*CollectResult, error) {
	info, err := c.files.Newest(c.reportType)
	if err != nil {
		return nil, fmt.Errorf("finding newest report: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("no %s report files to collect", c.reportType)
	}

	content, err := c.files.Read(info)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", info.Path, err)
	}

	answers, err := ExtractAnswers(content)
	if err != nil {
		return nil, fmt.Errorf("extracting answers from %s: %w", info.Path, err)
	}

	result := &CollectResult{Source: info}

	if allNil(answers) {
		result.Empty = true
		return result, nil
	}

	for i := range answers {
		answers[i].ReportType = c.reportType
		answers[i].ReportDate = info.ReportDate
		answers[i].ReportNumber = info.ReportNumber
	}

	expanded := answers
	if c.backfill != nil {
		expanded, err = c.backfill.Expand(answers)
		if err != nil {
			return nil, fmt.Errorf("expanding backfill: %w", err)
		}
	}

	if err := c.store.Upsert(c.reportType, expanded); err != nil {
		return nil, fmt.Errorf("upserting answers: %w", err)
	}
	if err := c.store.Save(); err != nil {
		return nil, fmt.Errorf("saving history database: %w", err)
	}

	result.Collected = len(expanded)
	result.Backfilled = len(expanded) - len(answers)
	return result, nil
}

func allNil(answers []models.Answer) bool {
	for _, a := range answers {
		if a.Value != nil {
			return false
		}
	}
	return true
}
