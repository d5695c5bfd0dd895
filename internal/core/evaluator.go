// Package core contains the scheduling, backfill, statistics, and
// report-building logic for Daybook: deciding which trackable items appear in
// today's report, tracking their progress, and turning recorded answers into
// streaks and trends.
package core

import (
	"fmt"
	"slices"
	"time"

	"github.com/daybook-sh/daybook/pkg/models"
)

// Clock supplies the evaluation moment. Injected so tests can pin "now".
type Clock func() time.Time

// HistoryReader is the read-only view of recorded answers the scheduling
// engine consumes. The core never implements persistence itself.
type HistoryReader interface {
	// CountTrue returns the number of true boolean answers for the item with
	// reportDate >= since (ISO date). Missing history counts as zero.
	CountTrue(reportType models.ReportType, itemID, since string) (int, error)
	// AnswerOn returns the recorded answer for an exact date, or nil.
	AnswerOn(reportType models.ReportType, itemID, date string) (*models.Answer, error)
	// HasReport reports whether any answer exists for the given date.
	HasReport(reportType models.ReportType, date string) (bool, error)
}

// Evaluator decides whether a trackable item should appear in today's report
// and what its target/limit progress looks like. It is a pure decision
// function over its injected history view: failures from the store propagate
// to the caller, which isolates them per item.
type Evaluator struct {
	store      HistoryReader
	reportType models.ReportType
	epoch      time.Time
	now        Clock
}

// NewEvaluator creates an Evaluator over the given history view. A nil clock
// defaults to time.Now; an empty epoch defaults to DefaultEpoch.
func NewEvaluator(store HistoryReader, reportType models.ReportType, epoch string, now Clock) *Evaluator {
	if now == nil {
		now = time.Now
	}
	e, ok := ParseDate(epoch)
	if !ok {
		e, _ = ParseDate(DefaultEpoch)
	}
	return &Evaluator{
		store:      store,
		reportType: reportType,
		epoch:      e,
		now:        now,
	}
}

// ShouldShow decides whether the item appears in today's report. The gates
// run in a fixed order and short-circuit on the first failure: no schedule,
// active flag, time boundaries, dependencies, custom condition, periodicity,
// target quota, limit ceiling.
func (e *Evaluator) ShouldShow(item models.Item) (bool, error) {
	sched := item.Schedule
	if sched == nil {
		return true, nil
	}

	if !sched.IsActive() {
		return false, nil
	}

	now := e.now()
	today := FormatDate(now)

	if !withinTimeBoundaries(sched, today) {
		return false, nil
	}

	ok, err := e.dependenciesSatisfied(sched, today)
	if err != nil {
		return false, fmt.Errorf("checking dependencies for %s: %w", item.ID, err)
	}
	if !ok {
		return false, nil
	}

	if sched.Condition != nil && !sched.Condition() {
		return false, nil
	}

	if !e.periodicityMatches(sched, now) {
		return false, nil
	}

	if sched.Target != nil && !sched.Target.KeepShowing {
		met, err := e.targetMet(item.ID, sched.Target, now)
		if err != nil {
			return false, fmt.Errorf("checking target for %s: %w", item.ID, err)
		}
		if met {
			return false, nil
		}
	}

	if sched.Limit != nil {
		reached, err := e.limitReached(item.ID, sched.Limit, now)
		if err != nil {
			return false, fmt.Errorf("checking limit for %s: %w", item.ID, err)
		}
		if reached {
			return false, nil
		}
	}

	return true, nil
}

// Progress computes target and limit progress for the item, independently of
// what ShouldShow decided, so callers can render "2/5 per week" labels on
// items that are still visible.
func (e *Evaluator) Progress(item models.Item) (models.Progress, error) {
	var p models.Progress
	sched := item.Schedule
	if sched == nil {
		return p, nil
	}

	now := e.now()

	if sched.Target != nil {
		count, err := e.completionCount(item.ID, sched.Target.Per, now)
		if err != nil {
			return p, fmt.Errorf("target progress for %s: %w", item.ID, err)
		}
		p.Target = &models.TargetProgress{
			Current:    count,
			Target:     sched.Target.Count,
			IsComplete: count >= sched.Target.Count,
		}
	}

	if sched.Limit != nil {
		count, err := e.completionCount(item.ID, sched.Limit.Per, now)
		if err != nil {
			return p, fmt.Errorf("limit progress for %s: %w", item.ID, err)
		}
		pct := 0.0
		if sched.Limit.Max > 0 {
			pct = float64(count) / float64(sched.Limit.Max) * 100
		}
		p.Limit = &models.LimitProgress{
			Current:    count,
			Limit:      sched.Limit.Max,
			Percentage: pct,
		}
	}

	return p, nil
}

func withinTimeBoundaries(sched *models.Schedule, today string) bool {
	if sched.StartDate != "" && today < sched.StartDate {
		return false
	}
	if sched.EndDate != "" && today > sched.EndDate {
		return false
	}
	return true
}

func (e *Evaluator) dependenciesSatisfied(sched *models.Schedule, today string) (bool, error) {
	for _, requiredID := range sched.RequiresCompleted {
		ans, err := e.store.AnswerOn(e.reportType, requiredID, today)
		if err != nil {
			return false, err
		}
		if ans == nil || !ans.IsTrue() {
			return false, nil
		}
	}

	for _, hideID := range sched.HideIfCompleted {
		ans, err := e.store.AnswerOn(e.reportType, hideID, today)
		if err != nil {
			return false, err
		}
		if ans != nil && ans.IsTrue() {
			return false, nil
		}
	}

	return true, nil
}

// periodicityMatches applies the periodicity gate in priority order:
// daysOfWeek wins over datesOfMonth, which wins over showEvery.
func (e *Evaluator) periodicityMatches(sched *models.Schedule, now time.Time) bool {
	if len(sched.DaysOfWeek) > 0 {
		return slices.Contains(NormalizeWeekdays(sched.DaysOfWeek), int(now.Weekday()))
	}

	if len(sched.DatesOfMonth) > 0 {
		return slices.Contains(sched.DatesOfMonth, now.Day())
	}

	if sched.ShowEvery != nil {
		return e.showEveryMatches(*sched.ShowEvery, now)
	}

	return true
}

func (e *Evaluator) showEveryMatches(per models.Period, now time.Time) bool {
	per = normalizePeriod(per)
	if per.Count == 1 {
		return true
	}

	switch per.Unit {
	case models.UnitDay, models.UnitWeek, models.UnitMonth, models.UnitQuarter, models.UnitYear:
		return PeriodOrdinal(per.Unit, now, e.epoch)%per.Count == 0
	default:
		// No ordinal defined for this unit; no restriction.
		return true
	}
}

func (e *Evaluator) targetMet(itemID string, target *models.Target, now time.Time) (bool, error) {
	count, err := e.completionCount(itemID, target.Per, now)
	if err != nil {
		return false, err
	}
	return count >= target.Count, nil
}

func (e *Evaluator) limitReached(itemID string, limit *models.Limit, now time.Time) (bool, error) {
	count, err := e.completionCount(itemID, limit.Per, now)
	if err != nil {
		return false, err
	}
	return count >= limit.Max, nil
}

func (e *Evaluator) completionCount(itemID string, per models.Period, now time.Time) (int, error) {
	return e.store.CountTrue(e.reportType, itemID, PeriodStart(per, now))
}
