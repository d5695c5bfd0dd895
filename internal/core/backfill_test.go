package core

import (
	"testing"

	"github.com/daybook-sh/daybook/pkg/models"
)

func backfillItem(id string, per *models.Period) models.Item {
	return models.Item{
		ID:       id,
		Label:    id,
		Category: models.CategoryWellbeing,
		Input:    models.InputSpec{Type: models.InputMultiCheckbox, SingleChoice: true},
		Schedule: &models.Schedule{ShowEvery: per},
	}
}

func answerOn(itemID, date string, value any) models.Answer {
	return models.Answer{ItemID: itemID, ReportDate: date, Value: value}
}

func TestExpand_CopiesOntoPastReportDays(t *testing.T) {
	store := newFakeHistory()
	store.reports["2026-09-01"] = true
	store.reports["2026-08-31"] = true

	item := backfillItem("mood", &models.Period{Count: 3, Unit: models.UnitDay})
	b := NewBackfiller([]models.Item{item}, store, models.ReportDaily)

	expanded, err := b.Expand([]models.Answer{answerOn("mood", "2026-09-02", "2")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(expanded) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(expanded))
	}

	// Synthetic copies come first, then the original.
	dates := []string{expanded[0].ReportDate, expanded[1].ReportDate, expanded[2].ReportDate}
	want := []string{"2026-09-01", "2026-08-31", "2026-09-02"}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("answer %d on %s, want %s", i, dates[i], want[i])
		}
	}

	for _, a := range expanded {
		if a.Value != "2" {
			t.Errorf("answer on %s has value %v, want \"2\"", a.ReportDate, a.Value)
		}
	}
}

func TestExpand_OnlyDaysWithReports(t *testing.T) {
	store := newFakeHistory()
	store.reports["2026-09-01"] = true
	// 2026-08-31 has no report and must stay empty.

	item := backfillItem("mood", &models.Period{Count: 3, Unit: models.UnitDay})
	b := NewBackfiller([]models.Item{item}, store, models.ReportDaily)

	expanded, err := b.Expand([]models.Answer{answerOn("mood", "2026-09-02", true)})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	if len(expanded) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(expanded))
	}
	if expanded[0].ReportDate != "2026-09-01" {
		t.Errorf("synthetic answer on %s, want 2026-09-01", expanded[0].ReportDate)
	}
}

func TestExpand_PassThroughCases(t *testing.T) {
	store := newFakeHistory()
	store.reports["2026-09-01"] = true

	weekly := backfillItem("weekly", &models.Period{Count: 2, Unit: models.UnitWeek})
	daily := backfillItem("daily", &models.Period{Count: 1, Unit: models.UnitDay})
	noSchedule := models.Item{ID: "plain", Label: "plain", Input: models.InputSpec{Type: models.InputText}}
	inactive := backfillItem("off", &models.Period{Count: 3, Unit: models.UnitDay})
	off := false
	inactive.Schedule.Active = &off

	b := NewBackfiller([]models.Item{weekly, daily, noSchedule, inactive}, store, models.ReportDaily)

	in := []models.Answer{
		answerOn("weekly", "2026-09-02", true),
		answerOn("daily", "2026-09-02", true),
		answerOn("plain", "2026-09-02", "note"),
		answerOn("off", "2026-09-02", true),
		answerOn("unknown", "2026-09-02", true),
	}
	expanded, err := b.Expand(in)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	// Week-based periods, count-one periods, unscheduled, inactive, and
	// unregistered items all pass through without synthetic copies.
	if len(expanded) != len(in) {
		t.Fatalf("expected %d answers, got %d", len(in), len(expanded))
	}
	for i := range in {
		if expanded[i].ReportDate != "2026-09-02" {
			t.Errorf("answer %d moved to %s", i, expanded[i].ReportDate)
		}
	}
}

func TestExpand_InvalidDateFails(t *testing.T) {
	store := newFakeHistory()
	item := backfillItem("mood", &models.Period{Count: 2, Unit: models.UnitDay})
	b := NewBackfiller([]models.Item{item}, store, models.ReportDaily)

	_, err := b.Expand([]models.Answer{answerOn("mood", "not-a-date", true)})
	if err == nil {
		t.Fatal("expected error for unparseable report date")
	}
}
