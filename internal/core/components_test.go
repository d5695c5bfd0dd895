package core

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daybook-sh/daybook/internal/storage"
	"github.com/daybook-sh/daybook/pkg/models"
)

func testStore(t *testing.T) storage.HistoryStore {
	t.Helper()
	store := storage.NewHistoryStore(filepath.Join(t.TempDir(), "db.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("loading store: %v", err)
	}
	return store
}

func recordAnswer(t *testing.T, store storage.HistoryStore, itemID, date string, value any) {
	t.Helper()
	err := store.Upsert(models.ReportDaily, []models.Answer{{
		ItemID:       itemID,
		ReportDate:   date,
		ReportNumber: "00001",
		Value:        value,
	}})
	if err != nil {
		t.Fatalf("recording answer: %v", err)
	}
}

func testComponentBuilder(t *testing.T, store storage.HistoryStore, date string) *ComponentBuilder {
	t.Helper()
	reg := NewRegistry(BuiltinItems())
	eval := NewEvaluator(store, models.ReportDaily, DefaultEpoch, clockAt(t, date))
	return NewComponentBuilder(reg, eval, store, models.ReportDaily, clockAt(t, date))
}

func TestConsecutiveRun(t *testing.T) {
	dates := []string{"2026-08-29", "2026-08-31", "2026-09-01", "2026-09-02"}

	tests := []struct {
		today string
		want  int
	}{
		{"2026-09-02", 3}, // today counts, chain back to 08-31
		{"2026-09-03", 3}, // no report today, chain ends yesterday
		{"2026-09-04", 0}, // gap of a full day kills the run
	}

	for _, tt := range tests {
		if got := consecutiveRun(dates, tt.today); got != tt.want {
			t.Errorf("consecutiveRun(today=%s) = %d, want %d", tt.today, got, tt.want)
		}
	}
}

func TestRenderMessageFromYesterday(t *testing.T) {
	store := testStore(t)
	recordAnswer(t, store, "messageForTomorrow", "2026-09-01", "Start with the hard task.")

	b := testComponentBuilder(t, store, "2026-09-02")
	body, err := b.renderMessageFromYesterday()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "> Start with the hard task.") {
		t.Errorf("message not quoted: %q", body)
	}
}

func TestRenderMessageFromYesterday_EmptyWithoutMessage(t *testing.T) {
	b := testComponentBuilder(t, testStore(t), "2026-09-02")
	body, err := b.renderMessageFromYesterday()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if body != "" {
		t.Errorf("expected empty body, got %q", body)
	}
}

func TestRenderHabitTracking_ProgressLabel(t *testing.T) {
	store := testStore(t)
	// Two exercise completions earlier in the same week.
	recordAnswer(t, store, "exercise", "2026-08-31", true)
	recordAnswer(t, store, "exercise", "2026-09-01", true)

	b := testComponentBuilder(t, store, "2026-09-02")
	body, err := b.renderHabitTracking()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(body, "### Exercise") {
		t.Error("exercise section missing")
	}
	if !strings.Contains(body, "Progress: 2/5 this week") {
		t.Errorf("progress label missing:\n%s", body)
	}
	if !strings.Contains(body, "Cue: Any suitable time during the day") {
		t.Error("cue line missing")
	}
}

func TestDescribePeriod(t *testing.T) {
	tests := []struct {
		per  models.Period
		want string
	}{
		{models.Period{Count: 1, Unit: models.UnitDay}, "today"},
		{models.Period{Count: 1, Unit: models.UnitWeek}, "this week"},
		{models.Period{Count: 1, Unit: models.UnitMonth}, "this month"},
		{models.Period{Count: 6, Unit: models.UnitMonth}, "in the last 6 months"},
		{models.Period{Count: 3, Unit: models.UnitDay}, "in the last 3 days"},
		{models.Period{}, "today"},
	}
	for _, tt := range tests {
		if got := describePeriod(tt.per); got != tt.want {
			t.Errorf("describePeriod(%+v) = %q, want %q", tt.per, got, tt.want)
		}
	}
}

func TestRenderWellbeingCheck_TrendNeedsHistory(t *testing.T) {
	store := testStore(t)
	b := testComponentBuilder(t, store, "2026-09-02")

	body, err := b.renderWellbeingCheck()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "Recent:") {
		t.Error("trend should not render without history")
	}
	if !strings.Contains(body, "### Positive Emotions") {
		t.Error("wellbeing section missing")
	}
}

func TestRenderWellbeingCheck_Sparkline(t *testing.T) {
	store := testStore(t)
	ratings := []string{"2026-08-30", "2026-08-31", "2026-09-01"}
	for i, date := range ratings {
		recordAnswer(t, store, "positiveEmotions", date, float64(i+1))
	}

	b := testComponentBuilder(t, store, "2026-09-02")
	body, err := b.renderWellbeingCheck()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "Recent: `") {
		t.Errorf("sparkline trend missing:\n%s", body)
	}
}

func TestPromptRenderer_SkipsUnknownIDs(t *testing.T) {
	b := testComponentBuilder(t, testStore(t), "2026-09-02")
	body, err := b.promptRenderer("x", "noSuchItem")()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if body != "" {
		t.Errorf("unknown item should render nothing, got %q", body)
	}
}

// flakyHistory fails target counting for a single item, leaving every other
// read intact.
type flakyHistory struct {
	storage.HistoryStore
	failID string
}

func (f flakyHistory) CountTrue(reportType models.ReportType, itemID, since string) (int, error) {
	if itemID == f.failID {
		return 0, errors.New("database offline")
	}
	return f.HistoryStore.CountTrue(reportType, itemID, since)
}

func flakyComponentBuilder(t *testing.T, failID, date string) *ComponentBuilder {
	t.Helper()
	store := flakyHistory{HistoryStore: testStore(t), failID: failID}
	reg := NewRegistry(BuiltinItems())
	eval := NewEvaluator(store, models.ReportDaily, DefaultEpoch, clockAt(t, date))
	return NewComponentBuilder(reg, eval, store, models.ReportDaily, clockAt(t, date))
}

func TestRenderHabitTracking_FailingItemHiddenSiblingsKept(t *testing.T) {
	b := flakyComponentBuilder(t, "exercise", "2026-09-02")

	body, err := b.renderHabitTracking()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(body, "### Exercise") {
		t.Error("failing item still rendered")
	}
	if !strings.Contains(body, "### Planning my day") {
		t.Error("sibling habits dropped with the failing item")
	}

	failed := b.FailedItems()
	if len(failed) != 1 || failed[0].ItemID != "exercise" {
		t.Errorf("FailedItems = %+v, want just exercise", failed)
	}
}

func TestPracticeRenderer_FailingItemHiddenSiblingsKept(t *testing.T) {
	b := flakyComponentBuilder(t, "voluntaryDiscomfort", "2026-09-02")

	body, err := b.practiceRenderer("x", "voluntaryDiscomfort", "mindfulMoment")()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, `"itemId":"voluntaryDiscomfort"`) {
		t.Error("failing practice still rendered")
	}
	if !strings.Contains(body, `"itemId":"mindfulMoment"`) {
		t.Error("sibling practice dropped with the failing item")
	}
	if len(b.FailedItems()) != 1 {
		t.Errorf("FailedItems = %+v", b.FailedItems())
	}
}
