package core

import (
	"math"
	"testing"

	"github.com/daybook-sh/daybook/pkg/models"
)

func boolSeries(values ...any) []*bool {
	out := make([]*bool, len(values))
	for i, v := range values {
		if b, ok := v.(bool); ok {
			val := b
			out[i] = &val
		}
	}
	return out
}

func TestBooleanSeries_StreaksAndCounts(t *testing.T) {
	stats := BooleanSeries(boolSeries(true, true, false, true, true, true))

	if stats.Count != 6 {
		t.Errorf("Count = %d, want 6", stats.Count)
	}
	if stats.TrueCount != 5 || stats.FalseCount != 1 {
		t.Errorf("true/false = %d/%d, want 5/1", stats.TrueCount, stats.FalseCount)
	}
	if stats.LongestTrueStreak != 3 {
		t.Errorf("LongestTrueStreak = %d, want 3", stats.LongestTrueStreak)
	}
	if stats.LongestFalseStreak != 1 {
		t.Errorf("LongestFalseStreak = %d, want 1", stats.LongestFalseStreak)
	}
	if stats.CurrentStreak != 3 || stats.CurrentStreakType != StreakTrue {
		t.Errorf("current streak = %d %q, want 3 true", stats.CurrentStreak, stats.CurrentStreakType)
	}
}

func TestBooleanSeries_NullsResetStreaks(t *testing.T) {
	// A gap breaks the run: T T _ T is two separate true streaks of 2 and 1.
	stats := BooleanSeries(boolSeries(true, true, nil, true))

	if stats.NullCount != 1 {
		t.Errorf("NullCount = %d, want 1", stats.NullCount)
	}
	if stats.LongestTrueStreak != 2 {
		t.Errorf("LongestTrueStreak = %d, want 2", stats.LongestTrueStreak)
	}
	if stats.CurrentStreak != 1 || stats.CurrentStreakType != StreakTrue {
		t.Errorf("current streak = %d %q, want 1 true", stats.CurrentStreak, stats.CurrentStreakType)
	}
}

func TestBooleanSeries_TrailingNullMeansNoCurrentStreak(t *testing.T) {
	stats := BooleanSeries(boolSeries(true, true, nil))

	if stats.CurrentStreak != 0 || stats.CurrentStreakType != StreakNone {
		t.Errorf("current streak = %d %q, want none", stats.CurrentStreak, stats.CurrentStreakType)
	}
}

func TestBooleanSeries_Percentages(t *testing.T) {
	stats := BooleanSeries(boolSeries(true, false, nil, true))

	if stats.TruePercentage != 50 {
		t.Errorf("TruePercentage = %.1f, want 50", stats.TruePercentage)
	}
	if stats.FalsePercentage != 25 {
		t.Errorf("FalsePercentage = %.1f, want 25", stats.FalsePercentage)
	}
}

func TestBooleanSeries_Empty(t *testing.T) {
	stats := BooleanSeries(nil)
	if stats.Count != 0 || stats.CurrentStreakType != StreakNone {
		t.Errorf("empty series: %+v", stats)
	}
}

func TestNumericSeries_KnownValues(t *testing.T) {
	stats := NumericSeries([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if stats == nil {
		t.Fatal("expected stats")
	}

	if stats.Count != 8 {
		t.Errorf("Count = %d, want 8", stats.Count)
	}
	if stats.Mean != 5 {
		t.Errorf("Mean = %.2f, want 5", stats.Mean)
	}
	if stats.Median != 4.5 {
		t.Errorf("Median = %.2f, want 4.5", stats.Median)
	}
	if stats.Mode != 4 {
		t.Errorf("Mode = %.2f, want 4", stats.Mode)
	}
	if stats.Min != 2 || stats.Max != 9 || stats.Range != 7 {
		t.Errorf("min/max/range = %.0f/%.0f/%.0f, want 2/9/7", stats.Min, stats.Max, stats.Range)
	}
	// Population variance of this classic series is 4.
	if stats.Variance != 4 {
		t.Errorf("Variance = %.2f, want 4", stats.Variance)
	}
	if stats.StandardDeviation != 2 {
		t.Errorf("StandardDeviation = %.2f, want 2", stats.StandardDeviation)
	}
}

func TestNumericSeries_Quartiles(t *testing.T) {
	stats := NumericSeries([]float64{1, 2, 3, 4, 5})
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.Q1 != 2 || stats.Q3 != 4 || stats.IQR != 2 {
		t.Errorf("Q1/Q3/IQR = %.2f/%.2f/%.2f, want 2/4/2", stats.Q1, stats.Q3, stats.IQR)
	}
}

func TestNumericSeries_SingleValue(t *testing.T) {
	stats := NumericSeries([]float64{3})
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.Median != 3 || stats.Q1 != 3 || stats.Q3 != 3 || stats.Variance != 0 {
		t.Errorf("single value stats: %+v", stats)
	}
}

func TestNumericSeries_FiltersNaN(t *testing.T) {
	stats := NumericSeries([]float64{1, math.NaN(), 3})
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.Count != 2 || stats.Mean != 2 {
		t.Errorf("Count/Mean = %d/%.2f, want 2/2", stats.Count, stats.Mean)
	}

	if NumericSeries([]float64{math.NaN()}) != nil {
		t.Error("all-NaN series should yield nil")
	}
	if NumericSeries(nil) != nil {
		t.Error("empty series should yield nil")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "—" {
		t.Errorf("empty sparkline = %q", got)
	}
	if got := Sparkline([]float64{1, 1, 1}); got != "▁▁▁" {
		t.Errorf("flat sparkline = %q, want all-low blocks", got)
	}

	got := Sparkline([]float64{0, 7})
	want := "▁█"
	if got != want {
		t.Errorf("Sparkline = %q, want %q", got, want)
	}
}

func TestBoolSeriesByDate_MissingDaysBecomeNulls(t *testing.T) {
	answers := []models.Answer{
		{ItemID: "exercise", ReportDate: "2026-09-01", Value: true},
		{ItemID: "exercise", ReportDate: "2026-09-03", Value: true},
	}

	series := BoolSeriesByDate(answers)
	if len(series) != 3 {
		t.Fatalf("expected one entry per calendar day, got %d", len(series))
	}
	if series[0] == nil || !*series[0] || series[2] == nil || !*series[2] {
		t.Error("recorded days lost their values")
	}
	if series[1] != nil {
		t.Error("day without an answer should be nil")
	}

	// The unrecorded day is streak-neutral: it must not bridge the two
	// true answers into one streak.
	stats := BooleanSeries(series)
	if stats.NullCount != 1 {
		t.Errorf("NullCount = %d, want 1", stats.NullCount)
	}
	if stats.LongestTrueStreak != 1 {
		t.Errorf("LongestTrueStreak = %d, want 1", stats.LongestTrueStreak)
	}
	if stats.CurrentStreak != 1 || stats.CurrentStreakType != StreakTrue {
		t.Errorf("current streak = %d %s, want 1 true", stats.CurrentStreak, stats.CurrentStreakType)
	}
}

func TestBoolSeriesByDate_Empty(t *testing.T) {
	if got := BoolSeriesByDate(nil); got != nil {
		t.Errorf("expected nil series, got %v", got)
	}
}
