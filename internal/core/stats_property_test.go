package core

import (
	"testing"

	"pgregory.net/rapid"
)

func drawBoolSeries(rt *rapid.T) []*bool {
	n := rapid.IntRange(0, 60).Draw(rt, "len")
	out := make([]*bool, n)
	for i := range out {
		switch rapid.IntRange(0, 2).Draw(rt, "kind") {
		case 0:
			v := true
			out[i] = &v
		case 1:
			v := false
			out[i] = &v
		}
	}
	return out
}

// The three value counts always partition the series.
func TestBooleanSeriesCountsPartition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		series := drawBoolSeries(rt)
		stats := BooleanSeries(series)

		if stats.TrueCount+stats.FalseCount+stats.NullCount != stats.Count {
			rt.Errorf("counts %d+%d+%d != %d",
				stats.TrueCount, stats.FalseCount, stats.NullCount, stats.Count)
		}
		if stats.Count != len(series) {
			rt.Errorf("Count = %d, want %d", stats.Count, len(series))
		}
	})
}

// The current streak can never exceed the longest streak of its own type,
// and a trailing null always means no current streak.
func TestBooleanSeriesCurrentWithinLongest(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		series := drawBoolSeries(rt)
		stats := BooleanSeries(series)

		switch stats.CurrentStreakType {
		case StreakTrue:
			if stats.CurrentStreak > stats.LongestTrueStreak {
				rt.Errorf("current true streak %d exceeds longest %d",
					stats.CurrentStreak, stats.LongestTrueStreak)
			}
		case StreakFalse:
			if stats.CurrentStreak > stats.LongestFalseStreak {
				rt.Errorf("current false streak %d exceeds longest %d",
					stats.CurrentStreak, stats.LongestFalseStreak)
			}
		case StreakNone:
			if len(series) > 0 && series[len(series)-1] != nil {
				rt.Error("non-null final value should produce a current streak")
			}
		}
	})
}

// Descriptive statistics always respect basic order relations.
func TestNumericSeriesOrderRelations(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(-1e6, 1e6), 1, 50).Draw(rt, "values")
		stats := NumericSeries(values)
		if stats == nil {
			rt.Fatal("non-empty series should yield stats")
		}

		if stats.Mean < stats.Min || stats.Mean > stats.Max {
			rt.Errorf("mean %.4f outside [%.4f, %.4f]", stats.Mean, stats.Min, stats.Max)
		}
		if stats.Median < stats.Min || stats.Median > stats.Max {
			rt.Errorf("median %.4f outside [%.4f, %.4f]", stats.Median, stats.Min, stats.Max)
		}
		if stats.Q1 > stats.Median || stats.Median > stats.Q3 {
			rt.Errorf("quartile order violated: %.4f, %.4f, %.4f", stats.Q1, stats.Median, stats.Q3)
		}
		if stats.Variance < 0 {
			rt.Errorf("negative variance %.4f", stats.Variance)
		}
		if stats.Range != stats.Max-stats.Min {
			rt.Errorf("range %.4f != max-min %.4f", stats.Range, stats.Max-stats.Min)
		}
	})
}

// A sparkline always has one block per value.
func TestSparklineLengthMatches(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(-100, 100), 1, 40).Draw(rt, "values")
		line := []rune(Sparkline(values))
		if len(line) != len(values) {
			rt.Errorf("sparkline has %d blocks for %d values", len(line), len(values))
		}
	})
}
