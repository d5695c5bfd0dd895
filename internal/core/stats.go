package core

import (
	"math"
	"sort"

	"github.com/daybook-sh/daybook/pkg/models"
)

// StreakType identifies which value the current streak is made of.
type StreakType string

const (
	StreakTrue  StreakType = "true"
	StreakFalse StreakType = "false"
	StreakNone  StreakType = ""
)

// BooleanStats summarizes a chronologically ordered boolean series, nulls
// included for days without a recorded value.
type BooleanStats struct {
	Count              int        `json:"count"`
	TrueCount          int        `json:"trueCount"`
	FalseCount         int        `json:"falseCount"`
	NullCount          int        `json:"nullCount"`
	TruePercentage     float64    `json:"truePercentage"`
	FalsePercentage    float64    `json:"falsePercentage"`
	LongestTrueStreak  int        `json:"longestTrueStreak"`
	LongestFalseStreak int        `json:"longestFalseStreak"`
	CurrentStreak      int        `json:"currentStreak"`
	CurrentStreakType  StreakType `json:"currentStreakType"`
}

// DescriptiveStats summarizes a numeric series with standard descriptive
// statistics. Variance and standard deviation are population figures;
// quartiles use linear interpolation.
type DescriptiveStats struct {
	Count             int     `json:"count"`
	Sum               float64 `json:"sum"`
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	Mode              float64 `json:"mode"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Range             float64 `json:"range"`
	Variance          float64 `json:"variance"`
	StandardDeviation float64 `json:"standardDeviation"`
	Q1                float64 `json:"q1"`
	Q3                float64 `json:"q3"`
	IQR               float64 `json:"iqr"`
}

// BooleanSeries computes counts, percentages, and streaks for a boolean
// series in chronological order. Nil entries reset the running streak
// counters without contributing to either longest streak, and the current
// streak is whichever counter matches the final element's value.
func BooleanSeries(values []*bool) BooleanStats {
	stats := BooleanStats{Count: len(values)}

	var runTrue, runFalse int
	for _, v := range values {
		switch {
		case v == nil:
			stats.NullCount++
			runTrue = 0
			runFalse = 0
		case *v:
			stats.TrueCount++
			runTrue++
			runFalse = 0
		default:
			stats.FalseCount++
			runFalse++
			runTrue = 0
		}

		if runTrue > stats.LongestTrueStreak {
			stats.LongestTrueStreak = runTrue
		}
		if runFalse > stats.LongestFalseStreak {
			stats.LongestFalseStreak = runFalse
		}
	}

	if stats.Count > 0 {
		stats.TruePercentage = float64(stats.TrueCount) / float64(stats.Count) * 100
		stats.FalsePercentage = float64(stats.FalseCount) / float64(stats.Count) * 100

		if last := values[len(values)-1]; last != nil {
			if *last {
				stats.CurrentStreak = runTrue
				stats.CurrentStreakType = StreakTrue
			} else {
				stats.CurrentStreak = runFalse
				stats.CurrentStreakType = StreakFalse
			}
		}
	}

	return stats
}

// BoolSeriesByDate builds a nullable boolean series spanning the answers'
// calendar range, one entry per day in chronological order. Days inside the
// range with no recorded answer become nil entries, so a missed day is
// streak-neutral instead of silently joining its neighbours. Answers must be
// sorted ascending by ReportDate; a later answer on the same date wins.
func BoolSeriesByDate(answers []models.Answer) []*bool {
	if len(answers) == 0 {
		return nil
	}

	byDate := make(map[string]*bool, len(answers))
	for _, a := range answers {
		byDate[a.ReportDate] = a.BoolValue()
	}

	first, okFirst := ParseDate(answers[0].ReportDate)
	last, okLast := ParseDate(answers[len(answers)-1].ReportDate)
	if !okFirst || !okLast {
		out := make([]*bool, len(answers))
		for i, a := range answers {
			out[i] = a.BoolValue()
		}
		return out
	}

	var out []*bool
	for cursor := first; !cursor.After(last); cursor = cursor.AddDate(0, 0, 1) {
		out = append(out, byDate[FormatDate(cursor)])
	}
	return out
}

// NumericSeries computes descriptive statistics for a numeric series. NaN
// values are dropped first; an empty (or all-NaN) series yields nil.
func NumericSeries(values []float64) *DescriptiveStats {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil
	}

	sorted := make([]float64, len(clean))
	copy(sorted, clean)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range clean {
		sum += v
	}
	mean := sum / float64(len(clean))

	var sqDiff float64
	for _, v := range clean {
		d := v - mean
		sqDiff += d * d
	}
	variance := sqDiff / float64(len(clean))

	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)

	return &DescriptiveStats{
		Count:             len(clean),
		Sum:               sum,
		Mean:              mean,
		Median:            quantileSorted(sorted, 0.5),
		Mode:              modeSorted(sorted),
		Min:               sorted[0],
		Max:               sorted[len(sorted)-1],
		Range:             sorted[len(sorted)-1] - sorted[0],
		Variance:          variance,
		StandardDeviation: math.Sqrt(variance),
		Q1:                q1,
		Q3:                q3,
		IQR:               q3 - q1,
	}
}

// quantileSorted returns the p-quantile of a sorted series using linear
// interpolation between closest ranks.
func quantileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// modeSorted returns the most frequent value of a sorted series; ties go to
// the smallest value.
func modeSorted(sorted []float64) float64 {
	mode := sorted[0]
	bestRun, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			run++
		} else {
			run = 1
		}
		if run > bestRun {
			bestRun = run
			mode = sorted[i]
		}
	}
	return mode
}

// Sparkline renders a numeric series as a compact unicode block trend.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return "—"
	}

	blocks := []rune("▁▂▃▄▅▆▇█")
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		out[i] = blocks[idx]
	}
	return string(out)
}
