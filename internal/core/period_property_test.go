package core

import (
	"testing"
	"time"

	"github.com/daybook-sh/daybook/pkg/models"
	"pgregory.net/rapid"
)

var periodUnits = []models.PeriodUnit{
	models.UnitDay,
	models.UnitWeek,
	models.UnitMonth,
	models.UnitQuarter,
	models.UnitYear,
	models.UnitDecade,
}

// For any period and any date, the window start never lies after the date
// itself.
func TestPeriodStartNeverAfterNow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		unit := rapid.SampledFrom(periodUnits).Draw(rt, "unit")
		count := rapid.IntRange(1, 24).Draw(rt, "count")
		dayOffset := rapid.IntRange(0, 4000).Draw(rt, "dayOffset")

		epoch, _ := ParseDate(DefaultEpoch)
		now := epoch.AddDate(0, 0, dayOffset)

		start := PeriodStart(models.Period{Count: count, Unit: unit}, now)
		if start > FormatDate(now) {
			rt.Errorf("PeriodStart(%d %s, %s) = %s, after now", count, unit, FormatDate(now), start)
		}
	})
}

// For any multi-count day period, consecutive dates produce window starts
// exactly one day apart: the look-back window rolls with the evaluation date.
func TestRollingDayWindowTracksNow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(2, 30).Draw(rt, "count")
		dayOffset := rapid.IntRange(1, 4000).Draw(rt, "dayOffset")

		epoch, _ := ParseDate(DefaultEpoch)
		now := epoch.AddDate(0, 0, dayOffset)
		per := models.Period{Count: count, Unit: models.UnitDay}

		today, _ := ParseDate(PeriodStart(per, now))
		yesterday, _ := ParseDate(PeriodStart(per, now.AddDate(0, 0, -1)))

		if got := today.Sub(yesterday); got != 24*time.Hour {
			rt.Errorf("window start moved %v for a one-day step", got)
		}
	})
}

// For any show-every day count, the ordinal match repeats with exactly that
// cadence: of any span of count consecutive days, exactly one matches.
func TestShowEveryDayCadence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(2, 14).Draw(rt, "count")
		dayOffset := rapid.IntRange(0, 4000).Draw(rt, "dayOffset")

		epoch, _ := ParseDate(DefaultEpoch)
		start := epoch.AddDate(0, 0, dayOffset)

		matches := 0
		for i := 0; i < count; i++ {
			date := start.AddDate(0, 0, i)
			if PeriodOrdinal(models.UnitDay, date, epoch)%count == 0 {
				matches++
			}
		}
		if matches != 1 {
			rt.Errorf("%d matches in a %d-day span, want exactly 1", matches, count)
		}
	})
}

// Weekday normalization is idempotent and always lands in 0..6 for valid
// configured values.
func TestNormalizeWeekdayIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		day := rapid.IntRange(0, 7).Draw(rt, "day")

		once := NormalizeWeekday(day)
		twice := NormalizeWeekday(once)
		if once != twice {
			rt.Errorf("NormalizeWeekday not idempotent: %d -> %d -> %d", day, once, twice)
		}
		if once < 0 || once > 6 {
			rt.Errorf("NormalizeWeekday(%d) = %d, outside 0..6", day, once)
		}
	})
}
