package core

import (
	"time"

	"github.com/daybook-sh/daybook/pkg/models"
)

// DefaultEpoch anchors the periodicity ordinals used by show-every checks.
const DefaultEpoch = "2020-01-01"

// ISODate is the date layout used everywhere answers and windows are keyed.
const ISODate = "2006-01-02"

// FormatDate renders a time as an ISO YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseDate parses an ISO YYYY-MM-DD string as a UTC midnight instant.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// normalizePeriod fills in defensive defaults for a partially specified
// period: a missing unit means day granularity, a count below one becomes one.
func normalizePeriod(per models.Period) models.Period {
	if per.Unit == "" {
		per.Unit = models.UnitDay
	}
	if per.Count < 1 {
		per.Count = 1
	}
	return per
}

// PeriodStart returns the ISO start date of the window the given period spans
// relative to now.
//
// For count=1 the window is calendar-aligned: today, the most recent Monday,
// the 1st of the month, the first day of the quarter, Jan 1, or the decade
// floor year. For count>1 the window is a rolling look-back of count units
// ending now. The asymmetry is inherited behavior and pinned by tests; decade
// always uses the calendar floor regardless of count.
func PeriodStart(per models.Period, now time.Time) string {
	per = normalizePeriod(per)

	switch per.Unit {
	case models.UnitDay:
		if per.Count == 1 {
			return FormatDate(now)
		}
		return FormatDate(now.AddDate(0, 0, -per.Count))

	case models.UnitWeek:
		if per.Count == 1 {
			// Current week starts on Monday.
			dow := int(now.Weekday())
			back := dow - 1
			if dow == 0 {
				back = 6
			}
			return FormatDate(now.AddDate(0, 0, -back))
		}
		return FormatDate(now.AddDate(0, 0, -per.Count*7))

	case models.UnitMonth:
		if per.Count == 1 {
			return FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
		}
		return FormatDate(now.AddDate(0, -per.Count, 0))

	case models.UnitQuarter:
		if per.Count == 1 {
			quarterStart := time.Month((int(now.Month())-1)/3*3 + 1)
			return FormatDate(time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, now.Location()))
		}
		return FormatDate(now.AddDate(0, -per.Count*3, 0))

	case models.UnitYear:
		if per.Count == 1 {
			return FormatDate(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()))
		}
		return FormatDate(now.AddDate(-per.Count, 0, 0))

	case models.UnitDecade:
		decade := now.Year() / 10 * 10
		return FormatDate(time.Date(decade, time.January, 1, 0, 0, 0, 0, now.Location()))

	default:
		return FormatDate(now)
	}
}

// PeriodOrdinal returns the integer count of whole units elapsed since the
// epoch for the given date. It backs show-every divisibility checks only,
// never target or limit windows. Weeks are epoch-relative seven-day blocks,
// not ISO weeks.
func PeriodOrdinal(unit models.PeriodUnit, date time.Time, epoch time.Time) int {
	switch unit {
	case models.UnitDay:
		return DayNumber(date, epoch)
	case models.UnitWeek:
		return DayNumber(date, epoch) / 7
	case models.UnitMonth:
		return MonthNumber(date, epoch)
	case models.UnitQuarter:
		return MonthNumber(date, epoch) / 3
	case models.UnitYear:
		return date.Year() - epoch.Year()
	default:
		return 0
	}
}

// DayNumber counts whole days from epoch to date.
func DayNumber(date, epoch time.Time) int {
	d := date.Truncate(24 * time.Hour)
	e := epoch.Truncate(24 * time.Hour)
	return int(d.Sub(e) / (24 * time.Hour))
}

// MonthNumber counts whole months from epoch to date.
func MonthNumber(date, epoch time.Time) int {
	return (date.Year()-epoch.Year())*12 + int(date.Month()) - int(epoch.Month())
}

// NormalizeWeekday maps a configured weekday to the internal 0=Sunday..6=Saturday
// convention. ISO Sunday (7) maps to 0; values 1-6 are treated as already
// normalized (Monday-Saturday coincide in both conventions); anything else
// passes through unchanged and simply never matches a real weekday.
func NormalizeWeekday(day int) int {
	if day == 7 {
		return 0
	}
	return day
}

// NormalizeWeekdays maps every configured value through NormalizeWeekday.
func NormalizeWeekdays(days []int) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = NormalizeWeekday(d)
	}
	return out
}
