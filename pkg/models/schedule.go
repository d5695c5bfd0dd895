package models

// PeriodUnit is a calendar unit used for periodicity and rolling windows.
type PeriodUnit string

const (
	UnitDay     PeriodUnit = "day"
	UnitWeek    PeriodUnit = "week"
	UnitMonth   PeriodUnit = "month"
	UnitQuarter PeriodUnit = "quarter"
	UnitYear    PeriodUnit = "year"
	UnitDecade  PeriodUnit = "decade"
)

// Period is a repeating time window: a multiplier and a calendar unit.
// It drives both "how often to show" and "what window to count completions in".
type Period struct {
	Count int        `yaml:"count" json:"count"`
	Unit  PeriodUnit `yaml:"unit" json:"unit"`
}

// Target is a rolling completion quota: complete at least Count times per
// Per-period. Once met the item hides for the rest of the period unless
// KeepShowing is set (a permanent habit).
type Target struct {
	Count       int    `yaml:"count" json:"count"`
	Per         Period `yaml:"per" json:"per"`
	KeepShowing bool   `yaml:"keep_showing,omitempty" json:"keepShowing,omitempty"`
}

// Limit is a rolling completion ceiling: at most Max times per Per-period.
// Once reached the item hides regardless of any target.
type Limit struct {
	Max int    `yaml:"max" json:"max"`
	Per Period `yaml:"per" json:"per"`
}

// Schedule configures when a trackable item appears in a report and how its
// progress is tracked. All fields are optional; a nil Schedule means the item
// always shows with no target or limit tracking.
type Schedule struct {
	// Active is an explicit kill switch. Only an explicit false hides the
	// item; nil means active.
	Active *bool `yaml:"active,omitempty" json:"active,omitempty"`

	// ShowEvery shows the item only when the current period ordinal is
	// divisible by Count. Count=1 always matches.
	ShowEvery *Period `yaml:"show_every,omitempty" json:"showEvery,omitempty"`

	// DaysOfWeek is an explicit weekday allow-list. ISO values 1-7 (Mon-Sun)
	// are normalized to the internal 0-6 (Sun-Sat) convention, 7 mapping to 0.
	// Takes precedence over ShowEvery and DatesOfMonth.
	DaysOfWeek []int `yaml:"days_of_week,omitempty" json:"daysOfWeek,omitempty"`

	// DatesOfMonth is an explicit day-of-month allow-list (1-31).
	DatesOfMonth []int `yaml:"dates_of_month,omitempty" json:"datesOfMonth,omitempty"`

	Target *Target `yaml:"target,omitempty" json:"target,omitempty"`
	Limit  *Limit  `yaml:"limit,omitempty" json:"limit,omitempty"`

	// StartDate and EndDate bound the absolute visibility window, inclusive,
	// as ISO YYYY-MM-DD strings.
	StartDate string `yaml:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate   string `yaml:"end_date,omitempty" json:"endDate,omitempty"`

	// RequiresCompleted lists item IDs that must all have a true answer
	// recorded for today before this item shows.
	RequiresCompleted []string `yaml:"requires_completed,omitempty" json:"requiresCompleted,omitempty"`

	// HideIfCompleted hides this item if any listed item has a true answer
	// recorded for today.
	HideIfCompleted []string `yaml:"hide_if_completed,omitempty" json:"hideIfCompleted,omitempty"`

	// Condition is an escape-hatch predicate evaluated after dependencies and
	// before periodicity. Set programmatically, never from config files.
	Condition func() bool `yaml:"-" json:"-"`

	// Priority and SortOrder control placement within a report section.
	Priority  int `yaml:"priority,omitempty" json:"priority,omitempty"`
	SortOrder int `yaml:"sort_order,omitempty" json:"sortOrder,omitempty"`

	Tags  []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Notes string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// IsActive reports whether the schedule is enabled. Only an explicit
// Active=false disables it.
func (s *Schedule) IsActive() bool {
	return s == nil || s.Active == nil || *s.Active
}

// TargetProgress describes progress against a schedule's target quota.
type TargetProgress struct {
	Current    int  `json:"current"`
	Target     int  `json:"target"`
	IsComplete bool `json:"isComplete"`
}

// LimitProgress describes consumption of a schedule's limit ceiling.
type LimitProgress struct {
	Current    int     `json:"current"`
	Limit      int     `json:"limit"`
	Percentage float64 `json:"percentage"`
}

// Progress carries target and limit progress for one item. Either field may
// be nil when the corresponding schedule field is absent.
type Progress struct {
	Target *TargetProgress `json:"target,omitempty"`
	Limit  *LimitProgress  `json:"limit,omitempty"`
}
