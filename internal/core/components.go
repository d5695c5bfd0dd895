package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybook-sh/daybook/internal/storage"
	"github.com/daybook-sh/daybook/pkg/models"
)

// Component is one renderable section of a report. Components render
// independently so one failing section never takes the report down with it.
type Component struct {
	ID     string
	Title  string
	Render func() (string, error)
}

// ItemError records an item that was hidden because its evaluation failed.
type ItemError struct {
	ItemID string
	Err    error
}

// ComponentBuilder assembles the component list for a report type from the
// item registry, the schedule evaluator, and the answer history. An item
// whose evaluation fails is hidden and recorded; its siblings in the same
// section still render.
type ComponentBuilder struct {
	reg        *Registry
	eval       *Evaluator
	store      storage.HistoryStore
	reportType models.ReportType
	now        Clock

	failed []ItemError
}

// FailedItems returns the items hidden during rendering because their
// evaluation failed, in render order.
func (b *ComponentBuilder) FailedItems() []ItemError {
	return b.failed
}

func (b *ComponentBuilder) itemFailed(itemID string, err error) {
	b.failed = append(b.failed, ItemError{ItemID: itemID, Err: err})
}

// NewComponentBuilder wires a ComponentBuilder. A nil clock means time.Now.
func NewComponentBuilder(reg *Registry, eval *Evaluator, store storage.HistoryStore, reportType models.ReportType, now Clock) *ComponentBuilder {
	if now == nil {
		now = time.Now
	}
	return &ComponentBuilder{
		reg:        reg,
		eval:       eval,
		store:      store,
		reportType: reportType,
		now:        now,
	}
}

// DailyComponents returns the ordered sections of a daily report.
func (b *ComponentBuilder) DailyComponents() []Component {
	return []Component{
		{ID: "consistencyStats", Title: "Consistency", Render: b.renderConsistencyStats},
		{ID: "messageFromYesterday", Title: "Message from Yesterday", Render: b.renderMessageFromYesterday},
		{ID: "morningReflection", Title: "Morning Reflection", Render: b.practiceRenderer("morningReflection", "dichotomyOfControl", "mindfulMoment")},
		{ID: "negativeVisualization", Title: "Negative Visualization", Render: b.practiceRenderer("negativeVisualization", "negativeVisualization")},
		{ID: "mementoMori", Title: "Memento Mori", Render: b.practiceRenderer("mementoMori", "mementoMori")},
		{ID: "voluntaryDiscomfort", Title: "Voluntary Discomfort", Render: b.practiceRenderer("voluntaryDiscomfort", "voluntaryDiscomfort")},
		{ID: "habitTracking", Title: "Habits", Render: b.renderHabitTracking},
		{ID: "wellbeingCheck", Title: "Wellbeing Check", Render: b.renderWellbeingCheck},
		{ID: "gratitude", Title: "Gratitude", Render: b.promptRenderer("gratitude", "gratitudeEntry", "savoringMoment")},
		{ID: "emotionAwareness", Title: "Emotion Awareness", Render: b.promptRenderer("emotionAwareness", "emotionAwareness")},
		{ID: "eveningReflection", Title: "Evening Reflection", Render: b.promptRenderer("eveningReflection", "accomplishmentsToday", "obstaclesToday", "energyLevel")},
		{ID: "priorityPlanning", Title: "Priority Planning", Render: b.promptRenderer("priorityPlanning", "tomorrowPriority")},
		{ID: "messageForTomorrow", Title: "Message for Tomorrow", Render: b.promptRenderer("messageForTomorrow", "messageForTomorrow")},
		{ID: "sleepPreparation", Title: "Sleep Preparation", Render: b.renderSleepPreparation},
	}
}

// renderConsistencyStats summarizes journaling consistency: total reports
// and the current run of consecutive days, counting a run alive if the last
// report was yesterday.
func (b *ComponentBuilder) renderConsistencyStats() (string, error) {
	dates, err := b.store.ReportDates(b.reportType)
	if err != nil {
		return "", fmt.Errorf("reading report dates: %w", err)
	}
	if len(dates) == 0 {
		return "First report. Welcome.\n", nil
	}

	today := FormatDate(b.now())
	streak := consecutiveRun(dates, today)

	var bld strings.Builder
	fmt.Fprintf(&bld, "Reports written: **%d**\n\n", len(dates))
	if streak > 1 {
		fmt.Fprintf(&bld, "Current streak: **%d days** in a row\n", streak)
	}
	return bld.String(), nil
}

// consecutiveRun counts the chain of consecutive dates ending at today or
// yesterday. dates must be sorted ascending.
func consecutiveRun(dates []string, today string) int {
	t, ok := ParseDate(today)
	if !ok {
		return 0
	}

	inSet := make(map[string]bool, len(dates))
	for _, d := range dates {
		inSet[d] = true
	}

	cursor := t
	if !inSet[today] {
		cursor = t.AddDate(0, 0, -1)
	}

	run := 0
	for inSet[FormatDate(cursor)] {
		run++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return run
}

func (b *ComponentBuilder) renderMessageFromYesterday() (string, error) {
	yesterday := FormatDate(b.now().AddDate(0, 0, -1))
	ans, err := b.store.AnswerOn(b.reportType, "messageForTomorrow", yesterday)
	if err != nil {
		return "", fmt.Errorf("reading yesterday's message: %w", err)
	}
	if ans == nil {
		return "", nil
	}
	text, ok := ans.Value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", nil
	}
	return fmt.Sprintf("> %s\n", strings.ReplaceAll(text, "\n", "\n> ")), nil
}

// practiceRenderer renders the given practice items that are due today,
// guide text first, then the tracking input.
func (b *ComponentBuilder) practiceRenderer(componentID string, itemIDs ...string) func() (string, error) {
	return func() (string, error) {
		var bld strings.Builder
		for _, id := range itemIDs {
			item, ok := b.reg.Get(id)
			if !ok {
				continue
			}
			show, err := b.eval.ShouldShow(item)
			if err != nil {
				b.itemFailed(id, err)
				continue
			}
			if !show {
				continue
			}
			if item.Guide != "" {
				fmt.Fprintf(&bld, "*%s*\n\n", item.Guide)
			}
			bld.WriteString(RenderInput(componentID, item))
			bld.WriteString("\n")
		}
		return bld.String(), nil
	}
}

// promptRenderer renders the given prompt items that are due today.
func (b *ComponentBuilder) promptRenderer(componentID string, itemIDs ...string) func() (string, error) {
	return func() (string, error) {
		var bld strings.Builder
		for _, id := range itemIDs {
			item, ok := b.reg.Get(id)
			if !ok {
				continue
			}
			show, err := b.eval.ShouldShow(item)
			if err != nil {
				b.itemFailed(id, err)
				continue
			}
			if !show {
				continue
			}
			if len(itemIDs) > 1 {
				fmt.Fprintf(&bld, "**%s**\n\n", item.Label)
			}
			bld.WriteString(RenderInput(componentID, item))
			bld.WriteString("\n")
		}
		return bld.String(), nil
	}
}

// renderHabitTracking lists every habit due today with its cue, reward, and
// progress toward any rolling target or limit.
func (b *ComponentBuilder) renderHabitTracking() (string, error) {
	var bld strings.Builder
	for _, item := range b.reg.ByCategory(models.CategoryHabit) {
		show, err := b.eval.ShouldShow(item)
		if err != nil {
			b.itemFailed(item.ID, err)
			continue
		}
		if !show {
			continue
		}
		progress, err := b.eval.Progress(item)
		if err != nil {
			b.itemFailed(item.ID, err)
			continue
		}

		fmt.Fprintf(&bld, "### %s\n\n", item.Label)
		if item.Cue != "" {
			fmt.Fprintf(&bld, "- Cue: %s\n", item.Cue)
		}
		if item.Reward != "" {
			fmt.Fprintf(&bld, "- Reward: %s\n", item.Reward)
		}

		if label := progressLabel(item.Schedule, progress); label != "" {
			fmt.Fprintf(&bld, "- %s\n", label)
		}
		bld.WriteString("\n")
		bld.WriteString(RenderInput("habitTracking", item))
		bld.WriteString("\n")
	}
	return bld.String(), nil
}

func progressLabel(sched *models.Schedule, p models.Progress) string {
	var parts []string
	if sched != nil && sched.Target != nil && p.Target != nil {
		status := fmt.Sprintf("Progress: %d/%d %s", p.Target.Current, p.Target.Target, describePeriod(sched.Target.Per))
		if p.Target.IsComplete {
			status += " ✓"
		}
		parts = append(parts, status)
	}
	if sched != nil && sched.Limit != nil && p.Limit != nil {
		parts = append(parts, fmt.Sprintf("Limit: %d/%d %s (%.0f%%)",
			p.Limit.Current, p.Limit.Limit, describePeriod(sched.Limit.Per), p.Limit.Percentage))
	}
	return strings.Join(parts, " · ")
}

// describePeriod turns a period into a short human phrase like "this week"
// or "in the last 6 months".
func describePeriod(per models.Period) string {
	unit := per.Unit
	if unit == "" {
		unit = models.UnitDay
	}
	count := per.Count
	if count < 1 {
		count = 1
	}

	if count == 1 {
		switch unit {
		case models.UnitDay:
			return "today"
		default:
			return "this " + string(unit)
		}
	}

	plural := string(unit) + "s"
	return fmt.Sprintf("in the last %d %s", count, plural)
}

// renderWellbeingCheck renders each due wellbeing dimension with its rating
// input and a sparkline of recent ratings.
func (b *ComponentBuilder) renderWellbeingCheck() (string, error) {
	var bld strings.Builder
	for _, item := range b.reg.ByCategory(models.CategoryWellbeing) {
		show, err := b.eval.ShouldShow(item)
		if err != nil {
			b.itemFailed(item.ID, err)
			continue
		}
		if !show {
			continue
		}
		trend, err := b.wellbeingTrend(item.ID)
		if err != nil {
			b.itemFailed(item.ID, err)
			continue
		}

		fmt.Fprintf(&bld, "### %s\n\n", item.Label)
		if item.Description != "" {
			fmt.Fprintf(&bld, "*%s*\n\n", item.Description)
		}

		if trend != "" {
			fmt.Fprintf(&bld, "Recent: `%s`\n\n", trend)
		}

		bld.WriteString(RenderInput("wellbeingCheck", item))
		bld.WriteString("\n")
	}
	return bld.String(), nil
}

// wellbeingTrend returns a sparkline of the item's last two weeks of
// ratings, oldest first, or "" when there is no usable history.
func (b *ComponentBuilder) wellbeingTrend(itemID string) (string, error) {
	answers, err := b.store.LastNReports(b.reportType, []string{itemID}, 14)
	if err != nil {
		return "", fmt.Errorf("reading history for %s: %w", itemID, err)
	}

	var values []float64
	for i := len(answers) - 1; i >= 0; i-- {
		if v, ok := answers[i].NumericValue(); ok {
			values = append(values, v)
		}
	}
	if len(values) < 2 {
		return "", nil
	}
	return Sparkline(values), nil
}

func (b *ComponentBuilder) renderSleepPreparation() (string, error) {
	return strings.Join([]string{
		"Wind down before bed:",
		"",
		"- Screens off",
		"- Tomorrow's first task written down",
		"- Room dark and cool",
		"",
	}, "\n"), nil
}
