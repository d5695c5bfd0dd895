package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybook-sh/daybook/internal/storage"
	"github.com/daybook-sh/daybook/pkg/models"
)

// ReviewBuilder assembles the periodic review reports. A review looks back
// over its tier's window of daily answers and aggregates them per item:
// streaks and percentages for booleans, descriptive statistics and trends for
// numbers, then ends with free-form review prompts that are collected under
// the review's own report type.
type ReviewBuilder struct {
	reg   *Registry
	store storage.HistoryStore
	now   Clock
}

// NewReviewBuilder wires a ReviewBuilder. A nil clock means time.Now.
func NewReviewBuilder(reg *Registry, store storage.HistoryStore, now Clock) *ReviewBuilder {
	if now == nil {
		now = time.Now
	}
	return &ReviewBuilder{reg: reg, store: store, now: now}
}

// reviewPrompts are the free-form inputs appended to every review.
var reviewPrompts = []models.Item{
	{
		ID: "reviewHighlights", Label: "Highlights", Category: models.CategoryPrompt,
		Input: models.InputSpec{Type: models.InputText, Placeholder: "What stood out in this period..."},
	},
	{
		ID: "reviewAdjustments", Label: "Adjustments", Category: models.CategoryPrompt,
		Input: models.InputSpec{Type: models.InputText, Placeholder: "What to change for the next period..."},
	},
}

// Build renders the review report for the given tier.
func (r *ReviewBuilder) Build(reportType models.ReportType) (*BuiltReport, error) {
	def, ok := models.ReportDefinitions[reportType]
	if !ok || def.WindowDays <= 0 {
		return nil, fmt.Errorf("no review window defined for report type %q", reportType)
	}

	now := r.now()
	end := FormatDate(now)
	start := FormatDate(now.AddDate(0, 0, -(def.WindowDays - 1)))

	var bld strings.Builder
	fmt.Fprintf(&bld, "# %s\n\n%s to %s\n\n", def.Name, start, end)

	if err := r.renderHabitSummary(&bld, start, end); err != nil {
		return nil, err
	}
	if err := r.renderWellbeingSummary(&bld, start, end); err != nil {
		return nil, err
	}

	bld.WriteString("## Reflection\n\n")
	for _, prompt := range reviewPrompts {
		fmt.Fprintf(&bld, "**%s**\n\n", prompt.Label)
		bld.WriteString(RenderInput("reviewReflection", prompt))
		bld.WriteString("\n")
	}

	return &BuiltReport{
		Type:     reportType,
		Date:     end,
		Markdown: bld.String(),
	}, nil
}

func (r *ReviewBuilder) renderHabitSummary(bld *strings.Builder, start, end string) error {
	var rows []string
	for _, item := range r.boolItems() {
		answers, err := r.store.AnswersInRange(models.ReportDaily, []string{item.ID}, start, end)
		if err != nil {
			return fmt.Errorf("reading history for %s: %w", item.ID, err)
		}
		if len(answers) == 0 {
			continue
		}

		// Days without a report inside the range count as nulls, so a
		// missed day breaks a streak instead of bridging it.
		stats := BooleanSeries(BoolSeriesByDate(answers))

		row := fmt.Sprintf("| %s | %d/%d | %.0f%% | %d |",
			item.Label, stats.TrueCount, stats.Count, stats.TruePercentage, stats.LongestTrueStreak)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil
	}

	bld.WriteString("## Habits\n\n")
	bld.WriteString("| Habit | Done | Rate | Longest streak |\n")
	bld.WriteString("| --- | --- | --- | --- |\n")
	bld.WriteString(strings.Join(rows, "\n"))
	bld.WriteString("\n\n")
	return nil
}

func (r *ReviewBuilder) renderWellbeingSummary(bld *strings.Builder, start, end string) error {
	var sections []string
	for _, item := range r.reg.ByCategory(models.CategoryWellbeing) {
		answers, err := r.store.AnswersInRange(models.ReportDaily, []string{item.ID}, start, end)
		if err != nil {
			return fmt.Errorf("reading history for %s: %w", item.ID, err)
		}

		var values []float64
		for _, a := range answers {
			if v, ok := a.NumericValue(); ok {
				values = append(values, v)
			}
		}
		stats := NumericSeries(values)
		if stats == nil {
			continue
		}

		section := fmt.Sprintf("**%s**: mean %.1f, range %.0f-%.0f over %d ratings\n\n`%s`",
			item.Label, stats.Mean, stats.Min, stats.Max, stats.Count, Sparkline(values))
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		return nil
	}

	bld.WriteString("## Wellbeing\n\n")
	bld.WriteString(strings.Join(sections, "\n\n"))
	bld.WriteString("\n\n")
	return nil
}

// boolItems returns every boolean-tracked item outside the prompt category,
// habits and practices alike.
func (r *ReviewBuilder) boolItems() []models.Item {
	var out []models.Item
	for _, item := range r.reg.Items() {
		if item.Input.Type == models.InputBoolean && item.Category != models.CategoryPrompt {
			out = append(out, item)
		}
	}
	return out
}
