package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybook-sh/daybook/pkg/models"
)

// ComponentError records a section that failed to render and was skipped.
type ComponentError struct {
	ComponentID string
	Err         error
}

// BuiltReport is the output of a report build: the assembled markdown plus
// any sections that were skipped because they failed to render and any items
// hidden because their own evaluation failed.
type BuiltReport struct {
	Type        models.ReportType
	Date        string
	Markdown    string
	Skipped     []ComponentError
	FailedItems []ItemError
}

// ReportBuilder assembles reports from components. A component that returns
// an error is skipped and recorded; the rest of the report still builds.
type ReportBuilder struct {
	builder *ComponentBuilder
	now     Clock
}

// NewReportBuilder wires a ReportBuilder. A nil clock means time.Now.
func NewReportBuilder(builder *ComponentBuilder, now Clock) *ReportBuilder {
	if now == nil {
		now = time.Now
	}
	return &ReportBuilder{builder: builder, now: now}
}

// BuildDaily renders today's daily report. Components that render to an
// empty string are omitted without a section header.
func (r *ReportBuilder) BuildDaily() (*BuiltReport, error) {
	now := r.now()
	report := &BuiltReport{
		Type: models.ReportDaily,
		Date: FormatDate(now),
	}

	var bld strings.Builder
	fmt.Fprintf(&bld, "# Daily Report\n\n%s\n\n", now.Format("Monday, 2 January 2006"))

	for _, comp := range r.builder.DailyComponents() {
		body, err := comp.Render()
		if err != nil {
			report.Skipped = append(report.Skipped, ComponentError{ComponentID: comp.ID, Err: err})
			continue
		}
		if strings.TrimSpace(body) == "" {
			continue
		}
		fmt.Fprintf(&bld, "## %s\n\n%s\n", comp.Title, strings.TrimRight(body, "\n"))
		bld.WriteString("\n")
	}

	report.Markdown = bld.String()
	report.FailedItems = r.builder.FailedItems()
	return report, nil
}
