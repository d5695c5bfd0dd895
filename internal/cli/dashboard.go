package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/daybook-sh/daybook/pkg/models"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelToday = iota
	panelProgress
	panelMetrics
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	todayItems   []todayItemRow
	progressRows []progressRow
	metricsData  *metricsSnapshot

	// State.
	loading bool
	err     error
}

type todayItemRow struct {
	label    string
	category string
}

type progressRow struct {
	label    string
	current  int
	goal     int
	isLimit  bool
	complete bool
}

type metricsSnapshot struct {
	reportsGenerated  int
	reportsCollected  int
	answersCollected  int
	answersBackfilled int
	eventCount        int
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	todayItems   []todayItemRow
	progressRows []progressRow
	metrics      *metricsSnapshot
	err          error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	categoryHabit     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	categoryWellbeing = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	categoryPractice  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	categoryPrompt    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	progressDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	progressPending = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	progressLimit   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelToday,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.todayItems = msg.todayItems
		m.progressRows = msg.progressRows
		m.metricsData = msg.metrics
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Daybook Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	todayPanel := m.renderTodayPanel()
	progressPanel := m.renderProgressPanel()
	metricsPanel := m.renderMetricsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		todayPanel = m.applyPanelStyle(panelToday, todayPanel, colWidth-4)
		progressPanel = m.applyPanelStyle(panelProgress, progressPanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, todayPanel, progressPanel, metricsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		todayPanel = m.applyPanelStyle(panelToday, todayPanel, panelWidth)
		progressPanel = m.applyPanelStyle(panelProgress, progressPanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, todayPanel, progressPanel, metricsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderTodayPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Today (%s)", time.Now().Format("Mon 2 Jan"))))
	b.WriteString("\n")

	if len(m.todayItems) == 0 {
		b.WriteString("  Nothing scheduled today.")
		return b.String()
	}

	for _, row := range m.todayItems {
		label := fmt.Sprintf("  %-10s %s", row.category, row.label)
		b.WriteString(styleForCategory(row.category).Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d item(s)", len(m.todayItems)))

	return b.String()
}

func (m dashboardModel) renderProgressPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Targets & Limits"))
	b.WriteString("\n")

	if len(m.progressRows) == 0 {
		b.WriteString("  No targets or limits configured.")
		return b.String()
	}

	for _, row := range m.progressRows {
		label := fmt.Sprintf("  %-24s %d/%d", row.label, row.current, row.goal)
		b.WriteString(styleForProgress(row).Render(label))
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	lines := []struct {
		label string
		value int
	}{
		{"Events", md.eventCount},
		{"Generated", md.reportsGenerated},
		{"Collected", md.reportsCollected},
		{"Answers", md.answersCollected},
		{"Backfilled", md.answersBackfilled},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	return b.String()
}

func styleForCategory(category string) lipgloss.Style {
	switch category {
	case "habit":
		return categoryHabit
	case "wellbeing":
		return categoryWellbeing
	case "practice":
		return categoryPractice
	case "prompt":
		return categoryPrompt
	default:
		return lipgloss.NewStyle()
	}
}

func styleForProgress(row progressRow) lipgloss.Style {
	switch {
	case row.isLimit && row.current >= row.goal:
		return progressLimit
	case row.complete:
		return progressDone
	default:
		return progressPending
	}
}

func loadDashboardData() tea.Msg {
	var result dataLoadedMsg

	if Registry == nil || Store == nil {
		result.err = fmt.Errorf("services not initialized")
		return result
	}

	if err := Store.Load(); err != nil {
		result.err = fmt.Errorf("loading history: %w", err)
		return result
	}

	eval := newEvaluator(models.ReportDaily)
	for _, item := range Registry.Items() {
		show, err := eval.ShouldShow(item)
		if err != nil {
			result.err = fmt.Errorf("evaluating %s: %w", item.ID, err)
			return result
		}
		if show {
			result.todayItems = append(result.todayItems, todayItemRow{
				label:    item.Label,
				category: string(item.Category),
			})
		}

		if item.Schedule == nil || (item.Schedule.Target == nil && item.Schedule.Limit == nil) {
			continue
		}
		progress, err := eval.Progress(item)
		if err != nil {
			result.err = fmt.Errorf("progress for %s: %w", item.ID, err)
			return result
		}
		if progress.Target != nil {
			result.progressRows = append(result.progressRows, progressRow{
				label:    item.Label,
				current:  progress.Target.Current,
				goal:     progress.Target.Target,
				complete: progress.Target.IsComplete,
			})
		}
		if progress.Limit != nil {
			result.progressRows = append(result.progressRows, progressRow{
				label:   item.Label + " (limit)",
				current: progress.Limit.Current,
				goal:    progress.Limit.Limit,
				isLimit: true,
			})
		}
	}

	if MetricsCalc != nil {
		metrics, err := MetricsCalc.Calculate(time.Now().AddDate(0, 0, -7))
		if err == nil {
			result.metrics = &metricsSnapshot{
				reportsGenerated:  metrics.ReportsGenerated,
				reportsCollected:  metrics.ReportsCollected,
				answersCollected:  metrics.AnswersCollected,
				answersBackfilled: metrics.AnswersBackfilled,
				eventCount:        metrics.EventCount,
			}
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive terminal dashboard",
	Long:  "Open an interactive dashboard showing today's items, target and limit progress, and recent metrics.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
