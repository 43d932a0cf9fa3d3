package live

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"framepacer/internal/sched"
)

// Model renders live scheduler statistics using Bubble Tea.
type Model struct {
	report  sched.FrameReport
	haveOne bool
	table   table.Model
	reports <-chan sched.FrameReport
}

// NewModel constructs a live UI model for a frame report stream.
func NewModel(reports <-chan sched.FrameReport) Model {
	t := table.New(
		table.WithColumns(categoryColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(sched.NumCategories+1),
	)
	t.SetStyles(tableStyles())
	return Model{
		table:   t,
		reports: reports,
	}
}

// Init waits for the first frame report.
func (m Model) Init() tea.Cmd {
	return waitForReport(m.reports)
}

// Update consumes frame reports and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		return m, nil
	case reportMsg:
		m.report = sched.FrameReport(typed)
		m.haveOne = true
		m.table.SetRows(categoryRows(m.report))
		return m, waitForReport(m.reports)
	}
	return m, nil
}

// View renders the live UI.
func (m Model) View() string {
	if !m.haveOne {
		return "waiting for first frame...\n"
	}
	header := renderHeader(m.report)
	footer := renderFooter(m.report)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.table.View(), footer)
}

// reportMsg wraps a frame report for Bubble Tea.
type reportMsg sched.FrameReport

// waitForReport blocks until the next frame report is available.
func waitForReport(reports <-chan sched.FrameReport) tea.Cmd {
	return func() tea.Msg {
		report, ok := <-reports
		if !ok {
			return tea.Quit()
		}
		return reportMsg(report)
	}
}
