package live

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"framepacer/internal/sched"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	hotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

func categoryColumns() []table.Column {
	return []table.Column{
		{Title: "category", Width: 12},
		{Title: "executed", Width: 10},
		{Title: "deferred", Width: 10},
	}
}

func categoryRows(report sched.FrameReport) []table.Row {
	rows := make([]table.Row, 0, sched.NumCategories)
	for _, c := range sched.PriorityOrder() {
		rows = append(rows, table.Row{
			c.String(),
			strconv.FormatUint(report.Stats.FramePerCategory[c], 10),
			strconv.Itoa(report.Depths[c]),
		})
	}
	return rows
}

func renderHeader(report sched.FrameReport) string {
	util := formatUtilization(report.Stats.BudgetUtilization)
	return titleStyle.Render("framepacer") + "  " +
		labelStyle.Render("frame ") + strconv.FormatUint(report.Frame, 10) + "  " +
		labelStyle.Render("budget ") + report.Budget.String() + "  " +
		labelStyle.Render("elapsed ") + report.Stats.FrameElapsed.String() + "  " +
		labelStyle.Render("util ") + util
}

func renderFooter(report sched.FrameReport) string {
	return footerStyle.Render(fmt.Sprintf(
		"frames %d  jobs %d  avg frame %.2fms  overruns %d  peak depth %d  (q to quit)",
		report.Stats.TotalFrames,
		report.Stats.TotalJobsExecuted,
		report.Stats.AvgFrameMS,
		report.Stats.BudgetOverruns,
		report.Stats.PeakQueueDepth,
	))
}

// formatUtilization renders the budget utilization as a percentage, flagging
// overruns in red.
func formatUtilization(ratio float64) string {
	s := fmt.Sprintf("%.0f%%", ratio*100)
	if ratio >= 1.0 {
		return hotStyle.Render(s)
	}
	return okStyle.Render(s)
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("86"))
	styles.Selected = lipgloss.NewStyle()
	return styles
}
