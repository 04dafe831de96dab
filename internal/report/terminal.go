package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuqie6/taskboard/internal/analytics"
)

// Theme 终端摘要样式
type Theme struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Dim      lipgloss.Style
	Overrun  lipgloss.Style
	Box      lipgloss.Style
	BarEmpty string
	BarFull  string
}

// DefaultTheme 默认样式
var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	Section:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true).MarginTop(1),
	Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(20),
	Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Overrun:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
	BarEmpty: "░",
	BarFull:  "█",
}

// RenderSummary 渲染迭代统计的终端摘要
func RenderSummary(res *analytics.SprintAnalytics, theme Theme) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(res.Sprint.Title))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %s → %s",
		res.Sprint.DateStart.Format(time.DateOnly), res.Sprint.DateEnd.Format(time.DateOnly))))
	b.WriteString("\n")

	kv := func(label, value string) {
		b.WriteString(theme.Label.Render(label))
		b.WriteString(theme.Value.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(theme.Section.Render("Progress"))
	b.WriteString("\n")
	kv("Stories", fmt.Sprintf("%s %d/%d", bar(theme, res.SprintStats.ProgressStory, 20), res.SprintStats.CntStoryDone, res.SprintStats.CntStoryTotal))
	kv("Tasks", fmt.Sprintf("%s %d/%d", bar(theme, res.SprintStats.ProgressTask, 20), res.SprintStats.CntTaskDone, res.SprintStats.CntTaskTotal))
	kv("Initial / added", fmt.Sprintf("%d / %d", res.InitTasks, res.TasksOverCount))
	kv("Planned / work days", fmt.Sprintf("%d / %d", res.Statistics.SprintDays, res.Statistics.WorkDays))
	kv("Tasks per day", fmt.Sprintf("ideal %.2f, actual %.2f", res.Statistics.TasksPerDayIdeal, res.Statistics.TasksPerDayActual))

	if len(res.Burndown.Actual) > 0 {
		b.WriteString(theme.Section.Render("Burndown"))
		b.WriteString("\n")
		b.WriteString(theme.Box.Render(burndownTable(res.Burndown, theme)))
		b.WriteString("\n")
	}

	if len(res.PhaseDurations.Phases) > 0 {
		b.WriteString(theme.Section.Render("Phases"))
		b.WriteString("\n")
		for _, p := range res.PhaseDurations.Phases {
			kv(p.Title, fmt.Sprintf("%-10s %5.1f%%", formatDuration(p.Duration), p.DurationPercentageTotal))
		}
	}

	if len(res.ChartDataTaskTypes) > 0 {
		b.WriteString(theme.Section.Render("Task types"))
		b.WriteString("\n")
		for _, t := range res.ChartDataTaskTypes {
			name := t.Name
			if t.Color != "" {
				name = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("● ") + name
			}
			kv(name, fmt.Sprintf("%d (%.1f%%)", t.Count, t.Y))
		}
	}

	return b.String()
}

// burndownTable 每个实际点一行：日期、剩余、同日理想值
func burndownTable(bd analytics.Burndown, theme Theme) string {
	ideal := make(map[int64]float64, len(bd.Ideal))
	for _, p := range bd.Ideal {
		ideal[p.X] = p.Y
	}

	rows := []string{theme.Dim.Render(fmt.Sprintf("%-10s %9s %7s", "day", "remaining", "ideal"))}
	for i, p := range bd.Actual {
		// 首点是迭代开始前的基线，与第一天同 X
		if i == 0 && len(bd.Actual) > 1 && bd.Actual[1].X == p.X {
			continue
		}
		idealCol := "-"
		if y, ok := ideal[p.X]; ok {
			idealCol = fmt.Sprintf("%.1f", y)
		}
		row := fmt.Sprintf("%-10s %9.0f %7s", time.UnixMilli(p.X).UTC().Format(time.DateOnly), p.Y, idealCol)
		if p.NotPlannedDay {
			row = theme.Overrun.Render(row + " *")
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// bar 百分比进度条
func bar(theme Theme, percent, width int) string {
	percent = min(max(percent, 0), 100)
	full := percent * width / 100
	return strings.Repeat(theme.BarFull, full) + strings.Repeat(theme.BarEmpty, width-full) + fmt.Sprintf(" %3d%%", percent)
}
