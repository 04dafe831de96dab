package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yuqie6/taskboard/internal/analytics"
)

// 图表区域（mm，A4 纵向）
const (
	chartLeft   = 20.0
	chartWidth  = 170.0
	chartHeight = 80.0
)

type rgb struct{ r, g, b int }

// parseColor 解析 #rrggbb，失败时为灰色
func parseColor(hex string) rgb {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return rgb{128, 128, 128}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{128, 128, 128}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// WritePDF 输出迭代统计 PDF：概要、燃尽图、阶段与任务类型表
func WritePDF(w io.Writer, res *analytics.SprintAnalytics) error {
	if res == nil {
		return fmt.Errorf("统计结果不能为空")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Sprint report: %s", res.Sprint.Title), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Sprint report: %s", res.Sprint.Title)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s - %s", res.Sprint.DateStart.Format(time.DateOnly), res.Sprint.DateEnd.Format(time.DateOnly)))
	pdf.Ln(10)

	writeStats(pdf, res)
	writeBurndown(pdf, res.Burndown)
	writePhases(pdf, tr, res.PhaseDurations)
	writeTaskTypes(pdf, tr, res.ChartDataTaskTypes)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("生成 PDF 失败: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("写出 PDF 失败: %w", err)
	}
	return nil
}

func writeStats(pdf *fpdf.Fpdf, res *analytics.SprintAnalytics) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	rows := [][2]string{
		{"Stories done", fmt.Sprintf("%d / %d (%d%%)", res.SprintStats.CntStoryDone, res.SprintStats.CntStoryTotal, res.SprintStats.ProgressStory)},
		{"Tasks done", fmt.Sprintf("%d / %d (%d%%)", res.SprintStats.CntTaskDone, res.SprintStats.CntTaskTotal, res.SprintStats.ProgressTask)},
		{"Initial tasks", strconv.Itoa(res.InitTasks)},
		{"Added after start", strconv.Itoa(res.TasksOverCount)},
		{"Planned days", strconv.Itoa(res.Statistics.SprintDays)},
		{"Work days", strconv.Itoa(res.Statistics.WorkDays)},
		{"Tasks/day ideal", fmt.Sprintf("%.2f", res.Statistics.TasksPerDayIdeal)},
		{"Tasks/day actual", fmt.Sprintf("%.2f", res.Statistics.TasksPerDayActual)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(50, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// writeBurndown 用直线与矩形绘制燃尽图
func writeBurndown(pdf *fpdf.Fpdf, b analytics.Burndown) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Burndown")
	pdf.Ln(10)

	top := pdf.GetY()
	bottom := top + chartHeight

	minX, maxX, maxY := chartBounds(b)
	xPos := func(ts int64) float64 {
		if maxX == minX {
			return chartLeft
		}
		return chartLeft + float64(ts-minX)/float64(maxX-minX)*chartWidth
	}
	yPos := func(v float64) float64 {
		return bottom - v/maxY*chartHeight
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Line(chartLeft, top, chartLeft, bottom)
	pdf.Line(chartLeft, bottom, chartLeft+chartWidth, bottom)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(chartLeft-8, top+3, fmt.Sprintf("%.0f", maxY))
	pdf.Text(chartLeft-4, bottom, "0")
	pdf.Text(chartLeft, bottom+5, time.UnixMilli(minX).UTC().Format("01-02"))
	pdf.Text(chartLeft+chartWidth-8, bottom+5, time.UnixMilli(maxX).UTC().Format("01-02"))

	series := b.Series()
	barWidth := chartWidth / float64(max(1, len(b.Ideal)+2)) / 3
	drawBars := func(samples []analytics.Sample, color string, offset float64) {
		c := parseColor(color)
		pdf.SetFillColor(c.r, c.g, c.b)
		for _, s := range samples {
			h := float64(s[1]) / maxY * chartHeight
			pdf.Rect(xPos(s[0])+offset, bottom-h, barWidth, h, "F")
		}
	}
	drawBars(b.Done, series[2].Color, -barWidth)
	drawBars(b.Added, series[3].Color, 0)

	drawLine := func(points []analytics.Point, color string, dashed bool) {
		c := parseColor(color)
		pdf.SetDrawColor(c.r, c.g, c.b)
		pdf.SetLineWidth(0.6)
		if dashed {
			pdf.SetDashPattern([]float64{2, 1}, 0)
		}
		for i := 1; i < len(points); i++ {
			pdf.Line(xPos(points[i-1].X), yPos(points[i-1].Y), xPos(points[i].X), yPos(points[i].Y))
		}
		pdf.SetDashPattern([]float64{}, 0)
	}
	drawLine(b.Ideal, series[0].Color, true)
	drawLine(b.Actual, series[1].Color, false)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)

	// 图例
	legendY := bottom + 9
	x := chartLeft
	for _, s := range series {
		c := parseColor(s.Color)
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.Rect(x, legendY-2.5, 3, 3, "F")
		pdf.Text(x+4, legendY, s.Name)
		x += 25
	}

	pdf.SetY(legendY + 6)
}

func chartBounds(b analytics.Burndown) (minX, maxX int64, maxY float64) {
	first := true
	track := func(x int64, y float64) {
		if first {
			minX, maxX = x, x
			first = false
		}
		minX = min(minX, x)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	for _, p := range b.Ideal {
		track(p.X, p.Y)
	}
	for _, p := range b.Actual {
		track(p.X, p.Y)
	}
	for _, s := range b.Done {
		track(s[0], float64(s[1]))
	}
	for _, s := range b.Added {
		track(s[0], float64(s[1]))
	}
	if maxY <= 0 {
		maxY = 1
	}
	return minX, maxX, maxY
}

func writePhases(pdf *fpdf.Fpdf, tr func(string) string, phases analytics.PhaseDurations) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Phase durations")
	pdf.Ln(8)

	header := []string{"Phase", "Duration", "% without first", "% total"}
	widths := []float64{60, 35, 35, 35}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range phases.Phases {
		pdf.CellFormat(widths[0], 6, tr(p.Title), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, formatDuration(p.Duration), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.1f", p.DurationPercentage), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.1f", p.DurationPercentageTotal), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTaskTypes(pdf *fpdf.Fpdf, tr func(string) string, types []analytics.TypeSlice) {
	if len(types) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Task types")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range types {
		c := parseColor(t.Color)
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.CellFormat(4, 6, "", "", 0, "L", true, 0, "")
		pdf.CellFormat(56, 6, tr(" "+t.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("%d (%.1f%%)", t.Count, t.Y), "", 1, "L", false, 0, "")
	}
}

// formatDuration 秒 -> 1h5m0s，按分钟取整
func formatDuration(sec int64) string {
	return (time.Duration(sec) * time.Second).Round(time.Minute).String()
}
