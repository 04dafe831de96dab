package analytics

import (
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
)

// 2024-03-04 是周一
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func sprint(start, end time.Time, ignoreWeekends bool) schema.Sprint {
	return schema.Sprint{ID: 1, ProjectID: 1, Title: "Sprint 1", DateStart: start, DateEnd: end, IgnoreWeekends: ignoreWeekends}
}

func ts(t time.Time) int64 { return Timestamp(t) }

func ys(points []Point) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Y)
	}
	return out
}

func xs(points []Point) []int64 {
	out := make([]int64, 0, len(points))
	for _, p := range points {
		out = append(out, p.X)
	}
	return out
}
