package analytics

import (
	"iter"
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
)

const dayLayout = time.DateOnly

// Day 截断为 UTC 日历日零点
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Timestamp 日历日零点的 Unix 毫秒（图表 x 轴）
func Timestamp(t time.Time) int64 {
	return Day(t).UnixMilli()
}

func dayKey(t time.Time) string {
	return Day(t).Format(dayLayout)
}

func nextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// Days 按天遍历 [start, end]（闭区间）。
// 返回的序列可重复遍历，end 早于 start 时为空。
func Days(start, end time.Time) iter.Seq[time.Time] {
	from, to := Day(start), Day(end)
	return func(yield func(time.Time) bool) {
		for d := from; !d.After(to); d = nextDay(d) {
			if !yield(d) {
				return
			}
		}
	}
}

// Calendar 迭代日历：计划日判断、迭代天数
type Calendar struct {
	start          time.Time
	end            time.Time
	ignoreWeekends bool
	excluded       map[string]struct{}
}

// NewCalendar 由迭代与排除日构建日历
func NewCalendar(sprint schema.Sprint, excludeDays []schema.SprintExcludeDay) Calendar {
	excluded := make(map[string]struct{}, len(excludeDays))
	for _, d := range excludeDays {
		excluded[dayKey(d.Day)] = struct{}{}
	}
	return Calendar{
		start:          Day(sprint.DateStart),
		end:            Day(sprint.DateEnd),
		ignoreWeekends: sprint.IgnoreWeekends,
		excluded:       excluded,
	}
}

func (c Calendar) Start() time.Time { return c.start }
func (c Calendar) End() time.Time   { return c.end }

// DayAfterEnd 理想线最终点所在日
func (c Calendar) DayAfterEnd() time.Time {
	return nextDay(c.end)
}

// Days 遍历迭代的全部日历日
func (c Calendar) Days() iter.Seq[time.Time] {
	return Days(c.start, c.end)
}

// IsWeekend ISO 周六/周日
func IsWeekend(t time.Time) bool {
	wd := Day(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsExcluded 是否为手工排除日
func (c Calendar) IsExcluded(t time.Time) bool {
	_, ok := c.excluded[dayKey(t)]
	return ok
}

// IsPlannedDay 计划日：非（忽略周末时的）周末，且不是排除日
func (c Calendar) IsPlannedDay(t time.Time) bool {
	if c.ignoreWeekends && IsWeekend(t) {
		return false
	}
	return !c.IsExcluded(t)
}

// DurationDays 迭代天数。
// 注意：排除日不会减少该值，只影响燃尽图里的计划日判定。
func (c Calendar) DurationDays() int {
	n := 0
	for d := range c.Days() {
		if c.ignoreWeekends && IsWeekend(d) {
			continue
		}
		n++
	}
	return n
}

// PlannedDays 迭代内全部计划日（升序）
func (c Calendar) PlannedDays() []time.Time {
	var out []time.Time
	for d := range c.Days() {
		if c.IsPlannedDay(d) {
			out = append(out, d)
		}
	}
	return out
}
