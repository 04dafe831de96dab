package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuqie6/taskboard/internal/schema"
)

func TestIdealLineLinearDecay(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), true), nil)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 10, Now: date(2024, 3, 1)})
	require.NoError(t, err)

	require.Len(t, b.Ideal, 6)
	assert.Equal(t, []float64{10, 7.5, 5, 2.5, 0}, ys(b.Ideal[:5]))
	assert.InDelta(t, 2.5, b.Statistics.TasksPerDayIdeal, 1e-9)
	assert.Equal(t, 5, b.Statistics.SprintDays)

	last := b.Ideal[len(b.Ideal)-1]
	assert.Zero(t, last.Y)
	assert.Equal(t, ts(date(2024, 3, 9)), last.X)
	assert.Equal(t, ts(date(2024, 3, 8)), last.PreviousX)

	assert.Equal(t, ts(date(2024, 3, 4)), b.Ideal[0].PreviousX)
	for i := 1; i < len(b.Ideal); i++ {
		assert.Equal(t, b.Ideal[i-1].X, b.Ideal[i].PreviousX)
	}
}

func TestIdealLineSkipsWeekendsAndExcludeDays(t *testing.T) {
	excluded := []schema.SprintExcludeDay{{Day: date(2024, 3, 12)}}
	cal := NewCalendar(sprint(date(2024, 3, 7), date(2024, 3, 13), true), excluded)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 6, Now: date(2024, 3, 1)})
	require.NoError(t, err)

	// 计划日：周四、周五、周一、周三
	assert.Equal(t, []int64{
		ts(date(2024, 3, 7)), ts(date(2024, 3, 8)), ts(date(2024, 3, 11)), ts(date(2024, 3, 13)), ts(date(2024, 3, 14)),
	}, xs(b.Ideal))
	assert.Equal(t, []float64{6, 4, 2, 0, 0}, ys(b.Ideal))
	assert.Equal(t, ts(date(2024, 3, 8)), b.Ideal[2].PreviousX, "segment spans the weekend")
	assert.Equal(t, 4, b.Statistics.SprintDays)
}

func TestIdealLineSinglePlannedDay(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 4), false), nil)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 3, Now: date(2024, 3, 1)})
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 0}, ys(b.Ideal))
	assert.InDelta(t, 3, b.Statistics.TasksPerDayIdeal, 1e-9)
}

func TestIdealLineWithoutTasks(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), true), nil)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, Now: date(2024, 3, 20)})
	require.NoError(t, err)

	require.Len(t, b.Ideal, 1)
	assert.Zero(t, b.Ideal[0].Y)
	assert.Zero(t, b.Statistics.TasksPerDayIdeal)
	assert.Empty(t, b.Done)
	assert.Empty(t, b.Added)
}

func TestIdealLineNoPlannedDays(t *testing.T) {
	excluded := []schema.SprintExcludeDay{{Day: date(2024, 3, 4)}}
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 4), false), excluded)

	_, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 2, Now: date(2024, 3, 5)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComputation))
}

func TestActualLineWeekendActivityIsShown(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 15), true), nil)
	tasks := []schema.Task{
		{ID: 1, IsDone: true, TimeEnd: ptr(at(2024, 3, 9, 14))}, // 周六完成
		{ID: 2, IsDone: true, TimeEnd: ptr(at(2024, 3, 5, 10))},
		{ID: 3},
	}

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 3, Tasks: tasks, Now: date(2024, 3, 15)})
	require.NoError(t, err)

	assert.Equal(t, []Sample{{ts(date(2024, 3, 5)), 1}, {ts(date(2024, 3, 9)), 1}}, b.Done)

	var saturday *Point
	for i := range b.Actual {
		if b.Actual[i].X == ts(date(2024, 3, 9)) {
			saturday = &b.Actual[i]
		}
		assert.NotEqual(t, ts(date(2024, 3, 10)), b.Actual[i].X, "idle sunday is skipped")
	}
	require.NotNil(t, saturday)
	assert.True(t, saturday.NotPlannedDay)
	assert.Equal(t, float64(1), saturday.Y)
	assert.Equal(t, ts(date(2024, 3, 8)), saturday.PreviousX)

	// 10 个工作日 + 周六
	assert.Equal(t, 11, b.Statistics.WorkDays)
	assert.InDelta(t, 2.0/11.0, b.Statistics.TasksPerDayActual, 1e-9)
}

func TestActualLineAddedTasksRaiseRemaining(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), false), nil)
	added := []schema.Task{{ID: 9, CreatedAt: at(2024, 3, 6, 11)}}
	tasks := append([]schema.Task{{ID: 1, IsDone: true, TimeEnd: ptr(at(2024, 3, 5, 9))}}, added...)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 2, Tasks: tasks, Added: added, Now: date(2024, 3, 8)})
	require.NoError(t, err)

	// 初始点 + 周一至周五
	assert.Equal(t, []float64{2, 2, 1, 2, 2, 2}, ys(b.Actual))
	assert.Equal(t, []Sample{{ts(date(2024, 3, 6)), 1}}, b.Added)
	for _, p := range b.Actual {
		assert.False(t, p.NotPlannedDay)
	}
}

func TestActualLineStopsAtToday(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 15), false), nil)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 4, Now: at(2024, 3, 6, 17)})
	require.NoError(t, err)

	// 初始点 + 4、5、6 日
	require.Len(t, b.Actual, 4)
	assert.Equal(t, ts(date(2024, 3, 6)), b.Actual[3].X)
	assert.Equal(t, 3, b.Statistics.WorkDays)
}

func TestActualLineFutureSprint(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), false), nil)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 4, Now: date(2024, 2, 20)})
	require.NoError(t, err)

	require.Len(t, b.Actual, 1)
	assert.Equal(t, float64(4), b.Actual[0].Y)
	assert.Zero(t, b.Statistics.WorkDays)
	assert.Zero(t, b.Statistics.TasksPerDayActual)
}

func TestActualLineOverrun(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), false), nil)
	tasks := []schema.Task{
		{ID: 1, IsDone: true, TimeEnd: ptr(at(2024, 3, 5, 9))},
		{ID: 2, IsDone: true, TimeEnd: ptr(at(2024, 3, 11, 9))},
		{ID: 3, IsDone: true, TimeEnd: ptr(at(2024, 3, 13, 9))},
	}

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 3, Tasks: tasks, Now: date(2024, 3, 20)})
	require.NoError(t, err)

	end := ts(date(2024, 3, 8))
	var overrun []Point
	for _, p := range b.Actual {
		if p.X > end {
			overrun = append(overrun, p)
		}
	}

	require.Len(t, overrun, 5, "9th through 13th, stopping once remaining hits zero")
	for _, p := range overrun {
		assert.True(t, p.NotPlannedDay)
	}
	assert.Equal(t, []float64{2, 2, 1, 1, 0}, ys(overrun))
	assert.Equal(t, ts(date(2024, 3, 13)), b.Actual[len(b.Actual)-1].X)
	assert.Equal(t, 10, b.Statistics.WorkDays)
	assert.InDelta(t, 0.3, b.Statistics.TasksPerDayActual, 1e-9)
}

func TestActualLineOverrunStopsAtToday(t *testing.T) {
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), true), nil)

	b, err := BuildBurndown(BurndownInput{Calendar: cal, InitTasks: 2, Now: at(2024, 3, 12, 8)})
	require.NoError(t, err)

	last := b.Actual[len(b.Actual)-1]
	assert.Equal(t, ts(date(2024, 3, 12)), last.X)
	assert.True(t, last.NotPlannedDay)
	assert.Equal(t, float64(2), last.Y)
	// 超期的周末无活动，不输出
	for _, p := range b.Actual {
		assert.NotEqual(t, ts(date(2024, 3, 9)), p.X)
	}
}

func TestBurndownSeries(t *testing.T) {
	series := Burndown{}.Series()
	require.Len(t, series, 4)
	assert.Equal(t, "Ideal", series[0].Name)
	assert.Equal(t, "Dash", series[0].DashStyle)
	assert.Equal(t, "Actual", series[1].Name)
	assert.Equal(t, "column", series[2].Type)
	assert.Equal(t, "Added", series[3].Name)
}
