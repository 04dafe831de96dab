package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
)

// Point 燃尽线上的一个点
// PreviousX 指向上一个输出点，渲染端据此跨过被跳过的日期连线。
type Point struct {
	X             int64   `json:"x"`
	Y             float64 `json:"y"`
	PreviousX     int64   `json:"previous_x"`
	NotPlannedDay bool    `json:"not_planned_day"`
}

// Sample 柱状图采样 [timestamp, count]
type Sample [2]int64

// Statistics 燃尽派生统计
type Statistics struct {
	SprintDays        int     `json:"sprint_days"`
	WorkDays          int     `json:"work_days"`
	TasksPerDayIdeal  float64 `json:"tasks_per_day_ideal"`
	TasksPerDayActual float64 `json:"tasks_per_day_actual"`
}

// BurndownInput 燃尽图计算输入
type BurndownInput struct {
	Calendar  Calendar
	InitTasks int
	Tasks     []schema.Task // 参与燃尽的全部任务
	Added     []schema.Task // 开始后新增的任务
	Now       time.Time
}

// Burndown 燃尽图各序列
type Burndown struct {
	Ideal      []Point    `json:"ideal"`
	Actual     []Point    `json:"actual"`
	Done       []Sample   `json:"done"`
	Added      []Sample   `json:"added"`
	Statistics Statistics `json:"statistics"`
}

// BuildBurndown 单次从左到右扫描日历生成燃尽图
func BuildBurndown(in BurndownInput) (Burndown, error) {
	doneByDay := countDoneByDay(in.Tasks)
	addedByDay := countByDay(in.Added, func(t schema.Task) time.Time { return t.CreatedAt })

	ideal, tasksPerDay, sprintDays, err := idealLine(in.Calendar, in.InitTasks)
	if err != nil {
		return Burndown{}, err
	}

	actual, workDays := actualLine(in.Calendar, in.InitTasks, doneByDay, addedByDay, in.Now)

	doneCount := 0
	for _, t := range in.Tasks {
		if t.IsDone {
			doneCount++
		}
	}

	stats := Statistics{
		SprintDays:       sprintDays,
		WorkDays:         workDays,
		TasksPerDayIdeal: tasksPerDay,
	}
	if workDays > 0 {
		stats.TasksPerDayActual = float64(doneCount) / float64(workDays)
	}

	return Burndown{
		Ideal:      ideal,
		Actual:     actual,
		Done:       samples(doneByDay),
		Added:      samples(addedByDay),
		Statistics: stats,
	}, nil
}

// idealLine 理想线：从 initTasks 线性下降，只在计划日取点，最后一个点固定为 (end+1, 0)
func idealLine(cal Calendar, initTasks int) ([]Point, float64, int, error) {
	planned := cal.PlannedDays()
	n := len(planned)
	final := Timestamp(cal.DayAfterEnd())
	prev := Timestamp(cal.Start())

	if initTasks == 0 {
		return []Point{{X: final, Y: 0, PreviousX: prev}}, 0, n, nil
	}
	if n == 0 {
		return nil, 0, 0, fmt.Errorf("%w: 迭代没有计划日但有 %d 个任务", ErrComputation, initTasks)
	}

	tasksPerDay := float64(initTasks)
	if n > 1 {
		tasksPerDay = float64(initTasks) / float64(n-1)
	}

	out := make([]Point, 0, n+1)
	for i, d := range planned {
		y := float64(initTasks)
		if n > 1 {
			// 按比例计算，避免累减的浮点误差
			y = float64(initTasks) * float64(n-1-i) / float64(n-1)
		}
		x := Timestamp(d)
		out = append(out, Point{X: x, Y: y, PreviousX: prev})
		prev = x
	}
	out = append(out, Point{X: final, Y: 0, PreviousX: prev})

	return out, tasksPerDay, n, nil
}

// actualLine 实际线：
//   - 从迭代开始扫描到 min(今天, 结束日)；
//   - 计划日或当天有完成/新增的日子才输出，非计划日被活动"点亮"时标记 NotPlannedDay；
//   - 扫描结束仍有剩余任务时继续向后扫描到今天（超期部分），超期点全部标记 NotPlannedDay，剩余归零即停。
func actualLine(cal Calendar, initTasks int, doneByDay, addedByDay map[string]int, now time.Time) ([]Point, int) {
	today := Day(now)
	start := cal.Start()
	remaining := initTasks
	workDays := 0

	out := []Point{{
		X:             Timestamp(start),
		Y:             float64(remaining),
		PreviousX:     Timestamp(start),
		NotPlannedDay: !cal.IsPlannedDay(start),
	}}
	lastX := Timestamp(start)

	step := func(d time.Time, overrun bool) {
		key := dayKey(d)
		done, added := doneByDay[key], addedByDay[key]
		planned := cal.IsPlannedDay(d)
		if !planned && done == 0 && added == 0 {
			return
		}

		remaining = remaining - done + added
		x := Timestamp(d)
		out = append(out, Point{
			X:             x,
			Y:             float64(remaining),
			PreviousX:     lastX,
			NotPlannedDay: overrun || !planned,
		})
		lastX = x
		workDays++
	}

	limit := cal.End()
	if today.Before(limit) {
		limit = today
	}
	for d := range Days(start, limit) {
		step(d, false)
	}

	if remaining > 0 {
		for d := cal.DayAfterEnd(); remaining > 0 && !d.After(today); d = nextDay(d) {
			step(d, true)
		}
	}

	return out, workDays
}

func countDoneByDay(tasks []schema.Task) map[string]int {
	out := make(map[string]int)
	for _, t := range tasks {
		if at, ok := t.DoneAt(); ok {
			out[dayKey(at)]++
		}
	}
	return out
}

func countByDay(tasks []schema.Task, at func(schema.Task) time.Time) map[string]int {
	out := make(map[string]int)
	for _, t := range tasks {
		out[dayKey(at(t))]++
	}
	return out
}

// samples 稀疏采样，不补零，按日期升序
func samples(byDay map[string]int) []Sample {
	out := make([]Sample, 0, len(byDay))
	for key, count := range byDay {
		d, err := time.Parse(dayLayout, key)
		if err != nil {
			continue
		}
		out = append(out, Sample{d.UnixMilli(), int64(count)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// ChartSeries 图表序列（含渲染元信息）
type ChartSeries struct {
	Name      string `json:"name"`
	NameShort string `json:"name_short"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	DashStyle string `json:"dash_style,omitempty"`
	ZIndex    int    `json:"z_index"`
	Data      any    `json:"data"`
}

// Series 转换为渲染端使用的四条序列：理想、实际、完成、新增
func (b Burndown) Series() []ChartSeries {
	return []ChartSeries{
		{Name: "Ideal", NameShort: "Ideal", Type: "spline", Color: "#3276b1", DashStyle: "Dash", ZIndex: 10, Data: b.Ideal},
		{Name: "Actual", NameShort: "Actual", Type: "spline", Color: "#c9302c", ZIndex: 20, Data: b.Actual},
		{Name: "Done", NameShort: "Done", Type: "column", Color: "#47a447", ZIndex: 5, Data: b.Done},
		{Name: "Added", NameShort: "Added", Type: "column", Color: "#ec971f", ZIndex: 0, Data: b.Added},
	}
}
