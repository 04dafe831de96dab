// Package analytics 迭代统计与燃尽图计算。
//
// 纯计算：输入是调用方已取回的只读快照加一个时钟，不做任何 I/O，
// 可对不同迭代并发调用。
package analytics

import (
	"fmt"
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
)

// Input 一次计算所需的完整快照
type Input struct {
	Sprint      schema.Sprint
	ExcludeDays []schema.SprintExcludeDay
	Stories     []schema.Story
	Tasks       []schema.Task // 迭代内全部故事的任务
	Phases      []schema.Phase
	PhaseSums   map[int64]int64 // 阶段 ID -> 该迭代内累计耗时（秒）
	Types       []schema.TaskType
	Now         time.Time
}

// SprintAnalytics 迭代统计结果（可直接 JSON 序列化给渲染端）
type SprintAnalytics struct {
	Sprint               schema.Sprint   `json:"sprint"`
	SprintStats          SprintStats     `json:"sprint_stats"`
	Stories              []StoryProgress `json:"stories"`
	PhaseDurations       PhaseDurations  `json:"phase_durations"`
	ChartData            []ChartSeries   `json:"chart_data"`
	ChartDataPhases      []PhaseSlice    `json:"chart_data_phases"`
	ChartDataPhasesTotal []PhaseSlice    `json:"chart_data_phases_total"`
	ChartDataTaskTypes   []TypeSlice     `json:"chart_data_task_types"`
	Statistics           Statistics      `json:"statistics"`
	InitTasks            int             `json:"init_tasks"`
	TasksOverCount       int             `json:"tasks_over_count"`
	PointStart           int64           `json:"point_start"`
	PointActual          int64           `json:"point_actual"`

	// Burndown 保留类型化序列，供报表等内部使用
	Burndown Burndown `json:"-"`
}

// Compute 计算迭代统计。各阶段只读取上一阶段的产物，互不共享可变状态。
func Compute(in Input) (*SprintAnalytics, error) {
	if err := in.Sprint.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	cal := NewCalendar(in.Sprint, in.ExcludeDays)
	stats, stories := Progress(in.Stories, in.Tasks)
	phases := AggregatePhaseDurations(in.Phases, in.PhaseSums)

	chartTasks := BurndownTasks(in.Stories, in.Tasks)
	split := ClassifyTasks(in.Stories, chartTasks)

	burndown, err := BuildBurndown(BurndownInput{
		Calendar:  cal,
		InitTasks: split.InitTasks,
		Tasks:     chartTasks,
		Added:     split.Added,
		Now:       in.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("迭代 %d 燃尽图计算失败: %w", in.Sprint.ID, err)
	}

	pointActual := Timestamp(cal.Start())
	if n := len(burndown.Actual); n > 0 {
		pointActual = burndown.Actual[n-1].X
	}

	return &SprintAnalytics{
		Sprint:               in.Sprint,
		SprintStats:          stats,
		Stories:              stories,
		PhaseDurations:       phases,
		ChartData:            burndown.Series(),
		ChartDataPhases:      phases.Slices(),
		ChartDataPhasesTotal: phases.TotalSlices(),
		ChartDataTaskTypes:   TaskTypeBreakdown(chartTasks, in.Types),
		Statistics:           burndown.Statistics,
		InitTasks:            split.InitTasks,
		TasksOverCount:       len(split.Added),
		PointStart:           Timestamp(cal.Start()),
		PointActual:          pointActual,
		Burndown:             burndown,
	}, nil
}
