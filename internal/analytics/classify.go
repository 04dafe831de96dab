package analytics

import (
	"sort"

	"github.com/yuqie6/taskboard/internal/schema"
)

const unknownTypeName = "Unknown"

// TaskSplit 迭代开始时已存在的任务数，以及开始后新增的任务（范围蔓延）
type TaskSplit struct {
	InitTasks int
	Added     []schema.Task // 按创建时间升序
}

// BurndownTasks 过滤掉 IgnoreInBurnDownChart 故事的任务
func BurndownTasks(stories []schema.Story, tasks []schema.Task) []schema.Task {
	included := make(map[int64]struct{}, len(stories))
	for _, s := range stories {
		if !s.IgnoreInBurnDownChart {
			included[s.ID] = struct{}{}
		}
	}

	out := make([]schema.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := included[t.StoryID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ClassifyTasks 区分初始任务与新增任务：
// 故事未开始时其任务全部计入初始；已开始时 CreatedAt <= TimeStart 的计入初始，其余为新增。
func ClassifyTasks(stories []schema.Story, tasks []schema.Task) TaskSplit {
	byStory := make(map[int64][]schema.Task, len(stories))
	for _, t := range tasks {
		byStory[t.StoryID] = append(byStory[t.StoryID], t)
	}

	var split TaskSplit
	for _, s := range stories {
		storyTasks := byStory[s.ID]
		if !s.Started() {
			split.InitTasks += len(storyTasks)
			continue
		}
		for _, t := range storyTasks {
			if t.CreatedAt.After(*s.TimeStart) {
				split.Added = append(split.Added, t)
			} else {
				split.InitTasks++
			}
		}
	}

	sort.SliceStable(split.Added, func(i, j int) bool {
		return split.Added[i].CreatedAt.Before(split.Added[j].CreatedAt)
	})
	return split
}

// TypeSlice 任务类型饼图切片
type TypeSlice struct {
	TypeID int64   `json:"type_id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Y      float64 `json:"y"` // 占全部任务的百分比
	Count  int     `json:"count"`
}

// TaskTypeBreakdown 按类型分组统计任务，按类型 ID 升序输出。
// 未知类型以 "Unknown" 输出而不是报错。
func TaskTypeBreakdown(tasks []schema.Task, types []schema.TaskType) []TypeSlice {
	out := []TypeSlice{}
	if len(tasks) == 0 {
		return out
	}

	counts := make(map[int64]int)
	for _, t := range tasks {
		counts[t.TypeID]++
	}

	known := make(map[int64]schema.TaskType, len(types))
	for _, tt := range types {
		known[tt.ID] = tt
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		count := counts[id]
		slice := TypeSlice{
			TypeID: id,
			Name:   unknownTypeName,
			Y:      float64(count) / float64(len(tasks)) * 100,
			Count:  count,
		}
		if tt, ok := known[id]; ok {
			slice.Name = tt.Title
			slice.Color = tt.ChartColor
		}
		out = append(out, slice)
	}
	return out
}
