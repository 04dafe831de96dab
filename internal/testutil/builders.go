package testutil

import (
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
)

// Day UTC 日历日零点
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// At UTC 某日某时
func At(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

// Ptr 取地址
func Ptr(t time.Time) *time.Time { return &t }

// NewSprint 工作日迭代（忽略周末）
func NewSprint(id int64, start, end time.Time) schema.Sprint {
	return schema.Sprint{
		ID:             id,
		ProjectID:      1,
		Title:          "Sprint",
		DateStart:      start,
		DateEnd:        end,
		IgnoreWeekends: true,
	}
}

// NewStory 故事；started 为零值表示未开始
func NewStory(id, sprintID int64, started time.Time) schema.Story {
	s := schema.Story{ID: id, ProjectID: 1, SprintID: sprintID, Title: "Story"}
	if !started.IsZero() {
		s.TimeStart = Ptr(started)
	}
	return s
}

// NewTask 未完成任务
func NewTask(id, storyID, typeID int64, created time.Time) schema.Task {
	return schema.Task{ID: id, StoryID: storyID, TypeID: typeID, Title: "Task", CreatedAt: created}
}

// DoneTask 已完成任务
func DoneTask(id, storyID, typeID int64, created, done time.Time) schema.Task {
	t := NewTask(id, storyID, typeID, created)
	t.IsDone = true
	t.TimeEnd = Ptr(done)
	return t
}

// DefaultPhases 三列看板，Order=0 为首阶段
func DefaultPhases() []schema.Phase {
	return []schema.Phase{
		{ID: 1, ProjectID: 1, Order: 0, Title: "Backlog", BackgroundColor: "#eeeeee"},
		{ID: 2, ProjectID: 1, Order: 1, Title: "Doing", BackgroundColor: "#f0ad4e"},
		{ID: 3, ProjectID: 1, Order: 2, Title: "Done", BackgroundColor: "#5cb85c"},
	}
}

// DefaultTaskTypes 两种任务类型
func DefaultTaskTypes() []schema.TaskType {
	return []schema.TaskType{
		{ID: 1, Title: "Feature", ChartColor: "#5cb85c"},
		{ID: 2, Title: "Bug", ChartColor: "#d9534f"},
	}
}
