package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuqie6/taskboard/internal/schema"
)

func TestClassifyTasks(t *testing.T) {
	var zero time.Time
	started := at(2024, 3, 4, 9)
	stories := []schema.Story{
		{ID: 1},                      // 未开始
		{ID: 2, TimeStart: &started}, // 已开始
		{ID: 3, TimeStart: &zero},    // 零值视同未开始
	}
	tasks := []schema.Task{
		{ID: 1, StoryID: 1, CreatedAt: at(2024, 3, 6, 9)},
		{ID: 2, StoryID: 2, CreatedAt: at(2024, 3, 1, 9)},
		{ID: 3, StoryID: 2, CreatedAt: started}, // 恰好开始时创建，算初始
		{ID: 4, StoryID: 2, CreatedAt: at(2024, 3, 7, 9)},
		{ID: 5, StoryID: 2, CreatedAt: at(2024, 3, 5, 9)},
		{ID: 6, StoryID: 3, CreatedAt: at(2024, 3, 8, 9)},
	}

	split := ClassifyTasks(stories, tasks)

	assert.Equal(t, 4, split.InitTasks)
	require.Len(t, split.Added, 2)
	assert.Equal(t, int64(5), split.Added[0].ID, "added tasks are ordered by creation time")
	assert.Equal(t, int64(4), split.Added[1].ID)
}

func TestBurndownTasksSkipsIgnoredStories(t *testing.T) {
	stories := []schema.Story{{ID: 1}, {ID: 2, IgnoreInBurnDownChart: true}}
	tasks := []schema.Task{{ID: 1, StoryID: 1}, {ID: 2, StoryID: 2}, {ID: 3, StoryID: 1}, {ID: 4, StoryID: 7}}

	got := BurndownTasks(stories, tasks)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestTaskTypeBreakdown(t *testing.T) {
	types := []schema.TaskType{
		{ID: 1, Title: "Feature", ChartColor: "#5cb85c"},
		{ID: 2, Title: "Bug", ChartColor: "#d9534f"},
	}
	tasks := []schema.Task{
		{ID: 1, TypeID: 2}, {ID: 2, TypeID: 1}, {ID: 3, TypeID: 1}, {ID: 4, TypeID: 9},
	}

	got := TaskTypeBreakdown(tasks, types)

	require.Len(t, got, 3)
	assert.Equal(t, "Feature", got[0].Name)
	assert.Equal(t, "#5cb85c", got[0].Color)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 50, got[0].Y, 1e-9)
	assert.Equal(t, "Bug", got[1].Name)
	assert.InDelta(t, 25, got[1].Y, 1e-9)
	assert.Equal(t, unknownTypeName, got[2].Name)
	assert.Empty(t, got[2].Color)

	assert.Empty(t, TaskTypeBreakdown(nil, types))
}
