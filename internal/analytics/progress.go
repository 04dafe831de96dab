package analytics

import (
	"math"

	"github.com/yuqie6/taskboard/internal/schema"
)

// SprintStats 迭代完成度统计
type SprintStats struct {
	ProgressStory   int `json:"progress_story"`
	ProgressTask    int `json:"progress_task"`
	CntStoryDone    int `json:"cnt_story_done"`
	CntStoryNotDone int `json:"cnt_story_not_done"`
	CntStoryTotal   int `json:"cnt_story_total"`
	CntTaskDone     int `json:"cnt_task_done"`
	CntTaskNotDone  int `json:"cnt_task_not_done"`
	CntTaskTotal    int `json:"cnt_task_total"`
}

// StoryProgress 单个故事的任务完成度
type StoryProgress struct {
	StoryID   int64  `json:"story_id"`
	Title     string `json:"title"`
	IsDone    bool   `json:"is_done"`
	TaskCount int    `json:"task_count"`
	DoneTasks int    `json:"done_tasks"`
	Progress  int    `json:"progress"`
}

// progressPercent 四舍五入的完成百分比；done 为 0 时直接为 0
func progressPercent(done, total int) int {
	if done <= 0 || total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// Progress 计算迭代与各故事的完成度。不属于任何给定故事的任务被忽略。
func Progress(stories []schema.Story, tasks []schema.Task) (SprintStats, []StoryProgress) {
	byStory := make(map[int64][]schema.Task, len(stories))
	for _, t := range tasks {
		byStory[t.StoryID] = append(byStory[t.StoryID], t)
	}

	var stats SprintStats
	perStory := make([]StoryProgress, 0, len(stories))

	for _, s := range stories {
		stats.CntStoryTotal++
		if s.IsDone {
			stats.CntStoryDone++
		}

		storyTasks := byStory[s.ID]
		done := 0
		for _, t := range storyTasks {
			if t.IsDone {
				done++
			}
		}

		stats.CntTaskTotal += len(storyTasks)
		stats.CntTaskDone += done

		perStory = append(perStory, StoryProgress{
			StoryID:   s.ID,
			Title:     s.Title,
			IsDone:    s.IsDone,
			TaskCount: len(storyTasks),
			DoneTasks: done,
			Progress:  progressPercent(done, len(storyTasks)),
		})
	}

	stats.CntStoryNotDone = stats.CntStoryTotal - stats.CntStoryDone
	stats.CntTaskNotDone = stats.CntTaskTotal - stats.CntTaskDone
	stats.ProgressStory = progressPercent(stats.CntStoryDone, stats.CntStoryTotal)
	stats.ProgressTask = progressPercent(stats.CntTaskDone, stats.CntTaskTotal)

	return stats, perStory
}
