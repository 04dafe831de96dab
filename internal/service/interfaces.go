package service

import (
	"context"

	"github.com/yuqie6/taskboard/internal/schema"
)

// 仓储的最小接口集合（ISP），统计流水线只依赖只读能力

type SprintRepository interface {
	GetByID(ctx context.Context, id int64) (*schema.Sprint, error)
	GetExcludeDays(ctx context.Context, sprintID int64) ([]schema.SprintExcludeDay, error)
	List(ctx context.Context, limit int) ([]schema.Sprint, error)
}

type StoryRepository interface {
	GetBySprint(ctx context.Context, sprintID int64) ([]schema.Story, error)
}

type TaskRepository interface {
	GetByStoryIDs(ctx context.Context, storyIDs []int64) ([]schema.Task, error)
}

type PhaseRepository interface {
	GetByProject(ctx context.Context, projectID int64) ([]schema.Phase, error)
}

type PhaseDurationRepository interface {
	SumDuration(ctx context.Context, phaseID, sprintID int64) (int64, error)
}

type TaskTypeRepository interface {
	GetAll(ctx context.Context) ([]schema.TaskType, error)
}

type SnapshotRepository interface {
	Save(ctx context.Context, snap *schema.Snapshot) (int64, error)
}
