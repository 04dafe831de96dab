package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/taskboard/internal/schema"
	"gorm.io/gorm"
)

// TaskRepository 任务仓储
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository 创建任务仓储
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// GetByStoryIDs 查询多个故事下的任务
func (r *TaskRepository) GetByStoryIDs(ctx context.Context, storyIDs []int64) ([]schema.Task, error) {
	if len(storyIDs) == 0 {
		return []schema.Task{}, nil
	}

	var tasks []schema.Task
	err := r.db.WithContext(ctx).
		Where("story_id IN ?", storyIDs).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("查询任务失败: %w", err)
	}
	return tasks, nil
}

// TaskTypeRepository 任务类型仓储
type TaskTypeRepository struct {
	db *gorm.DB
}

// NewTaskTypeRepository 创建任务类型仓储
func NewTaskTypeRepository(db *gorm.DB) *TaskTypeRepository {
	return &TaskTypeRepository{db: db}
}

// GetAll 全部任务类型
func (r *TaskTypeRepository) GetAll(ctx context.Context) ([]schema.TaskType, error) {
	var types []schema.TaskType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("查询任务类型失败: %w", err)
	}
	return types, nil
}
