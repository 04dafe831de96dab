package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/taskboard/internal/schema"
	"gorm.io/gorm"
)

// StoryRepository 故事仓储
type StoryRepository struct {
	db *gorm.DB
}

// NewStoryRepository 创建故事仓储
func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// GetBySprint 查询迭代内全部故事
func (r *StoryRepository) GetBySprint(ctx context.Context, sprintID int64) ([]schema.Story, error) {
	var stories []schema.Story
	err := r.db.WithContext(ctx).
		Where("sprint_id = ?", sprintID).
		Order("id ASC").
		Find(&stories).Error
	if err != nil {
		return nil, fmt.Errorf("查询故事失败: %w", err)
	}
	return stories, nil
}
