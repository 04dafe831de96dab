package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/taskboard/internal/schema"
	"gorm.io/gorm"
)

// SprintRepository 迭代仓储
type SprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository 创建迭代仓储
func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

// GetByID 按 ID 查询迭代，不存在时返回 nil, nil
func (r *SprintRepository) GetByID(ctx context.Context, id int64) (*schema.Sprint, error) {
	var sprint schema.Sprint
	if err := r.db.WithContext(ctx).First(&sprint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询迭代失败: %w", err)
	}
	return &sprint, nil
}

// List 按开始日期倒序列出迭代
func (r *SprintRepository) List(ctx context.Context, limit int) ([]schema.Sprint, error) {
	if limit <= 0 {
		limit = 50
	}
	var sprints []schema.Sprint
	err := r.db.WithContext(ctx).
		Order("date_start DESC, id DESC").
		Limit(limit).
		Find(&sprints).Error
	if err != nil {
		return nil, fmt.Errorf("列出迭代失败: %w", err)
	}
	return sprints, nil
}

// GetExcludeDays 查询迭代的排除日（按日期升序）
func (r *SprintRepository) GetExcludeDays(ctx context.Context, sprintID int64) ([]schema.SprintExcludeDay, error) {
	var days []schema.SprintExcludeDay
	err := r.db.WithContext(ctx).
		Where("sprint_id = ?", sprintID).
		Order("day ASC").
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("查询排除日失败: %w", err)
	}
	return days, nil
}
