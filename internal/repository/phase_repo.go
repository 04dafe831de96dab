package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/taskboard/internal/schema"
	"gorm.io/gorm"
)

// PhaseRepository 阶段仓储
type PhaseRepository struct {
	db *gorm.DB
}

// NewPhaseRepository 创建阶段仓储
func NewPhaseRepository(db *gorm.DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// GetByProject 按看板顺序查询项目阶段
func (r *PhaseRepository) GetByProject(ctx context.Context, projectID int64) ([]schema.Phase, error) {
	var phases []schema.Phase
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("order_index ASC, id ASC").
		Find(&phases).Error
	if err != nil {
		return nil, fmt.Errorf("查询阶段失败: %w", err)
	}
	return phases, nil
}

// PhaseDurationRepository 阶段耗时仓储
type PhaseDurationRepository struct {
	db *gorm.DB
}

// NewPhaseDurationRepository 创建阶段耗时仓储
func NewPhaseDurationRepository(db *gorm.DB) *PhaseDurationRepository {
	return &PhaseDurationRepository{db: db}
}

// SumDuration 某阶段在迭代内的累计耗时（秒），无记录时为 0
func (r *PhaseDurationRepository) SumDuration(ctx context.Context, phaseID, sprintID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&schema.PhaseDuration{}).
		Select("COALESCE(SUM(duration), 0)").
		Where("phase_id = ? AND sprint_id = ?", phaseID, sprintID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("汇总阶段耗时失败: %w", err)
	}
	return total, nil
}
