package schema

import "time"

// Phase 项目看板阶段；Order=0 为首个（收集）阶段
type Phase struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID       int64  `gorm:"index;not null" json:"project_id"`
	Order           int    `gorm:"column:order_index;not null;default:0" json:"order"`
	Title           string `gorm:"size:100;not null" json:"title"`
	BackgroundColor string `gorm:"size:20" json:"background_color"`
}

func (Phase) TableName() string {
	return "phases"
}

// IsFirst 是否为首个阶段（不参与"去首阶段"占比）
func (p Phase) IsFirst() bool {
	return p.Order == 0
}

// PhaseDuration 任务在某阶段停留的一段区间
// 数据量级：每次任务移动一行
type PhaseDuration struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID        int64      `gorm:"index" json:"project_id"`
	SprintID         int64      `gorm:"index:idx_phase_duration_sprint_phase,priority:1" json:"sprint_id"`
	PhaseID          int64      `gorm:"index:idx_phase_duration_sprint_phase,priority:2" json:"phase_id"`
	StoryID          int64      `gorm:"index" json:"story_id"`
	TaskID           int64      `gorm:"index" json:"task_id"`
	TimeStart        *time.Time `json:"time_start"`
	TimeEnd          *time.Time `json:"time_end"`
	Duration         int64      `gorm:"not null;default:0" json:"duration"`          // 绝对时长（秒）
	DurationRelative int64      `gorm:"not null;default:0" json:"duration_relative"` // 去掉周末等之后的时长（秒）
	Open             bool       `gorm:"not null;default:false" json:"open"` // 任务仍停留在该阶段
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (PhaseDuration) TableName() string {
	return "phase_durations"
}
