package schema

import (
	"fmt"
	"time"
)

// Sprint 迭代
// 日期字段只关心日历日（UTC），时分秒忽略。
type Sprint struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID      int64     `gorm:"index;not null" json:"project_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	DateStart      time.Time `gorm:"not null" json:"date_start"`
	DateEnd        time.Time `gorm:"not null" json:"date_end"`
	IgnoreWeekends bool      `gorm:"default:false" json:"ignore_weekends"` // 周末不计入计划日
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Sprint) TableName() string {
	return "sprints"
}

// Validate 校验迭代日期区间
func (s Sprint) Validate() error {
	if s.DateStart.IsZero() || s.DateEnd.IsZero() {
		return fmt.Errorf("迭代 %d 缺少起止日期", s.ID)
	}
	if s.DateEnd.Before(s.DateStart) {
		return fmt.Errorf("迭代 %d 结束日期早于开始日期", s.ID)
	}
	return nil
}

// SprintExcludeDay 迭代内手工排除的日期（与周末规则无关）
type SprintExcludeDay struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SprintID  int64     `gorm:"index;not null" json:"sprint_id"`
	Day       time.Time `gorm:"not null" json:"day"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SprintExcludeDay) TableName() string {
	return "sprint_exclude_days"
}
