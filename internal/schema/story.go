package schema

import "time"

// Story 用户故事
type Story struct {
	ID                    int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID             int64      `gorm:"index" json:"project_id"`
	SprintID              int64      `gorm:"index" json:"sprint_id"` // 0 表示在 backlog
	Title                 string     `gorm:"size:255;not null" json:"title"`
	TimeStart             *time.Time `json:"time_start"` // 未开始为空
	IsDone                bool       `gorm:"default:false" json:"is_done"`
	IgnoreInBurnDownChart bool       `gorm:"default:false" json:"ignore_in_burn_down_chart"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Story) TableName() string {
	return "stories"
}

// Started 故事是否已开始；零值时间视同未设置
func (s Story) Started() bool {
	return s.TimeStart != nil && !s.TimeStart.IsZero()
}
