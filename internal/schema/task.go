package schema

import "time"

// Task 任务，必属于一个故事
type Task struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	StoryID   int64      `gorm:"index;not null" json:"story_id"`
	TypeID    int64      `gorm:"index" json:"type_id"`
	PhaseID   int64      `gorm:"index" json:"phase_id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	IsDone    bool       `gorm:"default:false" json:"is_done"`
	TimeEnd   *time.Time `json:"time_end"` // 完成时间
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// DoneAt 返回完成时间；未完成或缺少完成时间时 ok=false
func (t Task) DoneAt() (time.Time, bool) {
	if !t.IsDone || t.TimeEnd == nil || t.TimeEnd.IsZero() {
		return time.Time{}, false
	}
	return *t.TimeEnd, true
}

// TaskType 任务类型（饼图按类型拆分）
type TaskType struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"size:100;not null" json:"title"`
	ChartColor string `gorm:"size:20" json:"chart_color"`
}

func (TaskType) TableName() string {
	return "task_types"
}
