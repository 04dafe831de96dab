package schema

// Snapshot 一次导入的完整数据集（不落表）
// 各记录的 ID 只用于互相引用，入库时会重新分配。
type Snapshot struct {
	Sprint         Sprint
	ExcludeDays    []SprintExcludeDay
	TaskTypes      []TaskType
	Phases         []Phase
	Stories        []Story
	Tasks          []Task
	PhaseDurations []PhaseDuration
}
