package analytics

import "github.com/yuqie6/taskboard/internal/schema"

// PhaseDuration 阶段耗时及占比
type PhaseDuration struct {
	PhaseID                 int64   `json:"phase_id"`
	Title                   string  `json:"title"`
	Order                   int     `json:"order"`
	BackgroundColor         string  `json:"background_color"`
	Duration                int64   `json:"duration"`                  // 秒
	DurationPercentage      float64 `json:"duration_percentage"`       // 占"去首阶段"总时长
	DurationPercentageTotal float64 `json:"duration_percentage_total"` // 占全部总时长
}

// PhaseDurations 迭代内各阶段耗时汇总
type PhaseDurations struct {
	TotalTime        int64           `json:"total_time"`
	TotalTimeNoFirst int64           `json:"total_time_no_first"`
	Phases           []PhaseDuration `json:"phases"`
}

// PhaseSlice 阶段饼图切片
type PhaseSlice struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Y        float64 `json:"y"`
	Duration int64   `json:"duration"`
}

// AggregatePhaseDurations 按阶段汇总耗时。sums 以阶段 ID 为键，缺失视为 0。
// 总时长为 0 时所有占比为 0。
func AggregatePhaseDurations(phases []schema.Phase, sums map[int64]int64) PhaseDurations {
	out := PhaseDurations{Phases: make([]PhaseDuration, 0, len(phases))}

	for _, p := range phases {
		d := sums[p.ID]
		out.TotalTime += d
		if !p.IsFirst() {
			out.TotalTimeNoFirst += d
		}
	}

	for _, p := range phases {
		d := sums[p.ID]
		pd := PhaseDuration{
			PhaseID:         p.ID,
			Title:           p.Title,
			Order:           p.Order,
			BackgroundColor: p.BackgroundColor,
			Duration:        d,
		}
		if d > 0 && !p.IsFirst() && out.TotalTimeNoFirst > 0 {
			pd.DurationPercentage = float64(d) / float64(out.TotalTimeNoFirst) * 100
		}
		if d > 0 && out.TotalTime > 0 {
			pd.DurationPercentageTotal = float64(d) / float64(out.TotalTime) * 100
		}
		out.Phases = append(out.Phases, pd)
	}

	return out
}

// Slices 去首阶段占比的饼图数据，仅包含占比 > 0 的阶段
func (p PhaseDurations) Slices() []PhaseSlice {
	out := []PhaseSlice{}
	for _, ph := range p.Phases {
		if ph.DurationPercentage > 0 {
			out = append(out, PhaseSlice{Name: ph.Title, Color: ph.BackgroundColor, Y: ph.DurationPercentage, Duration: ph.Duration})
		}
	}
	return out
}

// TotalSlices 全部阶段占比的饼图数据
func (p PhaseDurations) TotalSlices() []PhaseSlice {
	out := []PhaseSlice{}
	for _, ph := range p.Phases {
		if ph.DurationPercentageTotal > 0 {
			out = append(out, PhaseSlice{Name: ph.Title, Color: ph.BackgroundColor, Y: ph.DurationPercentageTotal, Duration: ph.Duration})
		}
	}
	return out
}
