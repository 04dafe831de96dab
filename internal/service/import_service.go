package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
	"go.yaml.in/yaml/v3"
)

// ImportService 从 YAML 快照导入迭代数据
type ImportService struct {
	snapshotRepo SnapshotRepository
}

// NewImportService 创建导入服务
func NewImportService(snapshotRepo SnapshotRepository) *ImportService {
	return &ImportService{snapshotRepo: snapshotRepo}
}

// SnapshotDoc 快照文件格式
type SnapshotDoc struct {
	ProjectID      int64              `yaml:"project_id"`
	TaskTypes      []TaskTypeDoc      `yaml:"task_types"`
	Phases         []PhaseDoc         `yaml:"phases"`
	Sprint         SprintDoc          `yaml:"sprint"`
	Stories        []StoryDoc         `yaml:"stories"`
	PhaseDurations []PhaseDurationDoc `yaml:"phase_durations"`
}

type TaskTypeDoc struct {
	ID         int64  `yaml:"id"`
	Title      string `yaml:"title"`
	ChartColor string `yaml:"chart_color"`
}

type PhaseDoc struct {
	ID              int64  `yaml:"id"`
	Order           int    `yaml:"order"`
	Title           string `yaml:"title"`
	BackgroundColor string `yaml:"background_color"`
}

type SprintDoc struct {
	Title          string      `yaml:"title"`
	Description    string      `yaml:"description"`
	DateStart      time.Time   `yaml:"date_start"`
	DateEnd        time.Time   `yaml:"date_end"`
	IgnoreWeekends bool        `yaml:"ignore_weekends"`
	ExcludeDays    []time.Time `yaml:"exclude_days"`
}

type StoryDoc struct {
	ID                    int64      `yaml:"id"`
	Title                 string     `yaml:"title"`
	TimeStart             *time.Time `yaml:"time_start"`
	IsDone                bool       `yaml:"is_done"`
	IgnoreInBurnDownChart bool       `yaml:"ignore_in_burn_down_chart"`
	Tasks                 []TaskDoc  `yaml:"tasks"`
}

type TaskDoc struct {
	ID        int64      `yaml:"id"`
	Title     string     `yaml:"title"`
	TypeID    int64      `yaml:"type_id"`
	PhaseID   int64      `yaml:"phase_id"`
	CreatedAt time.Time  `yaml:"created_at"`
	IsDone    bool       `yaml:"is_done"`
	TimeEnd   *time.Time `yaml:"time_end"`
}

type PhaseDurationDoc struct {
	PhaseID          int64      `yaml:"phase_id"`
	StoryID          int64      `yaml:"story_id"`
	TaskID           int64      `yaml:"task_id"`
	TimeStart        *time.Time `yaml:"time_start"`
	TimeEnd          *time.Time `yaml:"time_end"`
	Duration         int64      `yaml:"duration"`
	DurationRelative int64      `yaml:"duration_relative"`
	Open             bool       `yaml:"open"`
}

// ImportFile 导入快照文件，返回新迭代 ID
func (s *ImportService) ImportFile(ctx context.Context, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("打开快照文件失败: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, f)
}

// Import 解析并导入快照
func (s *ImportService) Import(ctx context.Context, r io.Reader) (int64, error) {
	snap, err := DecodeSnapshot(r)
	if err != nil {
		return 0, err
	}

	id, err := s.snapshotRepo.Save(ctx, snap)
	if err != nil {
		return 0, err
	}
	slog.Info("快照导入完成", "sprint_id", id, "stories", len(snap.Stories), "tasks", len(snap.Tasks))
	return id, nil
}

// DecodeSnapshot 解析 YAML 快照并做基本校验
func DecodeSnapshot(r io.Reader) (*schema.Snapshot, error) {
	var doc SnapshotDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("快照为空")
		}
		return nil, fmt.Errorf("解析快照失败: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("快照校验失败: %w", err)
	}
	return doc.toSnapshot(), nil
}

func (d SnapshotDoc) validate() error {
	var problems []string
	if strings.TrimSpace(d.Sprint.Title) == "" {
		problems = append(problems, "sprint.title 不能为空")
	}
	if d.Sprint.DateStart.IsZero() || d.Sprint.DateEnd.IsZero() {
		problems = append(problems, "sprint.date_start/date_end 不能为空")
	} else if d.Sprint.DateEnd.Before(d.Sprint.DateStart) {
		problems = append(problems, "sprint.date_end 早于 date_start")
	}

	storyIDs := make(map[int64]struct{}, len(d.Stories))
	taskIDs := make(map[int64]struct{})
	for i, st := range d.Stories {
		if st.ID == 0 {
			problems = append(problems, fmt.Sprintf("stories[%d].id 不能为空", i))
		}
		if _, dup := storyIDs[st.ID]; dup {
			problems = append(problems, fmt.Sprintf("stories[%d].id=%d 重复", i, st.ID))
		}
		storyIDs[st.ID] = struct{}{}
		for j, t := range st.Tasks {
			if t.ID == 0 {
				problems = append(problems, fmt.Sprintf("stories[%d].tasks[%d].id 不能为空", i, j))
			}
			if _, dup := taskIDs[t.ID]; dup {
				problems = append(problems, fmt.Sprintf("stories[%d].tasks[%d].id=%d 重复", i, j, t.ID))
			}
			taskIDs[t.ID] = struct{}{}
			if t.IsDone && t.TimeEnd == nil {
				slog.Warn("已完成任务缺少 time_end，不会出现在完成柱状图中", "task_id", t.ID)
			}
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (d SnapshotDoc) toSnapshot() *schema.Snapshot {
	snap := &schema.Snapshot{
		Sprint: schema.Sprint{
			ProjectID:      d.ProjectID,
			Title:          d.Sprint.Title,
			Description:    d.Sprint.Description,
			DateStart:      d.Sprint.DateStart.UTC(),
			DateEnd:        d.Sprint.DateEnd.UTC(),
			IgnoreWeekends: d.Sprint.IgnoreWeekends,
		},
	}

	for _, day := range d.Sprint.ExcludeDays {
		snap.ExcludeDays = append(snap.ExcludeDays, schema.SprintExcludeDay{Day: day.UTC()})
	}
	for _, tt := range d.TaskTypes {
		snap.TaskTypes = append(snap.TaskTypes, schema.TaskType{ID: tt.ID, Title: tt.Title, ChartColor: tt.ChartColor})
	}
	for _, p := range d.Phases {
		snap.Phases = append(snap.Phases, schema.Phase{
			ID:              p.ID,
			ProjectID:       d.ProjectID,
			Order:           p.Order,
			Title:           p.Title,
			BackgroundColor: p.BackgroundColor,
		})
	}
	for _, st := range d.Stories {
		snap.Stories = append(snap.Stories, schema.Story{
			ID:                    st.ID,
			ProjectID:             d.ProjectID,
			Title:                 st.Title,
			TimeStart:             st.TimeStart,
			IsDone:                st.IsDone,
			IgnoreInBurnDownChart: st.IgnoreInBurnDownChart,
		})
		for _, t := range st.Tasks {
			snap.Tasks = append(snap.Tasks, schema.Task{
				ID:        t.ID,
				StoryID:   st.ID,
				TypeID:    t.TypeID,
				PhaseID:   t.PhaseID,
				Title:     t.Title,
				IsDone:    t.IsDone,
				TimeEnd:   t.TimeEnd,
				CreatedAt: t.CreatedAt,
			})
		}
	}
	for _, pd := range d.PhaseDurations {
		snap.PhaseDurations = append(snap.PhaseDurations, schema.PhaseDuration{
			ProjectID:        d.ProjectID,
			PhaseID:          pd.PhaseID,
			StoryID:          pd.StoryID,
			TaskID:           pd.TaskID,
			TimeStart:        pd.TimeStart,
			TimeEnd:          pd.TimeEnd,
			Duration:         pd.Duration,
			DurationRelative: pd.DurationRelative,
			Open:             pd.Open,
		})
	}
	return snap
}
