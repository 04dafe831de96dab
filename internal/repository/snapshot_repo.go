package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuqie6/taskboard/internal/schema"
	"gorm.io/gorm"
)

// SnapshotRepository 导入快照的写路径
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository 创建快照仓储
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// idMap 快照内 ID -> 入库后 ID
type idMap map[int64]int64

func (m idMap) resolve(kind string, old int64) (int64, error) {
	if old == 0 {
		return 0, nil
	}
	id, ok := m[old]
	if !ok {
		return 0, fmt.Errorf("引用了不存在的%s %d", kind, old)
	}
	return id, nil
}

// Save 在一个事务内写入快照，返回新迭代 ID。
// 快照中的 ID 仅用于互相引用，写入时统一重新分配；任一引用悬空则整体回滚。
func (r *SnapshotRepository) Save(ctx context.Context, snap *schema.Snapshot) (int64, error) {
	if snap == nil {
		return 0, fmt.Errorf("快照不能为空")
	}

	start := time.Now()
	var sprintID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		types := idMap{}
		for _, tt := range snap.TaskTypes {
			old := tt.ID
			tt.ID = 0
			if err := tx.Create(&tt).Error; err != nil {
				return fmt.Errorf("写入任务类型失败: %w", err)
			}
			types[old] = tt.ID
		}

		phases := idMap{}
		for _, p := range snap.Phases {
			old := p.ID
			p.ID = 0
			p.ProjectID = snap.Sprint.ProjectID
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("写入阶段失败: %w", err)
			}
			phases[old] = p.ID
		}

		sprint := snap.Sprint
		sprint.ID = 0
		if err := tx.Create(&sprint).Error; err != nil {
			return fmt.Errorf("写入迭代失败: %w", err)
		}
		sprintID = sprint.ID

		for _, d := range snap.ExcludeDays {
			d.ID = 0
			d.SprintID = sprintID
			if err := tx.Create(&d).Error; err != nil {
				return fmt.Errorf("写入排除日失败: %w", err)
			}
		}

		stories := idMap{}
		for _, s := range snap.Stories {
			old := s.ID
			s.ID = 0
			s.SprintID = sprintID
			s.ProjectID = sprint.ProjectID
			if err := tx.Create(&s).Error; err != nil {
				return fmt.Errorf("写入故事失败: %w", err)
			}
			stories[old] = s.ID
		}

		tasks := idMap{}
		for _, t := range snap.Tasks {
			old := t.ID
			var err error
			if t.StoryID, err = stories.resolve("故事", t.StoryID); err != nil {
				return err
			}
			if t.TypeID, err = types.resolve("任务类型", t.TypeID); err != nil {
				return err
			}
			if t.PhaseID, err = phases.resolve("阶段", t.PhaseID); err != nil {
				return err
			}
			t.ID = 0
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("写入任务失败: %w", err)
			}
			tasks[old] = t.ID
		}

		for _, pd := range snap.PhaseDurations {
			var err error
			if pd.PhaseID, err = phases.resolve("阶段", pd.PhaseID); err != nil {
				return err
			}
			if pd.StoryID, err = stories.resolve("故事", pd.StoryID); err != nil {
				return err
			}
			if pd.TaskID, err = tasks.resolve("任务", pd.TaskID); err != nil {
				return err
			}
			pd.ID = 0
			pd.SprintID = sprintID
			pd.ProjectID = sprint.ProjectID
			if err := tx.Create(&pd).Error; err != nil {
				return fmt.Errorf("写入阶段耗时失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("导入快照失败", "sprint", snap.Sprint.Title, "error", err)
		return 0, fmt.Errorf("导入快照失败: %w", err)
	}

	slog.Debug("导入快照成功",
		"sprint_id", sprintID,
		"stories", len(snap.Stories),
		"tasks", len(snap.Tasks),
		"duration", time.Since(start),
	)
	return sprintID, nil
}
