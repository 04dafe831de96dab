package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/yuqie6/taskboard/internal/analytics"
	"github.com/yuqie6/taskboard/internal/schema"
)

// SprintAnalyticsService 并发取数后交给纯计算引擎
type SprintAnalyticsService struct {
	sprintRepo   SprintRepository
	storyRepo    StoryRepository
	taskRepo     TaskRepository
	phaseRepo    PhaseRepository
	durationRepo PhaseDurationRepository
	typeRepo     TaskTypeRepository
	cfg          *SprintAnalyticsConfig
}

// SprintAnalyticsConfig 统计服务配置
type SprintAnalyticsConfig struct {
	FetchTimeout     time.Duration    // 整个取数阶段的超时，<=0 不限制
	MaxParallelFetch int              // 阶段耗时汇总的并发上限
	Now              func() time.Time // 时钟，测试注入
}

// NewSprintAnalyticsService 创建统计服务
func NewSprintAnalyticsService(
	sprintRepo SprintRepository,
	storyRepo StoryRepository,
	taskRepo TaskRepository,
	phaseRepo PhaseRepository,
	durationRepo PhaseDurationRepository,
	typeRepo TaskTypeRepository,
	cfg *SprintAnalyticsConfig,
) *SprintAnalyticsService {
	if cfg == nil {
		cfg = &SprintAnalyticsConfig{}
	}
	if cfg.MaxParallelFetch <= 0 {
		cfg.MaxParallelFetch = 4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SprintAnalyticsService{
		sprintRepo:   sprintRepo,
		storyRepo:    storyRepo,
		taskRepo:     taskRepo,
		phaseRepo:    phaseRepo,
		durationRepo: durationRepo,
		typeRepo:     typeRepo,
		cfg:          cfg,
	}
}

// ComputeSprintAnalytics 计算迭代统计。
// 任一上游失败即整体失败，不返回部分结果。
func (s *SprintAnalyticsService) ComputeSprintAnalytics(ctx context.Context, sprintID int64) (*analytics.SprintAnalytics, error) {
	start := time.Now()

	in, err := s.fetch(ctx, sprintID)
	if err != nil {
		slog.Warn("迭代统计取数失败", "sprint_id", sprintID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	slog.Debug("迭代统计取数完成",
		"sprint_id", sprintID,
		"stories", len(in.Stories),
		"tasks", len(in.Tasks),
		"phases", len(in.Phases),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	res, err := analytics.Compute(in)
	if err != nil {
		slog.Warn("迭代统计计算失败", "sprint_id", sprintID, "error", err)
		return nil, err
	}
	return res, nil
}

// ListSprints 最近的迭代
func (s *SprintAnalyticsService) ListSprints(ctx context.Context, limit int) ([]schema.Sprint, error) {
	sprints, err := s.sprintRepo.List(ctx, limit)
	if err != nil {
		return nil, fetchErr("list", "sprint", 0, err)
	}
	return sprints, nil
}

// fetch 两段扇出：
// 第一段并发取迭代、排除日、故事、任务类型；
// 第二段依赖第一段结果，并发取任务与阶段，阶段取回后再按阶段扇出汇总耗时。
func (s *SprintAnalyticsService) fetch(ctx context.Context, sprintID int64) (analytics.Input, error) {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	var (
		sprint      *schema.Sprint
		excludeDays []schema.SprintExcludeDay
		stories     []schema.Story
		types       []schema.TaskType
	)

	first := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	first.Go(func(ctx context.Context) error {
		sp, err := s.sprintRepo.GetByID(ctx, sprintID)
		if err != nil {
			return fetchErr("get", "sprint", sprintID, err)
		}
		if sp == nil {
			return fmt.Errorf("迭代 %d: %w", sprintID, ErrNotFound)
		}
		sprint = sp
		return nil
	})
	first.Go(func(ctx context.Context) error {
		days, err := s.sprintRepo.GetExcludeDays(ctx, sprintID)
		excludeDays = days
		return fetchErr("get exclude days of", "sprint", sprintID, err)
	})
	first.Go(func(ctx context.Context) error {
		list, err := s.storyRepo.GetBySprint(ctx, sprintID)
		stories = list
		return fetchErr("list stories of", "sprint", sprintID, err)
	})
	first.Go(func(ctx context.Context) error {
		list, err := s.typeRepo.GetAll(ctx)
		types = list
		return fetchErr("list", "task type", 0, err)
	})
	if err := first.Wait(); err != nil {
		return analytics.Input{}, err
	}

	storyIDs := make([]int64, 0, len(stories))
	for _, st := range stories {
		storyIDs = append(storyIDs, st.ID)
	}

	var (
		tasks  []schema.Task
		phases []schema.Phase
		sums   map[int64]int64
	)

	second := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	second.Go(func(ctx context.Context) error {
		list, err := s.taskRepo.GetByStoryIDs(ctx, storyIDs)
		tasks = list
		return fetchErr("list tasks of", "sprint", sprintID, err)
	})
	second.Go(func(ctx context.Context) error {
		list, err := s.phaseRepo.GetByProject(ctx, sprint.ProjectID)
		if err != nil {
			return fetchErr("list phases of", "project", sprint.ProjectID, err)
		}
		phases = list
		sums, err = s.sumPhaseDurations(ctx, sprintID, list)
		return err
	})
	if err := second.Wait(); err != nil {
		return analytics.Input{}, err
	}

	return analytics.Input{
		Sprint:      *sprint,
		ExcludeDays: excludeDays,
		Stories:     stories,
		Tasks:       tasks,
		Phases:      phases,
		PhaseSums:   sums,
		Types:       types,
		Now:         s.cfg.Now(),
	}, nil
}

// sumPhaseDurations 按阶段并发汇总耗时
func (s *SprintAnalyticsService) sumPhaseDurations(ctx context.Context, sprintID int64, phases []schema.Phase) (map[int64]int64, error) {
	totals := make([]int64, len(phases))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.cfg.MaxParallelFetch)
	for i, ph := range phases {
		p.Go(func(ctx context.Context) error {
			total, err := s.durationRepo.SumDuration(ctx, ph.ID, sprintID)
			if err != nil {
				return fetchErr("sum duration of", "phase", ph.ID, err)
			}
			totals[i] = total
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int64]int64, len(phases))
	for i, ph := range phases {
		out[ph.ID] = totals[i]
	}
	return out, nil
}
