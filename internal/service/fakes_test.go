package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yuqie6/taskboard/internal/schema"
)

type fakeSprintRepo struct {
	sprint      *schema.Sprint
	excludeDays []schema.SprintExcludeDay
	err         error
	block       bool
}

func (f *fakeSprintRepo) GetByID(ctx context.Context, id int64) (*schema.Sprint, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.sprint == nil || f.sprint.ID != id {
		return nil, nil
	}
	sp := *f.sprint
	return &sp, nil
}

func (f *fakeSprintRepo) GetExcludeDays(ctx context.Context, sprintID int64) ([]schema.SprintExcludeDay, error) {
	return f.excludeDays, nil
}

func (f *fakeSprintRepo) List(ctx context.Context, limit int) ([]schema.Sprint, error) {
	if f.sprint == nil {
		return nil, f.err
	}
	return []schema.Sprint{*f.sprint}, f.err
}

type fakeStoryRepo struct {
	stories []schema.Story
}

func (f fakeStoryRepo) GetBySprint(ctx context.Context, sprintID int64) ([]schema.Story, error) {
	var out []schema.Story
	for _, s := range f.stories {
		if s.SprintID == sprintID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks []schema.Task
	err   error
}

func (f fakeTaskRepo) GetByStoryIDs(ctx context.Context, storyIDs []int64) ([]schema.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[int64]struct{}, len(storyIDs))
	for _, id := range storyIDs {
		want[id] = struct{}{}
	}
	var out []schema.Task
	for _, t := range f.tasks {
		if _, ok := want[t.StoryID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakePhaseRepo struct {
	phases []schema.Phase
}

func (f fakePhaseRepo) GetByProject(ctx context.Context, projectID int64) ([]schema.Phase, error) {
	return f.phases, nil
}

type fakeDurationRepo struct {
	sums  map[int64]int64
	err   error
	calls atomic.Int32
}

func (f *fakeDurationRepo) SumDuration(ctx context.Context, phaseID, sprintID int64) (int64, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return f.sums[phaseID], nil
}

type fakeTypeRepo struct {
	types []schema.TaskType
}

func (f fakeTypeRepo) GetAll(ctx context.Context) ([]schema.TaskType, error) {
	return f.types, nil
}

type fakeSnapshotRepo struct {
	mu    sync.Mutex
	saved []*schema.Snapshot
	err   error
}

func (f *fakeSnapshotRepo) Save(ctx context.Context, snap *schema.Snapshot) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, snap)
	return int64(len(f.saved)), nil
}
