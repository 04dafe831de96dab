package bootstrap

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yuqie6/taskboard/internal/pkg/config"
	"github.com/yuqie6/taskboard/internal/repository"
	"github.com/yuqie6/taskboard/internal/service"
)

// Core 持有各子命令共享的核心依赖
type Core struct {
	Cfg       *config.Config
	DB        *repository.Database
	LogCloser io.Closer

	Repos struct {
		Sprint        *repository.SprintRepository
		Story         *repository.StoryRepository
		Task          *repository.TaskRepository
		TaskType      *repository.TaskTypeRepository
		Phase         *repository.PhaseRepository
		PhaseDuration *repository.PhaseDurationRepository
		Snapshot      *repository.SnapshotRepository
	}

	Services struct {
		Analytics *service.SprintAnalyticsService
		Import    *service.ImportService
	}
}

// NewCore 加载配置并构建核心依赖
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return NewCoreFromConfig(cfg)
}

// NewCoreFromConfig 用已加载的配置构建核心依赖
func NewCoreFromConfig(cfg *config.Config) (*Core, error) {
	logCloser, err := config.SetupLogger(config.LoggerOptions{
		Level:     cfg.App.LogLevel,
		Path:      cfg.App.LogPath,
		Component: filepath.Base(os.Args[0]),
		Output:    os.Stderr, // stdout 留给命令输出
	})
	if err != nil {
		return nil, err
	}

	db, err := repository.NewDatabase(cfg.Storage.DBPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	c := &Core{Cfg: cfg, DB: db, LogCloser: logCloser}

	// Repos
	c.Repos.Sprint = repository.NewSprintRepository(db.DB)
	c.Repos.Story = repository.NewStoryRepository(db.DB)
	c.Repos.Task = repository.NewTaskRepository(db.DB)
	c.Repos.TaskType = repository.NewTaskTypeRepository(db.DB)
	c.Repos.Phase = repository.NewPhaseRepository(db.DB)
	c.Repos.PhaseDuration = repository.NewPhaseDurationRepository(db.DB)
	c.Repos.Snapshot = repository.NewSnapshotRepository(db.DB)

	// Services
	c.Services.Analytics = service.NewSprintAnalyticsService(
		c.Repos.Sprint,
		c.Repos.Story,
		c.Repos.Task,
		c.Repos.Phase,
		c.Repos.PhaseDuration,
		c.Repos.TaskType,
		&service.SprintAnalyticsConfig{
			FetchTimeout:     cfg.Analytics.FetchTimeout(),
			MaxParallelFetch: cfg.Analytics.MaxParallelFetch,
		},
	)
	c.Services.Import = service.NewImportService(c.Repos.Snapshot)

	return c, nil
}

// Close 关闭核心依赖资源
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	var dbErr error
	if c.DB != nil {
		dbErr = c.DB.Close()
	}
	if c.LogCloser != nil {
		_ = c.LogCloser.Close()
	}
	return dbErr
}
