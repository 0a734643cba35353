package app

import (
	"context"
	"errors"

	"github.com/bassista/go_items/internal/cache"
	"github.com/bassista/go_items/internal/config"
	"github.com/bassista/go_items/internal/logger"
	"github.com/bassista/go_items/internal/repository"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config *config.Config
	Repo   repository.Repository
	Stats  cache.AppStats

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, repo repository.Repository, stats cache.AppStats) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if stats == nil {
		return nil, errors.New("stats cache is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Repo:    repo,
		Stats:   stats,
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers subscribes the stats cache to data file changes, then computes the
// initial stats. Watching starts first so a write racing the first computation still
// triggers a recompute. If the file cannot be watched, the periodic refresh scheduler
// takes over and the watch error is returned; the service keeps running either way.
func (a *App) StartWatchers() error {
	log := logger.WithComponent("app")

	watchErr := a.Repo.StartWatcher(a.BaseCtx, a.Stats)
	if watchErr != nil {
		log.Errorf("data file watcher unavailable, refreshing stats every %v instead: %v", a.Config.Data.StatsRefreshInterval, watchErr)
		cache.StartRefreshScheduler(a.BaseCtx, a.Stats, a.Config.Data.StatsRefreshInterval)
	} else {
		log.Debug("data file watcher started")
	}

	if err := a.Stats.Recompute(a.BaseCtx); err != nil {
		log.Warnf("initial stats computation failed: %v", err)
	}
	return watchErr
}
