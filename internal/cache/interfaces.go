package cache

import (
	"context"

	"github.com/bassista/go_items/internal/repository"
)

// StatsReader is the read-only view handlers get of the stats cache.
type StatsReader interface {
	Get() (Snapshot, bool)
	Status() Status
	TriggerRecompute()
}

// Recomputer is what the watcher and the refresh scheduler drive.
type Recomputer interface {
	Recompute(ctx context.Context) error
}

// AppStats is the cache contract the application container exposes.
type AppStats interface {
	StatsReader
	Recomputer
}

var _ repository.ChangeHandler = (*StatsCache)(nil)
var _ AppStats = (*StatsCache)(nil)
