package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/bassista/go_items/internal/logger"
	"github.com/bassista/go_items/internal/repository"
	"golang.org/x/sync/singleflight"
)

// State is the lifecycle state of the cached stats.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateAbsent
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable aggregate over the item collection.
type Snapshot struct {
	Total        int     `json:"total"`
	AveragePrice float64 `json:"averagePrice"`
}

// Status describes the cache for diagnostics.
type Status struct {
	State     State
	LastError error
	UpdatedAt time.Time
}

type entry struct {
	seq       uint64
	state     State
	snapshot  Snapshot
	err       error
	updatedAt time.Time
}

// StatsCache keeps the derived stats of the item collection.
// Readers load the current entry through an atomic pointer; every recompute builds a
// fresh entry and swaps it in whole, so a reader never sees a half-updated snapshot.
// A failed recompute publishes an Absent entry instead of keeping the old numbers.
type StatsCache struct {
	reader  repository.Reader
	current atomic.Pointer[entry]
	seq     atomic.Uint64
	group   singleflight.Group
	now     func() time.Time
}

// NewStatsCache creates an uninitialized cache over the given read path.
func NewStatsCache(reader repository.Reader) *StatsCache {
	c := &StatsCache{reader: reader, now: time.Now}
	c.current.Store(&entry{state: StateUninitialized})
	return c
}

// Get returns the last computed snapshot, or false when none is available.
func (c *StatsCache) Get() (Snapshot, bool) {
	e := c.current.Load()
	if e.state != StateReady {
		return Snapshot{}, false
	}
	return e.snapshot, true
}

// Status returns the current state, the last recompute error and when it happened.
func (c *StatsCache) Status() Status {
	e := c.current.Load()
	return Status{State: e.state, LastError: e.err, UpdatedAt: e.updatedAt}
}

// Recompute reads the whole collection and replaces the cached snapshot.
// On read or parse failure the cache becomes Absent and the error is returned.
// A canceled ctx leaves the cache untouched.
func (c *StatsCache) Recompute(ctx context.Context) error {
	// The sequence number is taken before reading so that when two recomputes
	// overlap, the one that started last (and saw the newest file) wins.
	seq := c.seq.Add(1)
	log := logger.WithComponent("stats")

	items, err := c.reader.LoadAll(ctx)
	if err != nil && ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}

	next := &entry{seq: seq, updatedAt: c.now()}
	if err != nil {
		next.state = StateAbsent
		next.err = err
		log.Warnf("stats unavailable: %v", err)
	} else {
		next.state = StateReady
		next.snapshot = Compute(items)
		log.Debugf("stats recomputed: total=%d averagePrice=%.2f", next.snapshot.Total, next.snapshot.AveragePrice)
	}
	c.publish(next)
	return err
}

// TriggerRecompute starts a background recompute and returns immediately.
// Triggers that arrive while one is running share it.
func (c *StatsCache) TriggerRecompute() {
	c.group.DoChan("recompute", func() (any, error) {
		return nil, c.Recompute(context.Background())
	})
}

func (c *StatsCache) publish(next *entry) {
	for {
		cur := c.current.Load()
		if cur.seq > next.seq {
			return
		}
		if c.current.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Compute derives the aggregate for a collection. The average of an empty
// collection is 0.
func Compute(items []repository.Item) Snapshot {
	if len(items) == 0 {
		return Snapshot{}
	}
	var sum float64
	for _, item := range items {
		sum += item.Price
	}
	return Snapshot{Total: len(items), AveragePrice: sum / float64(len(items))}
}
