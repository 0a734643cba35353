package repository

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrInvalidItem is returned when a candidate item breaks the item invariants.
	ErrInvalidItem = fmt.Errorf("invalid item data: %w", errdefs.ErrInvalidArgument)

	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = fmt.Errorf("item not found: %w", errdefs.ErrNotFound)

	// ErrStoreUnavailable is returned when the data file cannot be read, parsed or written.
	// It is retryable: the file may be mid-write or briefly absent.
	ErrStoreUnavailable = fmt.Errorf("item store unavailable: %w", errdefs.ErrUnavailable)

	// ErrWatchSetup is returned when the change watcher cannot be started.
	ErrWatchSetup = errors.New("cannot watch data file")
)
