package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// JSONRepository handles disk persistence and watching of the item data file.
//
// Appends are serialized through mu. Reads take no lock: saves replace the file with
// an atomic rename, so a reader sees either the old or the new collection.
// Writers in other processes still follow last-write-wins.
type JSONRepository struct {
	path      string
	dir       string
	base      string
	validator *validator.Validate
	debounce  time.Duration
	now       func() time.Time
	mu        sync.Mutex
}

// Option configures a JSONRepository.
type Option func(*JSONRepository)

// WithWatchDebounce sets the window used to coalesce bursts of file events.
// Zero notifies on every event.
func WithWatchDebounce(d time.Duration) Option {
	return func(r *JSONRepository) {
		r.debounce = d
	}
}

// WithClock overrides the time source used for id generation.
func WithClock(now func() time.Time) Option {
	return func(r *JSONRepository) {
		r.now = now
	}
}

// NewJSONRepository creates a repository for the given JSON file path.
func NewJSONRepository(path string, opts ...Option) (*JSONRepository, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}

	r := &JSONRepository{
		path:      path,
		dir:       dir,
		base:      filepath.Base(path),
		validator: validator.New(),
		debounce:  200 * time.Millisecond,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Path returns the data file path.
func (r *JSONRepository) Path() string {
	return r.path
}

// LoadAll reads and parses the whole collection.
func (r *JSONRepository) LoadAll(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.load()
}

func (r *JSONRepository) load() ([]Item, error) {
	payload, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read data file: %w", ErrStoreUnavailable, err)
	}

	var items []Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: decode data file: %w", ErrStoreUnavailable, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// FindByID returns the item with the given id.
func (r *JSONRepository) FindByID(ctx context.Context, id int64) (Item, error) {
	items, err := r.LoadAll(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Append validates the candidate, assigns it an id and persists the grown collection.
// Invalid candidates never reach the disk.
func (r *JSONRepository) Append(ctx context.Context, in ItemInput) (Item, error) {
	if err := in.Validate(r.validator); err != nil {
		return Item{}, err
	}
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return Item{}, err
	}

	id, err := r.nextID(items)
	if err != nil {
		return Item{}, err
	}
	item := in.toItem(id)
	items = append(items, item)

	if err := r.saveUnlocked(items); err != nil {
		return Item{}, err
	}
	return item, nil
}

// nextID keeps ids time based but strictly above every id already stored,
// so rapid appends within the same millisecond still get distinct ids.
// Caller must hold mu.
func (r *JSONRepository) nextID(items []Item) (int64, error) {
	maxID := int64(math.MinInt64)
	for _, item := range items {
		maxID = max(maxID, item.ID)
	}
	if maxID == math.MaxInt64 {
		return 0, fmt.Errorf("%w: item id space exhausted", ErrStoreUnavailable)
	}
	return max(r.now().UnixMilli(), maxID+1), nil
}

// saveUnlocked writes the collection atomically (caller must hold mu).
func (r *JSONRepository) saveUnlocked(items []Item) error {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal data: %w", ErrStoreUnavailable, err)
	}

	tmpFile, err := os.CreateTemp(r.dir, r.base+".tmp-")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrStoreUnavailable, err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(payload); err != nil {
		return fmt.Errorf("%w: write temp file: %w", ErrStoreUnavailable, err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: chmod temp file: %w", ErrStoreUnavailable, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: sync temp file: %w", ErrStoreUnavailable, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %w", ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpFile.Name(), r.path); err != nil {
		return fmt.Errorf("%w: replace data file: %w", ErrStoreUnavailable, err)
	}
	return nil
}
