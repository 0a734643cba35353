package repository

import "context"

// Reader is the read path over the item collection.
// The stats cache depends only on this.
type Reader interface {
	LoadAll(ctx context.Context) ([]Item, error)
}

// ChangeHandler is notified when the data file changes on disk.
type ChangeHandler interface {
	Recompute(ctx context.Context) error
}

// Repository abstracts persistence and watching of the data file.
// JSONRepository implements this interface.
type Repository interface {
	Reader
	Append(ctx context.Context, in ItemInput) (Item, error)
	FindByID(ctx context.Context, id int64) (Item, error)
	StartWatcher(ctx context.Context, handler ChangeHandler) error
}
