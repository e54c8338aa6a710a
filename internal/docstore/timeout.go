package docstore

import (
	"context"
	"time"
)

// TimeoutStore bounds every call on the wrapped store by d.
type TimeoutStore struct {
	next Store
	d    time.Duration
}

// WithTimeout wraps s so each call gets its own deadline. A non-positive d
// returns s unchanged.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 || s == nil {
		return s
	}
	return &TimeoutStore{next: s, d: d}
}

var _ Store = (*TimeoutStore)(nil)

func (t *TimeoutStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Get(ctx, collection, id)
}

func (t *TimeoutStore) List(ctx context.Context, collection string, limit int) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.List(ctx, collection, limit)
}

func (t *TimeoutStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Find(ctx, collection, q)
}

func (t *TimeoutStore) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Create(ctx, collection, fields)
}

func (t *TimeoutStore) Put(ctx context.Context, collection, id string, fields Fields) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Put(ctx, collection, id, fields)
}

func (t *TimeoutStore) Close() error { return t.next.Close() }
