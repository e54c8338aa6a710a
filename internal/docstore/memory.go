package docstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. Enumeration order is
// insertion order; range queries sort by the ranged field.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
	closed      bool
}

type memCollection struct {
	docs  map[string]Fields
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Document{}, ErrClosed
	}

	c, ok := s.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	f, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: f.clone()}, nil
}

func (s *MemoryStore) List(ctx context.Context, collection string, limit int) ([]Document, error) {
	return s.Find(ctx, collection, Query{Limit: limit})
}

func (s *MemoryStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	c, ok := s.collections[collection]
	if !ok {
		return []Document{}, nil
	}

	orderBy := q.rangeField()
	out := make([]Document, 0)
	for _, id := range c.order {
		f := c.docs[id]
		if !q.matches(f) {
			continue
		}
		out = append(out, Document{ID: id, Fields: f.clone()})
		if orderBy == "" && q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	if orderBy != "" {
		slices.SortStableFunc(out, func(a, b Document) int {
			return strings.Compare(a.String(orderBy), b.String(orderBy))
		})
		if q.Limit > 0 && len(out) > q.Limit {
			out = out[:q.Limit]
		}
	}
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	id := uuid.NewString()
	if err := s.Put(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Put(ctx context.Context, collection, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	c, ok := s.collections[collection]
	if !ok {
		c = &memCollection{docs: make(map[string]Fields)}
		s.collections[collection] = c
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = fields.clone()
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
