// Package docstore is a small document-database client: collections of
// schemaless documents with store-assigned ids, equality, array-membership
// and range filters, read-by-id and whole-collection enumeration.
//
// Two backends implement Store: MemoryStore and PostgresStore (JSONB).
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// MaxAnyValues is the largest value list accepted by OpArrayContainsAny.
const MaxAnyValues = 30

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidQuery = errors.New("invalid query")
	ErrClosed       = errors.New("store closed")
)

type Op string

const (
	OpEqual            Op = "=="
	OpArrayContains    Op = "array-contains"
	OpArrayContainsAny Op = "array-contains-any"
	OpGreaterOrEqual   Op = ">="
	OpLessThan         Op = "<"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Query is a conjunction of filters. Limit <= 0 means no limit. Results
// come back in insertion order, except that a query with a range filter
// is ordered by the ranged field (byte order), ties in insertion order.
type Query struct {
	Filters []Filter
	Limit   int
}

type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string, limit int) ([]Document, error)
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	Create(ctx context.Context, collection string, fields Fields) (string, error)
	Put(ctx context.Context, collection, id string, fields Fields) error
	Close() error
}

var fieldRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validCollection(name string) error {
	if !fieldRe.MatchString(name) {
		return fmt.Errorf("%w: collection %q", ErrInvalidQuery, name)
	}
	return nil
}

// Validate checks field names and value shapes for every filter.
func (q Query) Validate() error {
	for _, f := range q.Filters {
		if !fieldRe.MatchString(f.Field) {
			return fmt.Errorf("%w: field %q", ErrInvalidQuery, f.Field)
		}
		switch f.Op {
		case OpEqual, OpArrayContains, OpGreaterOrEqual, OpLessThan:
			if _, ok := f.Value.(string); !ok {
				return fmt.Errorf("%w: %s on %q needs a string value", ErrInvalidQuery, f.Op, f.Field)
			}
		case OpArrayContainsAny:
			vals, ok := f.Value.([]string)
			if !ok {
				return fmt.Errorf("%w: %s on %q needs a []string value", ErrInvalidQuery, f.Op, f.Field)
			}
			if len(vals) == 0 || len(vals) > MaxAnyValues {
				return fmt.Errorf("%w: %s on %q takes 1..%d values, got %d", ErrInvalidQuery, f.Op, f.Field, MaxAnyValues, len(vals))
			}
		default:
			return fmt.Errorf("%w: unsupported operator %q", ErrInvalidQuery, f.Op)
		}
	}
	return nil
}

// Matches evaluates the filter against a document's fields.
func (f Filter) Matches(fields Fields) bool {
	switch f.Op {
	case OpEqual:
		v, ok := fields[f.Field].(string)
		return ok && v == f.Value.(string)
	case OpGreaterOrEqual:
		v, ok := fields[f.Field].(string)
		return ok && v >= f.Value.(string)
	case OpLessThan:
		v, ok := fields[f.Field].(string)
		return ok && v < f.Value.(string)
	case OpArrayContains:
		want := f.Value.(string)
		for _, s := range toStrings(fields[f.Field]) {
			if s == want {
				return true
			}
		}
		return false
	case OpArrayContainsAny:
		have := toStrings(fields[f.Field])
		for _, want := range f.Value.([]string) {
			for _, s := range have {
				if s == want {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

// rangeField returns the field of the first range filter, or "".
func (q Query) rangeField() string {
	for _, f := range q.Filters {
		if f.Op == OpGreaterOrEqual || f.Op == OpLessThan {
			return f.Field
		}
	}
	return ""
}

func (q Query) matches(fields Fields) bool {
	for _, f := range q.Filters {
		if !f.Matches(fields) {
			return false
		}
	}
	return true
}
