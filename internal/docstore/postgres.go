package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"skill-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps every collection in one JSONB table (see the
// migrations package). Enumeration order is insertion order (seq).
type PostgresStore struct {
	db database.DB
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := validCollection(collection); err != nil {
		return Document{}, err
	}
	row := s.db.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: fields}, nil
}

func (s *PostgresStore) List(ctx context.Context, collection string, limit int) ([]Document, error) {
	return s.Find(ctx, collection, Query{Limit: limit})
}

func (s *PostgresStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	sqlText, args, err := compileFind(collection, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := validCollection(collection); err != nil {
		return "", err
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, string(b),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Put(ctx context.Context, collection, id string, fields Fields) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, id, string(b),
	)
	return err
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// compileFind turns a Query into SQL over the documents table. Field names
// are validated by Query.Validate before being spliced into the text.
func compileFind(collection string, q Query) (string, []any, error) {
	if err := validCollection(collection); err != nil {
		return "", nil, err
	}
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	args := []any{collection}
	b.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	for _, f := range q.Filters {
		switch f.Op {
		case OpEqual:
			fmt.Fprintf(&b, ` AND data->>'%s' = %s`, f.Field, next(f.Value))
		case OpArrayContains:
			fmt.Fprintf(&b, ` AND data->'%s' ? %s`, f.Field, next(f.Value))
		case OpArrayContainsAny:
			fmt.Fprintf(&b, ` AND data->'%s' ?| %s::text[]`, f.Field, next(f.Value))
		case OpGreaterOrEqual:
			fmt.Fprintf(&b, ` AND (data->>'%s') COLLATE "C" >= %s`, f.Field, next(f.Value))
		case OpLessThan:
			fmt.Fprintf(&b, ` AND (data->>'%s') COLLATE "C" < %s`, f.Field, next(f.Value))
		}
	}

	if field := q.rangeField(); field != "" {
		fmt.Fprintf(&b, ` ORDER BY (data->>'%s') COLLATE "C" ASC, seq ASC`, field)
	} else {
		b.WriteString(` ORDER BY seq ASC`)
	}
	if q.Limit > 0 {
		b.WriteString(` LIMIT ` + next(q.Limit))
	}
	return b.String(), args, nil
}

func decodeFields(raw []byte) (Fields, error) {
	fields := Fields{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}
