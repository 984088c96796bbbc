package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// queryObserver receives per-query latency samples.
type queryObserver interface {
	ObserveStoreQuery(operation string, duration time.Duration)
}

// PostgresStore implements DocumentStore on a single JSONB-backed table,
// preserving the collection-per-partition layout of the original data model.
type PostgresStore struct {
	db      *sqlx.DB
	metrics queryObserver
	timeout time.Duration
}

type documentRow struct {
	ID         string          `db:"id"`
	Collection string          `db:"collection"`
	Data       json.RawMessage `db:"data"`
	CreatedAt  time.Time       `db:"created_at"`
}

// NewPostgresStore constructs a PostgresStore. metrics may be nil.
func NewPostgresStore(db *sqlx.DB, metrics queryObserver, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresStore{db: db, metrics: metrics, timeout: timeout}
}

// EnsureSchema creates the documents table and its lookup index.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS documents (
            id         TEXT PRIMARY KEY,
            collection TEXT NOT NULL,
            data       JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );
        CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

// Insert stores a new document and returns its generated id.
func (s *PostgresStore) Insert(ctx context.Context, collection string, data interface{}) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal document for %s: %w", collection, err)
	}

	id := uuid.NewString()
	query := "INSERT INTO documents (id, collection, data, created_at) VALUES ($1, $2, $3, $4)"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	_, err = s.db.ExecContext(ctx, query, id, collection, payload, time.Now().UTC())
	s.observe("insert", start)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

// Get fetches a single document by id.
func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	query := "SELECT id, collection, data, created_at FROM documents WHERE collection = $1 AND id = $2"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var row documentRow
	start := time.Now()
	err := s.db.GetContext(ctx, &row, query, collection, id)
	s.observe("get", start)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return rowToDocument(row), nil
}

// Find returns documents matching the query's single equality filter,
// optionally ordered by one JSON field.
func (s *PostgresStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	query := "SELECT id, collection, data, created_at FROM documents WHERE collection = $1"
	args := []interface{}{collection}

	if q.FilterField != "" {
		query += fmt.Sprintf(" AND data->>$%d = $%d", len(args)+1, len(args)+2)
		args = append(args, q.FilterField, filterText(q.FilterValue))
	}
	if q.OrderField != "" {
		direction := "ASC"
		if q.Descending {
			direction = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY data->>$%d %s", len(args)+1, direction)
		args = append(args, q.OrderField)
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows []documentRow
	start := time.Now()
	err := s.db.SelectContext(ctx, &rows, query, args...)
	s.observe("find", start)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, *rowToDocument(row))
	}
	return docs, nil
}

// Patch overlays the given fields onto an existing document, leaving every
// other field untouched.
func (s *PostgresStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal patch for %s/%s: %w", collection, id, err)
	}

	query := "UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.db.ExecContext(ctx, query, collection, id, payload)
	s.observe("patch", start)
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w", collection, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w", collection, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Merge creates the document if absent or overlays the given data onto the
// existing body, mirroring a merge-style set.
func (s *PostgresStore) Merge(ctx context.Context, collection, id string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal merge for %s/%s: %w", collection, id, err)
	}

	query := `INSERT INTO documents (id, collection, data, created_at) VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET data = documents.data || EXCLUDED.data`

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	_, err = s.db.ExecContext(ctx, query, id, collection, payload, time.Now().UTC())
	s.observe("merge", start)
	if err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStoreQuery(operation, time.Since(start))
	}
}

func rowToDocument(row documentRow) *Document {
	return &Document{
		ID:         row.ID,
		Collection: row.Collection,
		Data:       row.Data,
		CreatedAt:  row.CreatedAt,
	}
}

// filterText renders a filter value the way JSONB ->> extraction does.
func filterText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}
