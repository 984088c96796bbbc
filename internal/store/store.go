package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is a raw record as held by the document store. Data carries the
// JSON body; decoding into typed models is the repositories' job.
type Document struct {
	ID         string
	Collection string
	Data       json.RawMessage
	CreatedAt  time.Time
}

// Query expresses the store's narrow query contract: at most one equality
// filter and one ordering field. There is no full-text search.
type Query struct {
	FilterField string
	FilterValue interface{}
	OrderField  string
	Descending  bool
	Limit       int
}

// DocumentStore is the collection-scoped CRUD contract backing all durable
// state. Writes are atomic per document; no multi-document transactions are
// assumed.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, data interface{}) (string, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Merge(ctx context.Context, collection, id string, data interface{}) error
}
