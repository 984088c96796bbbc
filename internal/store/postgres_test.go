package store

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	s := NewPostgresStore(sqlx.NewDb(db, "sqlmock"), nil, time.Second)
	return s, mock, func() { db.Close() }
}

func TestPostgresStoreInsert(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (id, collection, data, created_at) VALUES ($1, $2, $3, $4)")).
		WithArgs(sqlmock.AnyArg(), "Notes4", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Insert(context.Background(), "Notes4", map[string]interface{}{"name": "DS Unit 1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindWithFilterAndOrder(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	body, _ := json.Marshal(map[string]interface{}{"name": "DS Unit 1", "isApproved": true})
	rows := sqlmock.NewRows([]string{"id", "collection", "data", "created_at"}).
		AddRow("doc-1", "Notes4", body, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, collection, data, created_at FROM documents WHERE collection = $1 AND data->>$2 = $3 ORDER BY data->>$4 DESC")).
		WithArgs("Notes4", "isApproved", "true", "uploadedDate").
		WillReturnRows(rows)

	docs, err := s.Find(context.Background(), "Notes4", Query{
		FilterField: "isApproved",
		FilterValue: true,
		OrderField:  "uploadedDate",
		Descending:  true,
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetNotFound(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, collection, data, created_at FROM documents").
		WithArgs("users", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "collection", "data", "created_at"}))

	_, err := s.Get(context.Background(), "users", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePatchTouchesOnlyGivenFields(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2")).
		WithArgs("NotesSubmissions", "sub-1", []byte(`{"status":"approved"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Patch(context.Background(), "NotesSubmissions", "sub-1", map[string]interface{}{"status": "approved"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePatchMissingDocument(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE documents SET data").
		WithArgs("NotesSubmissions", "gone", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Patch(context.Background(), "NotesSubmissions", "gone", map[string]interface{}{"status": "rejected"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreMergeUpserts(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO documents .+ ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("uid-1", "users", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Merge(context.Background(), "users", "uid-1", map[string]interface{}{"semester": "4"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
