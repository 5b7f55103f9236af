package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_GetMissing(t *testing.T) {
	s := newMemoryStore(t)

	value, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_SetThenGet(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	require.NoError(t, s.Set(ctx, "u1:patient-sequences", `[{"id":"1"}]`))
	require.NoError(t, s.Set(ctx, "u1:patient-sequences", `[]`))

	value, ok, err := s.Get(ctx, "u1:patient-sequences")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	require.NoError(t, s.Set(ctx, "u1:analysis-results", "[]"))
	require.NoError(t, s.Set(ctx, "u1:patient-sequences", "[]"))
	require.NoError(t, s.Set(ctx, "u2:patient-sequences", "[]"))

	keys, err := s.Keys(ctx, "u1:")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1:analysis-results", "u1:patient-sequences"}, keys)

	all, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	s, err := NewStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	reopened, err := NewStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestStore_ErrorPaths(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		call    func(*Store) error
		wantMsg string
	}{
		{
			name: "get query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM cache_entries`)).
					WillReturnError(errors.New("disk I/O error"))
			},
			call: func(s *Store) error {
				_, _, err := s.Get(context.Background(), "k")
				return err
			},
			wantMsg: "failed to get cache entry",
		},
		{
			name: "set exec error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cache_entries`)).
					WillReturnError(errors.New("database is locked"))
			},
			call: func(s *Store) error {
				return s.Set(context.Background(), "k", "v")
			},
			wantMsg: "failed to set cache entry",
		},
		{
			name: "keys query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM cache_entries`)).
					WillReturnError(errors.New("boom"))
			},
			call: func(s *Store) error {
				_, err := s.Keys(context.Background(), "")
				return err
			},
			wantMsg: "failed to list cache keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS cache_entries`)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			tt.setup(mock)

			s, err := NewStoreWithDB(context.Background(), db)
			require.NoError(t, err)

			err = tt.call(s)
			assert.ErrorContains(t, err, tt.wantMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewStoreWithDB_SchemaError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS cache_entries`)).
		WillReturnError(errors.New("read-only file system"))

	s, err := NewStoreWithDB(context.Background(), db)
	assert.Nil(t, s)
	assert.ErrorContains(t, err, "failed to create cache table")
}
