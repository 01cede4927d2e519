package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"fambalance/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T, dialect database.Dialect) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewSQLStore(database.New(sqlDB, dialect)), mock
}

func TestSQLStoreGet(t *testing.T) {
	s, mock := newMockStore(t, database.NewPostgresDialect())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_value FROM kv_entries WHERE entry_key = $1")).
		WithArgs(KeyUsers).
		WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow(`[{"id":"u1"}]`))

	got, err := s.Get(context.Background(), KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"u1"}]`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetMissing(t *testing.T) {
	s, mock := newMockStore(t, database.NewSQLiteDialect())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_value FROM kv_entries WHERE entry_key = ?")).
		WithArgs(KeyReports).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), KeyReports)
	assert.ErrorIs(t, err, ErrNotFound)

	// LoadList maps the missing key to an empty list
	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_value FROM kv_entries WHERE entry_key = ?")).
		WithArgs(KeyReports).
		WillReturnError(sql.ErrNoRows)
	items, err := LoadList[item](context.Background(), s, KeyReports)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetUsesDialectUpsert(t *testing.T) {
	tests := []struct {
		name    string
		dialect database.Dialect
		query   string
	}{
		{
			name:    "sqlite",
			dialect: database.NewSQLiteDialect(),
			query:   "INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT(entry_key)",
		},
		{
			name:    "postgres",
			dialect: database.NewPostgresDialect(),
			query:   "INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP) ON CONFLICT (entry_key)",
		},
		{
			name:    "mysql",
			dialect: database.NewMySQLDialect(),
			query:   "INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t, tt.dialect)

			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(KeyCurrentFamilyID, "f1").
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, SaveString(context.Background(), s, KeyCurrentFamilyID, "f1"))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStoreDeleteAndKeys(t *testing.T) {
	s, mock := newMockStore(t, database.NewSQLiteDialect())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_entries WHERE entry_key = ?")).
		WithArgs(KeyCurrentUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_key FROM kv_entries ORDER BY entry_key")).
		WillReturnRows(sqlmock.NewRows([]string{"entry_key"}).AddRow(KeyDailyMoods).AddRow(KeyUsers))

	ctx := context.Background()
	require.NoError(t, s.Delete(ctx, KeyCurrentUserID))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyDailyMoods, KeyUsers}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStorePropagatesErrors(t *testing.T) {
	s, mock := newMockStore(t, database.NewSQLiteDialect())

	mock.ExpectQuery("SELECT entry_value FROM kv_entries").
		WillReturnError(errors.New("disk I/O error"))

	_, err := LoadList[item](context.Background(), s, KeyUsers)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to load famBalanceUsers")
	assert.NoError(t, mock.ExpectationsWereMet())
}
