package database

import (
	"strings"
	"testing"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		driver        string
		subdir        string
		upsertKeyword string
	}{
		{name: "SQLite", dialect: NewSQLiteDialect(), driver: "sqlite3", subdir: "sqlite", upsertKeyword: "ON CONFLICT"},
		{name: "PostgreSQL", dialect: NewPostgresDialect(), driver: "postgres", subdir: "postgres", upsertKeyword: "ON CONFLICT"},
		{name: "MySQL", dialect: NewMySQLDialect(), driver: "mysql", subdir: "mysql", upsertKeyword: "ON DUPLICATE KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.subdir)
			}
			if got := tt.dialect.UpsertKV(); !strings.Contains(got, tt.upsertKeyword) {
				t.Errorf("UpsertKV() = %v, want it to contain %q", got, tt.upsertKeyword)
			}
			if got := tt.dialect.CreateMigrationsTableQuery(); !strings.Contains(got, "migrations") {
				t.Errorf("CreateMigrationsTableQuery() = %v", got)
			}
		})
	}
}

func TestDialectDSN(t *testing.T) {
	cfg := DialectConfig{Path: "/tmp/fam.db", URL: "postgres://localhost/fam"}

	if got := NewSQLiteDialect().DSN(cfg); got != cfg.Path {
		t.Errorf("SQLite DSN() = %v, want %v", got, cfg.Path)
	}
	if got := NewPostgresDialect().DSN(cfg); got != cfg.URL {
		t.Errorf("PostgreSQL DSN() = %v, want %v", got, cfg.URL)
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		storeType string
		driver    string
		wantErr   bool
	}{
		{storeType: "sqlite", driver: "sqlite3"},
		{storeType: "", driver: "sqlite3"},
		{storeType: "PostgreSQL", driver: "postgres"},
		{storeType: "mysql", driver: "mysql"},
		{storeType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.storeType, func(t *testing.T) {
			d, err := DialectFor(tt.storeType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DialectFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && d.DriverName() != tt.driver {
				t.Errorf("DialectFor() driver = %v, want %v", d.DriverName(), tt.driver)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT entry_value FROM kv_entries WHERE entry_key = ?",
			expected: "SELECT entry_value FROM kv_entries WHERE entry_key = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT entry_value FROM kv_entries WHERE entry_key = ?",
			expected: "SELECT entry_value FROM kv_entries WHERE entry_key = $1",
		},
		{
			name:     "PostgreSQL upsert",
			dialect:  NewPostgresDialect(),
			query:    NewPostgresDialect().UpsertKV(),
			expected: "INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP) " +
				"ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = CURRENT_TIMESTAMP",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM kv_entries WHERE entry_key = ?",
			expected: "DELETE FROM kv_entries WHERE entry_key = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
