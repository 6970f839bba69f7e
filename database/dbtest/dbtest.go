// Package dbtest provisions throwaway SQLite databases with the clients schema.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/blogem/clients-api/database"
)

// Schema mirrors the externally provisioned SQL Server tables
const Schema = `
	CREATE TABLE Clients (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name TEXT NOT NULL,
		Email TEXT NOT NULL,
		CreatedBy TEXT NOT NULL,
		CreatedAt DATETIME NOT NULL
	);

	CREATE TABLE AuditLogs (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		UserId TEXT NOT NULL,
		Action TEXT NOT NULL,
		Details TEXT,
		Timestamp DATETIME NOT NULL
	);
`

// NewFactory creates a database file under t.TempDir with the schema applied
func NewFactory(t testing.TB) *database.SQLiteFactory {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clients.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database.NewSQLiteFactory(path)
}

// Count returns the number of rows in table
func Count(t testing.TB, factory *database.SQLiteFactory, table string) int {
	t.Helper()

	db, err := sql.Open("sqlite3", factory.DataSourceName)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// Exec runs a statement directly against the test database
func Exec(t testing.TB, factory *database.SQLiteFactory, query string, args ...any) {
	t.Helper()

	db, err := sql.Open("sqlite3", factory.DataSourceName)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("Failed to exec %q: %v", query, err)
	}
}
