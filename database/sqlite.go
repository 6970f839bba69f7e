package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteFactory opens connections to a local SQLite database. The schema is
// expected to exist already.
type SQLiteFactory struct {
	DataSourceName string
}

// NewSQLiteFactory creates a factory for the given data source name
func NewSQLiteFactory(dataSourceName string) *SQLiteFactory {
	return &SQLiteFactory{DataSourceName: dataSourceName}
}

// Open returns a fresh single-connection handle
func (f *SQLiteFactory) Open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", f.DataSourceName)
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("failed to open database: %w", err)}
	}

	db, err = establish(ctx, db, 0)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, &ConnectionError{Err: fmt.Errorf("failed to enable foreign keys: %w", err)}
	}

	return db, nil
}
