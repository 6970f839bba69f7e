package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blogem/clients-api/logger"
	"github.com/blogem/clients-api/metrics"
)

const readKeyword = "SELECT"

// Result is the outcome of a statement: rows for reads, a count for writes
type Result struct {
	Read         bool
	Rows         RowSet
	RowsAffected int64
}

// QueryError reports a failed statement along with the rollback outcome
type QueryError struct {
	Statement   string
	Err         error
	RolledBack  bool
	RollbackErr error
}

func (e *QueryError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("database error: %v (rollback failed: %v)", e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Executor runs one statement per connection
type Executor struct {
	factory Factory
}

// NewExecutor creates an executor opening connections through factory
func NewExecutor(factory Factory) *Executor {
	return &Executor{factory: factory}
}

// IsReadStatement classifies a statement by its leading keyword. Statements
// starting with anything else, CTEs included, are treated as writes.
func IsReadStatement(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), readKeyword)
}

// Execute runs query with params bound positionally (@p1..@pN). Reads are
// fully materialized; writes run in a transaction that is committed before
// returning. The connection is closed on every path.
func (e *Executor) Execute(ctx context.Context, query string, params ...any) (*Result, error) {
	read := IsReadStatement(query)
	kind := "write"
	if read {
		kind = "read"
	}

	start := time.Now()
	result, err := e.execute(ctx, query, read, params)
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.QueriesTotal.WithLabelValues(kind, status).Inc()
	metrics.QueryDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	logger.Debug("statement executed", "kind", kind, "status", status, "duration_ms", elapsed.Milliseconds())

	return result, err
}

func (e *Executor) execute(ctx context.Context, query string, read bool, params []any) (*Result, error) {
	db, err := e.factory.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn("failed to close database connection", "error", cerr)
		}
	}()

	if read {
		rows, err := collect(ctx, db, query, params)
		if err != nil {
			return nil, &QueryError{Statement: query, Err: err}
		}
		return &Result{Read: true, Rows: rows}, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &QueryError{Statement: query, Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}

	res, err := tx.ExecContext(ctx, query, params...)
	if err != nil {
		return nil, rollback(tx, query, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, rollback(tx, query, fmt.Errorf("failed to get rows affected: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, &QueryError{Statement: query, Err: fmt.Errorf("failed to commit: %w", err)}
	}

	return &Result{RowsAffected: affected}, nil
}

// rollback never fails; its outcome is recorded on the returned error
func rollback(tx *sql.Tx, query string, cause error) *QueryError {
	qerr := &QueryError{Statement: query, Err: cause}
	if err := tx.Rollback(); err != nil {
		qerr.RollbackErr = err
		logger.Warn("rollback failed", "error", err)
	} else {
		qerr.RolledBack = true
	}
	return qerr
}

func collect(ctx context.Context, db *sql.DB, query string, params []any) (RowSet, error) {
	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	set := RowSet{}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		set = append(set, NewRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return set, nil
}
