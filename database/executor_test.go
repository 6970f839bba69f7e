package database_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/clients-api/database"
	"github.com/blogem/clients-api/database/dbtest"
)

// recordingFactory keeps every handle it hands out so tests can check closure
type recordingFactory struct {
	inner   database.Factory
	handles []*sql.DB
}

func (f *recordingFactory) Open(ctx context.Context) (*sql.DB, error) {
	db, err := f.inner.Open(ctx)
	if err == nil {
		f.handles = append(f.handles, db)
	}
	return db, err
}

func (f *recordingFactory) assertAllClosed(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, f.handles)
	for _, db := range f.handles {
		assert.Error(t, db.Ping(), "connection should be closed")
	}
}

type failingFactory struct{ err error }

func (f failingFactory) Open(context.Context) (*sql.DB, error) {
	return nil, &database.ConnectionError{Err: f.err}
}

const insertClient = `INSERT INTO Clients (Name, Email, CreatedBy, CreatedAt) VALUES (@p1, @p2, @p3, @p4)`

func TestIsReadStatement(t *testing.T) {
	cases := map[string]bool{
		"SELECT * FROM Clients":                true,
		"  \n\tselect 1":                       true,
		"Select Name FROM Clients":             true,
		"INSERT INTO Clients VALUES (1)":       false,
		"UPDATE Clients SET Name = 'x'":        false,
		"WITH c AS (SELECT 1) SELECT * FROM c": false,
		"EXEC dbo.ListClients":                 false,
		"":                                     false,
	}

	for query, expected := range cases {
		assert.Equal(t, expected, database.IsReadStatement(query), "query %q", query)
	}
}

func TestExecuteWriteThenRead(t *testing.T) {
	factory := &recordingFactory{inner: dbtest.NewFactory(t)}
	exec := database.NewExecutor(factory)
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	res, err := exec.Execute(ctx, insertClient, "Acme", "ops@acme.test", "user-1", createdAt)
	require.NoError(t, err)
	assert.False(t, res.Read)
	assert.Equal(t, int64(1), res.RowsAffected)

	res, err = exec.Execute(ctx, "SELECT * FROM Clients ORDER BY CreatedAt DESC")
	require.NoError(t, err)
	assert.True(t, res.Read)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.Equal(t, []string{"Id", "Name", "Email", "CreatedBy", "CreatedAt"}, row.Columns())
	assert.Equal(t, "Acme", row.String("Name"))
	assert.Equal(t, "ops@acme.test", row.String("Email"))
	assert.Equal(t, "user-1", row.String("CreatedBy"))

	stored, ok := row.Get("CreatedAt")
	require.True(t, ok)
	storedTime, ok := stored.(time.Time)
	require.True(t, ok, "expected time.Time, got %T", stored)
	assert.True(t, createdAt.Equal(storedTime))

	factory.assertAllClosed(t)
}

func TestExecuteEmptyReadReturnsEmptyRowSet(t *testing.T) {
	exec := database.NewExecutor(dbtest.NewFactory(t))

	res, err := exec.Execute(context.Background(), "SELECT * FROM Clients")

	require.NoError(t, err)
	require.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)

	out, err := json.Marshal(res.Rows)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
}

func TestExecuteBindsMetacharactersVerbatim(t *testing.T) {
	factory := dbtest.NewFactory(t)
	exec := database.NewExecutor(factory)
	ctx := context.Background()

	names := []string{"O'Brien", "a'; DROP TABLE Clients; --", `"quoted" \ back`}
	for _, name := range names {
		_, err := exec.Execute(ctx, insertClient, name, name+"@example.test", "user-1", time.Now().UTC())
		require.NoError(t, err)
	}

	res, err := exec.Execute(ctx, "SELECT Name, Email FROM Clients WHERE Name = @p1", names[1])
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, names[1], res.Rows[0].String("Name"))
	assert.Equal(t, 3, dbtest.Count(t, factory, "Clients"))
}

func TestExecuteWriteFailureRollsBack(t *testing.T) {
	factory := &recordingFactory{inner: dbtest.NewFactory(t)}
	exec := database.NewExecutor(factory)

	_, err := exec.Execute(context.Background(), "INSERT INTO NoSuchTable (A) VALUES (@p1)", "x")

	var qerr *database.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Contains(t, err.Error(), "no such table")
	assert.True(t, qerr.RolledBack)
	assert.Nil(t, qerr.RollbackErr)
	factory.assertAllClosed(t)
}

func TestExecuteWriteFailureLeavesNoRows(t *testing.T) {
	factory := dbtest.NewFactory(t)
	exec := database.NewExecutor(factory)

	// NOT NULL violation on Email
	_, err := exec.Execute(context.Background(), insertClient, "Acme", nil, "user-1", time.Now().UTC())

	var qerr *database.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, 0, dbtest.Count(t, factory, "Clients"))
}

func TestExecuteReadFailure(t *testing.T) {
	factory := &recordingFactory{inner: dbtest.NewFactory(t)}
	exec := database.NewExecutor(factory)

	_, err := exec.Execute(context.Background(), "SELECT * FROM NoSuchTable")

	var qerr *database.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, "SELECT * FROM NoSuchTable", qerr.Statement)
	factory.assertAllClosed(t)
}

func TestExecuteConnectionFailure(t *testing.T) {
	exec := database.NewExecutor(failingFactory{err: errors.New("login timeout")})

	_, err := exec.Execute(context.Background(), "SELECT 1")

	var connErr *database.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Contains(t, err.Error(), "login timeout")

	var qerr *database.QueryError
	assert.False(t, errors.As(err, &qerr))
}

func TestExecuteCTEIsTreatedAsWrite(t *testing.T) {
	exec := database.NewExecutor(dbtest.NewFactory(t))

	res, err := exec.Execute(context.Background(), "WITH c AS (SELECT 1 AS n) SELECT n FROM c")

	require.NoError(t, err)
	assert.False(t, res.Read)
	assert.Nil(t, res.Rows)
}

func TestQueryErrorMessage(t *testing.T) {
	err := &database.QueryError{Err: errors.New("syntax error"), RollbackErr: errors.New("conn reset")}

	assert.Equal(t, "database error: syntax error (rollback failed: conn reset)", err.Error())
	assert.Equal(t, "database error: syntax error", (&database.QueryError{Err: errors.New("syntax error")}).Error())
}
