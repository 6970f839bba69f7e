package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	mssql "github.com/microsoft/go-mssqldb"

	"github.com/blogem/clients-api/authenticator"
	"github.com/blogem/clients-api/config"
)

// Factory opens database connections. Every call returns a fresh handle bound
// to a single connection which the caller must Close.
type Factory interface {
	Open(ctx context.Context) (*sql.DB, error)
}

// ConnectionError reports that a database connection could not be established
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to establish database connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewFactory selects a factory for the configured mode. Missing settings are
// reported as *config.ConfigError before any network call is made.
func NewFactory(cfg config.DatabaseConfig, tokens authenticator.Provider) (Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Mode() {
	case config.ModeSQLite:
		return NewSQLiteFactory(cfg.SQLitePath), nil
	case config.ModeCredential:
		if tokens == nil {
			return nil, errors.New("credential mode requires a token provider")
		}
		return &SQLServerFactory{cfg: cfg, tokens: tokens}, nil
	default:
		return &SQLServerFactory{cfg: cfg}, nil
	}
}

// SQLServerFactory connects to SQL Server / Azure SQL, either with static
// credentials or with an access token from the credential provider
type SQLServerFactory struct {
	cfg    config.DatabaseConfig
	tokens authenticator.Provider
}

// Open builds a connector for this call and verifies the connection
func (f *SQLServerFactory) Open(ctx context.Context) (*sql.DB, error) {
	connector, err := f.connector(ctx)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return establish(ctx, sql.OpenDB(connector), f.cfg.ConnectTimeout)
}

func (f *SQLServerFactory) connector(ctx context.Context) (driver.Connector, error) {
	if f.tokens == nil {
		return mssql.NewConnector(BuildDSN(f.cfg, true))
	}

	// The driver sends the token in the FEDAUTH login feature, UTF-16LE
	// encoded with a length prefix, so no password is needed
	return mssql.NewAccessTokenConnector(BuildDSN(f.cfg, false), func() (string, error) {
		return f.accessToken(ctx)
	})
}

// accessToken acquires a token for the database scope, refusing one that has
// already expired
func (f *SQLServerFactory) accessToken(ctx context.Context) (string, error) {
	tok, err := f.tokens.AcquireToken(ctx, authenticator.DatabaseScope)
	if err != nil {
		return "", err
	}
	if tok.Expired(time.Now()) {
		return "", &authenticator.AuthenticationError{
			Scope: authenticator.DatabaseScope,
			Err:   errors.New("token is already expired"),
		}
	}
	return tok.AccessToken, nil
}

// BuildDSN renders a sqlserver:// URL enforcing encryption with certificate
// validation. Credentials are included only when withCredentials is set.
func BuildDSN(cfg config.DatabaseConfig, withCredentials bool) string {
	host, port := splitServer(cfg.Server, cfg.Port)

	query := url.Values{}
	query.Add("database", cfg.Name)
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	if cfg.ConnectTimeout > 0 {
		query.Add("connection timeout", strconv.Itoa(int(cfg.ConnectTimeout/time.Second)))
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		RawQuery: query.Encode(),
	}
	if withCredentials {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}

// splitServer accepts "host", "tcp:host" and "tcp:host,port" forms
func splitServer(server string, defaultPort int) (string, int) {
	host := strings.TrimPrefix(strings.TrimSpace(server), "tcp:")
	port := defaultPort
	if i := strings.LastIndex(host, ","); i != -1 {
		if p, err := strconv.Atoi(strings.TrimSpace(host[i+1:])); err == nil {
			port = p
		}
		host = host[:i]
	}
	if port == 0 {
		port = 1433
	}
	return host, port
}

// establish limits the handle to one connection and opens it eagerly so
// connection failures surface here rather than on the first statement
func establish(ctx context.Context, db *sql.DB, timeout time.Duration) (*sql.DB, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{Err: err}
	}
	return db, nil
}
