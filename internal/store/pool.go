// Package store is the database surface: connection pooling, the generic
// batched writer, retry-with-backoff, and the IN(...) lookup helper the
// lineage resolver uses. Grounded in the teacher's
// minis/08-http-client-retries for the retry shape, generalized from HTTP
// to SQL.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool wraps the shared *sql.DB connection pool. It is one of the two
// process-wide globals, owned by cmd/indexer/main.go and passed down by
// reference everywhere else.
type Pool struct {
	DB *sql.DB

	RetryCount        int
	RetryBaseDelay    time.Duration
	RetryMaxDelay     time.Duration
}

// Open opens a MySQL-dialect connection pool against dsn and verifies
// connectivity with a bounded ping.
func Open(ctx context.Context, dsn string, maxOpenConns int, retryCount int, retryBaseDelay, retryMaxDelay time.Duration) (*Pool, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	return &Pool{
		DB:             db,
		RetryCount:     retryCount,
		RetryBaseDelay: retryBaseDelay,
		RetryMaxDelay:  retryMaxDelay,
	}, nil
}

func (p *Pool) Close() error {
	return p.DB.Close()
}
