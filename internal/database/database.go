// Package database provides the document-store abstraction for Camp.
//
// The Database interface wraps SurrealDB behind three query methods:
//   - Query: multiple results (SELECT returning lists)
//   - QueryOne: a single record (SELECT by ID)
//   - Execute: mutations with no interesting result
//
// Multi-statement writes that must succeed together go through AtomicBatch,
// which wraps the statements in BEGIN TRANSACTION / COMMIT TRANSACTION and
// sends them as one request. Statements accumulate in memory until Execute;
// there is no isolation between Add calls.
//
// Standard errors cover the common failure cases and are meant to be checked
// with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // record does not exist
//	}
package database

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the store.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the interface for document-store operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database connection settings
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
