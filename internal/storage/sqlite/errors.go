// ABOUTME: Error types for strategic memory storage
// ABOUTME: InitError is fatal for the process; QueryError aborts a single operation
package sqlite

import (
	"errors"
	"fmt"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// InitError reports that the database directory, file, or schema could not
// be prepared. The store cannot operate after one.
type InitError struct {
	Op   string
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("storage init: %s (%s): %v", e.Op, e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// QueryError reports that a single statement failed. Its message carries the
// driver error text.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("storage query: %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func queryError(op string, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	var ie *InitError
	if errors.As(err, &ie) {
		return err
	}
	return &QueryError{Op: op, Err: err}
}

// isBusy reports whether err is transient lock contention on the database file.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		code := se.Code() & 0xff
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
