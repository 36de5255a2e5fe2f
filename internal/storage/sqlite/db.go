// ABOUTME: SQLite database connection and schema lifecycle management
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// inMemoryPath is the path reported by in-memory databases
const inMemoryPath = ":memory:"

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDataDir returns the default data directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	if dataHome == "" {
		return filepath.Join(".local", "share", "claudedirector")
	}
	return filepath.Join(dataHome, "claudedirector")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "strategic_memory.db")
}

// dsn builds the connection string with the pragmas every connection needs.
// busy_timeout makes a second process wait on the file lock instead of
// failing immediately.
func dsn(path string) string {
	return path + "?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(ON)"
}

// readOnlyDSN opens an existing file without changing it. No journal_mode
// pragma, so a rollback-journal database stays that way.
func readOnlyDSN(path string) string {
	return "file:" + path + "?mode=ro&_pragma=busy_timeout(5000)"
}

// Open opens or creates a SQLite database at the given path and applies the
// schema if it has not been applied yet.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &InitError{Op: "create data directory", Path: path, Err: err}
	}

	conn, err := openConn(path)
	if err != nil {
		return nil, &InitError{Op: "open database", Path: path, Err: err}
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, &InitError{Op: "apply schema", Path: path, Err: err}
	}

	return db, nil
}

// OpenInMemory creates an in-memory SQLite database (for testing)
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, &InitError{Op: "open database", Path: inMemoryPath, Err: err}
	}
	// Every new connection to :memory: is a new empty database.
	conn.SetMaxOpenConns(1)

	db := &DB{
		conn: conn,
		path: inMemoryPath,
	}

	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, &InitError{Op: "apply schema", Path: inMemoryPath, Err: err}
	}

	return db, nil
}

// openConn opens and pings a connection without touching the schema.
func openConn(path string) (*sql.DB, error) {
	return pingConn(dsn(path))
}

// openReadOnly opens an existing database for inspection only.
func openReadOnly(path string) (*sql.DB, error) {
	return pingConn(readOnlyDSN(path))
}

func pingConn(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// migrate applies the schema exactly once, using the schema_metadata table as
// the sentinel, then runs any forward migrations for older databases.
func (db *DB) migrate() error {
	exists, err := db.tableExists(metadataTable)
	if err != nil {
		return fmt.Errorf("checking schema sentinel: %w", err)
	}
	if !exists {
		return db.applySchema()
	}

	version, err := db.SchemaVersion()
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for v := version + 1; v <= SchemaVersion; v++ {
		stmt, ok := migrations[v]
		if !ok {
			continue
		}
		if err := db.applyMigration(v, stmt); err != nil {
			return fmt.Errorf("migrating to schema version %d: %w", v, err)
		}
	}
	return nil
}

func (db *DB) applySchema() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(Schema); err != nil {
		return err
	}
	if err := stampVersion(tx, SchemaVersion); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO schema_metadata (key, value) VALUES ('initialized_at', ?)`,
		formatTimestamp(time.Now())); err != nil {
		return err
	}
	return tx.Commit()
}

func (db *DB) applyMigration(version int, stmt string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(stmt); err != nil {
		return err
	}
	if err := stampVersion(tx, version); err != nil {
		return err
	}
	return tx.Commit()
}

func stampVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec(`
		INSERT INTO schema_metadata (key, value) VALUES ('schema_version', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, strconv.Itoa(version))
	return err
}

// SchemaVersion returns the version stamped in schema_metadata, or 0 when the
// stamp is missing.
func (db *DB) SchemaVersion() (int, error) {
	var raw string
	err := db.conn.QueryRow(`SELECT value FROM schema_metadata WHERE key = 'schema_version'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid schema_version %q", raw)
	}
	return v, nil
}

func (db *DB) tableExists(name string) (bool, error) {
	var found string
	err := db.conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB connection for advanced usage
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Begin starts a transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}
