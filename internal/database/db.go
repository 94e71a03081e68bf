package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

// Database is the durable local key/value store backing the lock settings.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (creating if needed) the SQLite file at path and applies migrations.
func Open(ctx context.Context, path string) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &OpError{Op: "open", Resource: "database", Key: path, Err: err}
	}
	// One writer keeps read-modify-write of the settings row serialised.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, &OpError{Op: "open", Resource: "database", Key: path, Err: classifyOpenErr(err)}
	}

	d := &Database{DB: conn, dbFile: path}
	if err := d.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.DB, "migrations"); err != nil {
		return &OpError{Op: "migrate", Resource: "database", Key: d.dbFile, Err: classifyOpenErr(err)}
	}
	return nil
}

// Version returns the applied schema version.
func (d *Database) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, d.DB)
}

func (d *Database) Path() string {
	return d.dbFile
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func classifyOpenErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "file is not a database") {
		return fmt.Errorf("%w: %v", ErrDatabaseCorrupted, err)
	}
	return err
}
