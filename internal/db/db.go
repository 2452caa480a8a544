package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL store behind a *sql.DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect accepts the configured driver name.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unknown database driver %q (expected sqlite or postgres)", s)
	}
}

// Store is an open, migrated database and its dialect.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Conn returns the DBTX repositories should use outside a transaction.
func (s *Store) Conn() DBTX {
	return Bind(s.Dialect, s.DB)
}

// UnitOfWork returns a UnitOfWork over the store.
func (s *Store) UnitOfWork() UnitOfWork {
	return NewUnitOfWork(s.DB, s.Dialect)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Open opens the configured store: a SQLite file at path, or a PostgreSQL
// database at dsn.
func Open(ctx context.Context, dialect Dialect, path, dsn string) (*Store, error) {
	switch dialect {
	case DialectPostgres:
		db, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Store{DB: db, Dialect: DialectPostgres}, nil
	default:
		db, err := OpenDB(path)
		if err != nil {
			return nil, err
		}
		return &Store{DB: db, Dialect: DialectSQLite}, nil
	}
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to ":memory:" is its own database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// OpenPostgres connects to PostgreSQL through the pgx database/sql driver
// and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres driver requires a dsn (db.dsn)")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
