package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores slot documents in a slots table. The document column
// carries the exact bytes the file backend would write.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (creating if needed) the database at dbPath and
// brings its schema up to date.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Close releases the underlying database handle.
func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Save upserts the document under the slot name.
func (b *SQLiteBackend) Save(ctx context.Context, slot string, document []byte) error {
	const query = `INSERT INTO slots (name, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`

	if _, err := b.db.ExecContext(ctx, query, slot, string(document), time.Now().UTC()); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Load reads the document saved under the slot name, returning
// ErrSlotNotFound when no row exists.
func (b *SQLiteBackend) Load(ctx context.Context, slot string) ([]byte, error) {
	const query = `SELECT document FROM slots WHERE name = ?`

	var document string
	err := b.db.QueryRowContext(ctx, query, slot).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("slot %s: %w", slot, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	return []byte(document), nil
}
