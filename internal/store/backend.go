package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrSlotNotFound is returned by Backend.Load when the named slot has never
// been saved. Callers treat it as empty state, not as a failure.
var ErrSlotNotFound = errors.New("slot not found")

// Backend persists the serialized entry document under a named slot.
// Both implementations store the identical JSON byte shape, so switching
// backends never changes the document format.
type Backend interface {
	Save(ctx context.Context, slot string, document []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendType selects the persistence mechanism.
type BackendType string

const (
	FileBackendType   BackendType = "file"
	SQLiteBackendType BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackendType, SQLiteBackendType:
		return true
	default:
		return false
	}
}

// BackendConfig holds configuration for backend creation.
type BackendConfig struct {
	Type BackendType

	// File backend specific
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string
}

// NewBackend creates a backend instance based on the provided config and
// returns it together with an optional cleanup function.
func NewBackend(config BackendConfig) (Backend, CleanupFunc, error) {
	if !config.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid storage backend: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackendType:
		backend, err := NewSQLiteBackend(config.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
		}
		log.WithField("db_path", config.SQLiteDBPath).Info("Initialized SQLite backend")
		return backend, backend.Close, nil
	default:
		backend, err := NewFileBackend(config.DataDirectory)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize file backend: %w", err)
		}
		log.WithField("data_directory", config.DataDirectory).Info("Initialized file backend")
		return backend, nil, nil
	}
}
