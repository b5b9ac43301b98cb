package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores one JSON document per slot as <dir>/<slot>.json.
// It is the default persistence mechanism.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file backend rooted at dir, creating the
// directory when it does not exist yet.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Save writes the document to the slot's file.
func (b *FileBackend) Save(_ context.Context, slot string, document []byte) error {
	path, err := b.slotPath(slot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, document, 0644); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

// Load reads the slot's file, returning ErrSlotNotFound when it was never
// saved.
func (b *FileBackend) Load(_ context.Context, slot string) ([]byte, error) {
	path, err := b.slotPath(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("slot %s: %w", slot, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

func (b *FileBackend) slotPath(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\`) {
		return "", fmt.Errorf("invalid slot name '%s'", slot)
	}
	return filepath.Join(b.dir, slot+".json"), nil
}
