// Package store owns the authoritative income and expense collections and
// keeps them persisted under a named slot. Every mutation validates first,
// writes the full document through the configured backend, and only then
// commits to memory, so a failed save never leaves state half-applied.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Te4g/financial-tracker/internal/backup"
	"github.com/Te4g/financial-tracker/internal/logging"
	"github.com/Te4g/financial-tracker/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	// ErrEntryNotFound is returned when no entry carries the requested id.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrDuplicateEntry is returned when an added entry reuses an existing id.
	ErrDuplicateEntry = errors.New("duplicate entry id")
)

// EntryUpdate carries the fields of a partial update. Nil fields are left
// unchanged; the entry type itself cannot be changed.
type EntryUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Frequency   *models.Frequency
	Date        *models.Date
	Taxes       *[]models.TaxElement
}

// EntryStore holds the entry collections in memory and persists them through
// a Backend on every mutation.
type EntryStore struct {
	mu       sync.Mutex
	backend  Backend
	slot     string
	income   []models.Entry
	expenses []models.Entry
}

// New creates a store persisting under the named slot. Call Restore before
// first use to load any previously saved state.
func New(backend Backend, slot string) *EntryStore {
	return &EntryStore{backend: backend, slot: slot}
}

// Restore loads the slot's saved document into memory. A slot that was never
// saved yields empty collections. A document that fails structural validation
// is rejected and the in-memory state is left untouched.
func (s *EntryStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Load(ctx, s.slot)
	if errors.Is(err, ErrSlotNotFound) {
		log.WithField(logging.FieldSlot, s.slot).Info("No saved state found, starting empty")
		s.income = nil
		s.expenses = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore entries: %w", err)
	}

	doc, err := backup.Decode(data)
	if err != nil {
		return fmt.Errorf("restore entries: %w", err)
	}

	s.income = doc.Income
	s.expenses = doc.Expenses
	log.WithFields(logrus.Fields{
		logging.FieldSlot:  s.slot,
		logging.FieldCount: len(s.income) + len(s.expenses),
	}).Debug("Restored entries")
	return nil
}

// Persist writes the current collections to the backend.
func (s *EntryStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, s.income, s.expenses)
}

// List returns a copy of the collection for the given entry type.
func (s *EntryStore) List(entryType models.EntryType) []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryType == models.Expense {
		return append([]models.Entry(nil), s.expenses...)
	}
	return append([]models.Entry(nil), s.income...)
}

// Snapshot returns a copy of both collections as a backup document.
func (s *EntryStore) Snapshot() backup.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return backup.Document{
		Income:   append([]models.Entry(nil), s.income...),
		Expenses: append([]models.Entry(nil), s.expenses...),
	}
}

// Add validates the entry, appends it to its collection and persists.
func (s *EntryStore) Add(ctx context.Context, entry models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	if s.contains(entry.ID) {
		return fmt.Errorf("entry '%s': %w", entry.ID, ErrDuplicateEntry)
	}

	income, expenses := s.income, s.expenses
	if entry.Type == models.Expense {
		expenses = append(append([]models.Entry(nil), expenses...), entry)
	} else {
		income = append(append([]models.Entry(nil), income...), entry)
	}
	if err := s.commit(ctx, income, expenses); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		logging.FieldEntryID:   entry.ID,
		logging.FieldEntryType: entry.Type,
	}).Info("Added entry")
	return nil
}

// AddAll validates and appends a batch of entries, persisting once. Either
// the whole batch is accepted or none of it. Returns the number appended.
func (s *EntryStore) AddAll(ctx context.Context, entries []models.Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return 0, fmt.Errorf("invalid entry '%s': %w", entry.ID, err)
		}
		if _, dup := seen[entry.ID]; dup || s.contains(entry.ID) {
			return 0, fmt.Errorf("entry '%s': %w", entry.ID, ErrDuplicateEntry)
		}
		seen[entry.ID] = struct{}{}
	}

	income := append([]models.Entry(nil), s.income...)
	expenses := append([]models.Entry(nil), s.expenses...)
	for _, entry := range entries {
		if entry.Type == models.Expense {
			expenses = append(expenses, entry)
		} else {
			income = append(income, entry)
		}
	}
	if err := s.commit(ctx, income, expenses); err != nil {
		return 0, err
	}

	log.WithField(logging.FieldCount, len(entries)).Info("Added entries")
	return len(entries), nil
}

// Remove deletes the entry with the given id and persists.
func (s *EntryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	income := append([]models.Entry(nil), s.income...)
	expenses := append([]models.Entry(nil), s.expenses...)
	if i := findEntry(income, id); i >= 0 {
		income = append(income[:i], income[i+1:]...)
	} else if i := findEntry(expenses, id); i >= 0 {
		expenses = append(expenses[:i], expenses[i+1:]...)
	} else {
		return fmt.Errorf("entry '%s': %w", id, ErrEntryNotFound)
	}

	if err := s.commit(ctx, income, expenses); err != nil {
		return err
	}
	log.WithField(logging.FieldEntryID, id).Info("Removed entry")
	return nil
}

// Update applies the provided fields to the entry with the given id,
// validates the result and persists. On any failure the stored entry is
// left as it was.
func (s *EntryStore) Update(ctx context.Context, id string, update EntryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	income := append([]models.Entry(nil), s.income...)
	expenses := append([]models.Entry(nil), s.expenses...)

	collection := income
	i := findEntry(collection, id)
	if i < 0 {
		collection = expenses
		i = findEntry(collection, id)
	}
	if i < 0 {
		return fmt.Errorf("entry '%s': %w", id, ErrEntryNotFound)
	}

	entry := collection[i]
	if update.Description != nil {
		entry.Description = *update.Description
	}
	if update.Amount != nil {
		entry.Amount = *update.Amount
	}
	if update.Frequency != nil {
		entry.Frequency = *update.Frequency
	}
	if update.Date != nil {
		entry.Date = *update.Date
	}
	if update.Taxes != nil {
		entry.Taxes = *update.Taxes
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	collection[i] = entry

	if err := s.commit(ctx, income, expenses); err != nil {
		return err
	}
	log.WithField(logging.FieldEntryID, id).Info("Updated entry")
	return nil
}

// ReplaceAll swaps in the document's collections wholesale and persists.
// Used by the backup restore and import paths. On any validation failure
// the existing state is left untouched.
func (s *EntryStore) ReplaceAll(ctx context.Context, doc backup.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(doc.Income)+len(doc.Expenses))
	for _, entry := range append(append([]models.Entry(nil), doc.Income...), doc.Expenses...) {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("invalid entry '%s': %w", entry.ID, err)
		}
		if _, dup := seen[entry.ID]; dup {
			return fmt.Errorf("entry '%s': %w", entry.ID, ErrDuplicateEntry)
		}
		seen[entry.ID] = struct{}{}
	}

	income := append([]models.Entry(nil), doc.Income...)
	expenses := append([]models.Entry(nil), doc.Expenses...)
	if err := s.commit(ctx, income, expenses); err != nil {
		return err
	}

	log.WithField(logging.FieldCount, len(income)+len(expenses)).Info("Replaced all entries")
	return nil
}

// commit persists the given collections and adopts them on success.
// Callers must hold the mutex.
func (s *EntryStore) commit(ctx context.Context, income, expenses []models.Entry) error {
	data, err := backup.Encode(backup.Document{Income: income, Expenses: expenses})
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.backend.Save(ctx, s.slot, data); err != nil {
		return fmt.Errorf("persist entries: %w", err)
	}
	s.income = income
	s.expenses = expenses
	return nil
}

func (s *EntryStore) contains(id string) bool {
	return findEntry(s.income, id) >= 0 || findEntry(s.expenses, id) >= 0
}

func findEntry(entries []models.Entry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}
