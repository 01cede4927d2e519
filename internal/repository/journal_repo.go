package repository

import (
	"context"
	"fmt"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// JournalRepository handles storage of journal entries
type JournalRepository struct {
	entries collection[models.JournalEntry]
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(s store.Store) *JournalRepository {
	return &JournalRepository{entries: collection[models.JournalEntry]{
		store: s,
		key:   store.KeyJournalEntries,
		id:    func(e *models.JournalEntry) string { return e.ID },
	}}
}

// CreateEntry appends a journal entry
func (r *JournalRepository) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	if err := r.entries.insert(ctx, *entry); err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// UpdateEntry overwrites the entry with the same id
func (r *JournalRepository) UpdateEntry(ctx context.Context, entry *models.JournalEntry) error {
	if err := r.entries.replace(ctx, *entry); err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return nil
}

// GetEntryByID retrieves an entry, or nil
func (r *JournalRepository) GetEntryByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	entry, err := r.entries.getByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return entry, nil
}

// GetFamilyEntries returns the family's entries in stored order
func (r *JournalRepository) GetFamilyEntries(ctx context.Context, familyID string) ([]models.JournalEntry, error) {
	entries, err := r.entries.filter(ctx, func(e *models.JournalEntry) bool { return e.FamilyID == familyID })
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}
	return entries, nil
}
