package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"fambalance/internal/store"

	"github.com/rs/zerolog"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the complete export document. Each namespace holds its raw
// JSON array as stored.
type BackupData struct {
	Version    string                     `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Namespaces map[string]json.RawMessage `json:"namespaces"`
}

// BackupService handles export, restore and wipe of the whole store
type BackupService struct {
	store store.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(s store.Store, now func() time.Time, log zerolog.Logger) *BackupService {
	if now == nil {
		now = time.Now
	}
	return &BackupService{store: s, now: now, log: log.With().Str("component", "backup").Logger()}
}

// Snapshot collects every namespace. Namespaces never written are exported
// as empty arrays.
func (s *BackupService) Snapshot(ctx context.Context) (*BackupData, error) {
	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: s.now().UTC(),
		Namespaces: make(map[string]json.RawMessage, len(store.Namespaces())),
	}

	for _, key := range store.Namespaces() {
		raw, err := s.store.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) || (err == nil && len(raw) == 0) {
			raw = []byte("[]")
		} else if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", key, err)
		}
		backup.Namespaces[key] = json.RawMessage(raw)
	}
	return backup, nil
}

// Export writes the backup document to w
func (s *BackupService) Export(ctx context.Context, w io.Writer) error {
	backup, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info().Int("namespaces", len(backup.Namespaces)).Msg("store exported")
	return nil
}

// ExportFile writes the backup document to path
func (s *BackupService) ExportFile(ctx context.Context, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.Export(ctx, file); err != nil {
		return err
	}
	return file.Close()
}

// Import restores the namespaces present in the document read from r,
// overwriting them. Unknown namespaces and non-array values are rejected
// before anything is written.
func (s *BackupService) Import(ctx context.Context, r io.Reader) ([]string, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	known := store.Namespaces()
	keys := make([]string, 0, len(backup.Namespaces))
	for key, raw := range backup.Namespaces {
		if !slices.Contains(known, key) {
			return nil, fmt.Errorf("unknown namespace %q in backup", key)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("namespace %s is not an array: %w", key, err)
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := s.store.Set(ctx, key, backup.Namespaces[key]); err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", key, err)
		}
	}

	s.log.Info().
		Str("version", backup.Version).
		Time("exported_at", backup.ExportedAt).
		Strs("namespaces", keys).
		Msg("store imported")
	return keys, nil
}

// ImportFile restores from the backup document at path
func (s *BackupService) ImportFile(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.Import(ctx, file)
}

// Wipe deletes every namespace and both session pointers
func (s *BackupService) Wipe(ctx context.Context) error {
	keys := append(store.Namespaces(), store.SessionKeys()...)
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	s.log.Warn().Int("keys", len(keys)).Msg("store wiped")
	return nil
}
