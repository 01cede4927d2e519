// Package store is the key-value persistence port. Every namespace is a
// single key holding a JSON array; session pointers are plain strings.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Namespace keys
const (
	KeyUsers             = "famBalanceUsers"
	KeyFamilies          = "famBalanceFamilies"
	KeyDailyMoods        = "famBalanceDailyMoods"
	KeyUserMissions      = "famBalanceUserMissions"
	KeyJournalEntries    = "famBalanceJournalEntries"
	KeyConnectionMoments = "famBalanceConnectionMoments"
	KeyReports           = "famBalanceReports"

	KeyCurrentUserID   = "currentUserId"
	KeyCurrentFamilyID = "currentFamilyId"
)

// Namespaces lists every collection key in a stable order
func Namespaces() []string {
	return []string{
		KeyUsers,
		KeyFamilies,
		KeyDailyMoods,
		KeyUserMissions,
		KeyJournalEntries,
		KeyConnectionMoments,
		KeyReports,
	}
}

// SessionKeys lists the session pointer keys
func SessionKeys() []string {
	return []string{KeyCurrentUserID, KeyCurrentFamilyID}
}

// ErrNotFound is returned by Get when the key has never been set
var ErrNotFound = errors.New("key not found")

// Store is a flat get/set-by-key store of opaque values
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// LoadList decodes the JSON array at key. A missing key is an empty list.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}

// SaveList replaces the whole array at key
func SaveList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadString reads a pointer value. A missing key is "".
func LoadString(ctx context.Context, s Store, key string) (string, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", key, err)
	}
	return string(raw), nil
}

// SaveString writes a pointer value
func SaveString(ctx context.Context, s Store, key, value string) error {
	if err := s.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
