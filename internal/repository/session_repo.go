package repository

import (
	"context"
	"fmt"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// SessionRepository persists the current user and family pointers
type SessionRepository struct {
	store store.Store
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{store: s}
}

// GetSession reads both pointers; missing pointers are empty strings
func (r *SessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	userID, err := store.LoadString(ctx, r.store, store.KeyCurrentUserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	familyID, err := store.LoadString(ctx, r.store, store.KeyCurrentFamilyID)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return models.Session{UserID: userID, FamilyID: familyID}, nil
}

// SetSession writes both pointers
func (r *SessionRepository) SetSession(ctx context.Context, session models.Session) error {
	if err := store.SaveString(ctx, r.store, store.KeyCurrentUserID, session.UserID); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	if err := store.SaveString(ctx, r.store, store.KeyCurrentFamilyID, session.FamilyID); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// ClearSession removes both pointers
func (r *SessionRepository) ClearSession(ctx context.Context) error {
	for _, key := range store.SessionKeys() {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	return nil
}
