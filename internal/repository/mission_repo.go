package repository

import (
	"context"
	"fmt"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// UserMissionRepository handles the append-only log of mission completions
type UserMissionRepository struct {
	completions collection[models.UserMission]
}

// NewUserMissionRepository creates a new user mission repository
func NewUserMissionRepository(s store.Store) *UserMissionRepository {
	return &UserMissionRepository{completions: collection[models.UserMission]{
		store: s,
		key:   store.KeyUserMissions,
		id:    func(m *models.UserMission) string { return m.ID },
	}}
}

// CreateUserMission appends a completion record
func (r *UserMissionRepository) CreateUserMission(ctx context.Context, um *models.UserMission) error {
	if err := r.completions.insert(ctx, *um); err != nil {
		return fmt.Errorf("failed to record mission: %w", err)
	}
	return nil
}

// GetCompletedOn returns the user's completed missions on date
func (r *UserMissionRepository) GetCompletedOn(ctx context.Context, userID, date string) ([]models.UserMission, error) {
	ums, err := r.completions.filter(ctx, func(m *models.UserMission) bool {
		return m.UserID == userID && m.Date == date && m.Completed
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get completed missions: %w", err)
	}
	return ums, nil
}

// GetUserMissions returns the user's whole completion history
func (r *UserMissionRepository) GetUserMissions(ctx context.Context, userID string) ([]models.UserMission, error) {
	ums, err := r.completions.filter(ctx, func(m *models.UserMission) bool { return m.UserID == userID })
	if err != nil {
		return nil, fmt.Errorf("failed to get user missions: %w", err)
	}
	return ums, nil
}
