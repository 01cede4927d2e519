package repository

import (
	"context"
	"fmt"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// ConnectionRepository handles storage of connection moments
type ConnectionRepository struct {
	moments collection[models.ConnectionMoment]
}

// NewConnectionRepository creates a new connection moment repository
func NewConnectionRepository(s store.Store) *ConnectionRepository {
	return &ConnectionRepository{moments: collection[models.ConnectionMoment]{
		store: s,
		key:   store.KeyConnectionMoments,
		id:    func(m *models.ConnectionMoment) string { return m.ID },
	}}
}

// CreateMoment appends a connection moment
func (r *ConnectionRepository) CreateMoment(ctx context.Context, moment *models.ConnectionMoment) error {
	if err := r.moments.insert(ctx, *moment); err != nil {
		return fmt.Errorf("failed to create connection moment: %w", err)
	}
	return nil
}

// UpdateMoment overwrites the moment with the same id
func (r *ConnectionRepository) UpdateMoment(ctx context.Context, moment *models.ConnectionMoment) error {
	if err := r.moments.replace(ctx, *moment); err != nil {
		return fmt.Errorf("failed to update connection moment: %w", err)
	}
	return nil
}

// GetMomentByID retrieves a moment, or nil
func (r *ConnectionRepository) GetMomentByID(ctx context.Context, id string) (*models.ConnectionMoment, error) {
	moment, err := r.moments.getByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection moment: %w", err)
	}
	return moment, nil
}

// GetFamilyMoment returns the family's moment for date, or nil
func (r *ConnectionRepository) GetFamilyMoment(ctx context.Context, familyID, date string) (*models.ConnectionMoment, error) {
	moment, err := r.moments.find(ctx, func(m *models.ConnectionMoment) bool {
		return m.FamilyID == familyID && m.Date == date
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get connection moment: %w", err)
	}
	return moment, nil
}

// GetFamilyMoments returns every moment of the family in stored order
func (r *ConnectionRepository) GetFamilyMoments(ctx context.Context, familyID string) ([]models.ConnectionMoment, error) {
	moments, err := r.moments.filter(ctx, func(m *models.ConnectionMoment) bool { return m.FamilyID == familyID })
	if err != nil {
		return nil, fmt.Errorf("failed to get connection moments: %w", err)
	}
	return moments, nil
}
