package repository

import (
	"context"
	"fmt"
	"strings"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// FamilyRepository handles storage of families
type FamilyRepository struct {
	families collection[models.Family]
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(s store.Store) *FamilyRepository {
	return &FamilyRepository{families: collection[models.Family]{
		store: s,
		key:   store.KeyFamilies,
		id:    func(f *models.Family) string { return f.ID },
	}}
}

// CreateFamily appends a new family
func (r *FamilyRepository) CreateFamily(ctx context.Context, family *models.Family) error {
	if err := r.families.insert(ctx, *family); err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}
	return nil
}

// UpdateFamily overwrites the family with the same id
func (r *FamilyRepository) UpdateFamily(ctx context.Context, family *models.Family) error {
	if err := r.families.replace(ctx, *family); err != nil {
		return fmt.Errorf("failed to update family: %w", err)
	}
	return nil
}

// GetFamilyByID retrieves a family by id, or nil when none exists
func (r *FamilyRepository) GetFamilyByID(ctx context.Context, id string) (*models.Family, error) {
	family, err := r.families.getByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

// GetFamilyByName finds a family by exact name
func (r *FamilyRepository) GetFamilyByName(ctx context.Context, name string) (*models.Family, error) {
	family, err := r.families.find(ctx, func(f *models.Family) bool { return f.Name == name })
	if err != nil {
		return nil, fmt.Errorf("failed to get family by name: %w", err)
	}
	return family, nil
}

// GetFamilyByInviteCode finds a family by invite code, ignoring case
func (r *FamilyRepository) GetFamilyByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	family, err := r.families.find(ctx, func(f *models.Family) bool {
		return strings.EqualFold(f.InviteCode, code)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get family by invite code: %w", err)
	}
	return family, nil
}

// GetAllFamilies returns every stored family
func (r *FamilyRepository) GetAllFamilies(ctx context.Context) ([]models.Family, error) {
	families, err := r.families.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get families: %w", err)
	}
	return families, nil
}
