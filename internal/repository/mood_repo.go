package repository

import (
	"context"
	"errors"
	"fmt"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// MoodRepository handles storage of daily moods
type MoodRepository struct {
	moods collection[models.DailyMood]
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(s store.Store) *MoodRepository {
	return &MoodRepository{moods: collection[models.DailyMood]{
		store: s,
		key:   store.KeyDailyMoods,
		id:    func(m *models.DailyMood) string { return m.UserID + "|" + m.Date },
	}}
}

// UpsertMood stores the mood, replacing any record for the same user and date
func (r *MoodRepository) UpsertMood(ctx context.Context, mood *models.DailyMood) error {
	err := r.moods.replace(ctx, *mood)
	if errors.Is(err, ErrNotFound) {
		err = r.moods.insert(ctx, *mood)
	}
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

// GetMood returns the user's mood on date, or nil
func (r *MoodRepository) GetMood(ctx context.Context, userID, date string) (*models.DailyMood, error) {
	mood, err := r.moods.find(ctx, func(m *models.DailyMood) bool {
		return m.UserID == userID && m.Date == date
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get mood: %w", err)
	}
	return mood, nil
}

// GetFamilyMoods returns the family's moods recorded on date
func (r *MoodRepository) GetFamilyMoods(ctx context.Context, familyID, date string) ([]models.DailyMood, error) {
	return r.GetFamilyMoodsInRange(ctx, familyID, date, date)
}

// GetFamilyMoodsInRange returns the family's moods with start <= date <= end.
// Dates are YYYY-MM-DD so string order is calendar order.
func (r *MoodRepository) GetFamilyMoodsInRange(ctx context.Context, familyID, start, end string) ([]models.DailyMood, error) {
	moods, err := r.moods.filter(ctx, func(m *models.DailyMood) bool {
		return m.FamilyID == familyID && m.Date >= start && m.Date <= end
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get family moods: %w", err)
	}
	return moods, nil
}

// GetAllMoods returns every stored mood
func (r *MoodRepository) GetAllMoods(ctx context.Context) ([]models.DailyMood, error) {
	moods, err := r.moods.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get moods: %w", err)
	}
	return moods, nil
}
