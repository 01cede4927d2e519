package service

import (
	"context"
	"time"

	"fambalance/internal/models"
	"fambalance/internal/repository"
	"fambalance/internal/validation"

	"github.com/rs/zerolog"
)

// MoodService records one mood per user per day
type MoodService struct {
	moodRepo *repository.MoodRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewMoodService creates a new mood service
func NewMoodService(moodRepo *repository.MoodRepository, now func() time.Time, log zerolog.Logger) *MoodService {
	if now == nil {
		now = time.Now
	}
	return &MoodService{
		moodRepo: moodRepo,
		now:      now,
		log:      log.With().Str("component", "mood").Logger(),
	}
}

// Save records today's mood for the user. A second save on the same day
// replaces the first.
func (s *MoodService) Save(ctx context.Context, userID, familyID string, emotion models.Emotion) (*models.DailyMood, error) {
	if err := validation.ValidateEmotion(emotion); err != nil {
		return nil, invalid(err)
	}
	if err := validation.Required("userId", userID); err != nil {
		return nil, invalid(err)
	}

	mood := &models.DailyMood{
		UserID:   userID,
		FamilyID: familyID,
		Date:     todayDate(s.now),
		Emotion:  emotion,
	}
	if err := s.moodRepo.UpsertMood(ctx, mood); err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", userID).Str("emotion", string(emotion)).Msg("mood saved")
	return mood, nil
}

// GetToday returns the user's mood for today, or nil
func (s *MoodService) GetToday(ctx context.Context, userID string) (*models.DailyMood, error) {
	return s.moodRepo.GetMood(ctx, userID, todayDate(s.now))
}

// GetFamilyDay returns the family's moods on date; an empty date means today
func (s *MoodService) GetFamilyDay(ctx context.Context, familyID, date string) ([]models.DailyMood, error) {
	if date == "" {
		date = todayDate(s.now)
	} else if _, err := models.ParseDate(date); err != nil {
		return nil, validationError("Data inválida: use o formato AAAA-MM-DD.", err)
	}
	return s.moodRepo.GetFamilyMoods(ctx, familyID, date)
}
