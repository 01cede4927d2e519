package service

import (
	"context"
	"time"

	"fambalance/internal/catalog"
	"fambalance/internal/models"
	"fambalance/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultFreeMissionLimit is the number of missions a free family member
// can complete per day
const DefaultFreeMissionLimit = 3

// MsgMissionNotFound is returned when completing an unknown mission
const MsgMissionNotFound = "Missão não encontrada."

// FilterAvailableMissions selects the missions offered to a user today.
// Catalog order is kept. Steps:
//  1. drop missions already completed today
//  2. drop premium missions unless premium
//  3. with a mood recorded, drop missions whose trigger list excludes it
//  4. for free users, keep at most freeLimit minus today's completions
func FilterAvailableMissions(all []models.Mission, completedToday []models.UserMission, premium bool, todayMood *models.Emotion, freeLimit int) []models.Mission {
	done := make(map[string]bool, len(completedToday))
	for _, um := range completedToday {
		done[um.MissionID] = true
	}

	available := []models.Mission{}
	for _, m := range all {
		if done[m.ID] {
			continue
		}
		if m.IsPremium && !premium {
			continue
		}
		if todayMood != nil && m.HasTrigger() && !m.TriggeredBy(*todayMood) {
			continue
		}
		available = append(available, m)
	}

	if !premium {
		remaining := max(0, freeLimit-len(completedToday))
		if len(available) > remaining {
			available = available[:remaining]
		}
	}
	return available
}

// MissionService offers and completes harmony missions
type MissionService struct {
	catalog         *catalog.Catalog
	userRepo        *repository.UserRepository
	familyRepo      *repository.FamilyRepository
	moodRepo        *repository.MoodRepository
	userMissionRepo *repository.UserMissionRepository
	now             func() time.Time
	log             zerolog.Logger

	FreeMissionLimit int
}

// NewMissionService creates a new mission service
func NewMissionService(cat *catalog.Catalog, userRepo *repository.UserRepository, familyRepo *repository.FamilyRepository, moodRepo *repository.MoodRepository, userMissionRepo *repository.UserMissionRepository, now func() time.Time, log zerolog.Logger) *MissionService {
	if now == nil {
		now = time.Now
	}
	return &MissionService{
		catalog:          cat,
		userRepo:         userRepo,
		familyRepo:       familyRepo,
		moodRepo:         moodRepo,
		userMissionRepo:  userMissionRepo,
		now:              now,
		log:              log.With().Str("component", "mission").Logger(),
		FreeMissionLimit: DefaultFreeMissionLimit,
	}
}

// Available lists today's missions for the user. Unknown users get none.
func (s *MissionService) Available(ctx context.Context, userID, familyID string) ([]models.Mission, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []models.Mission{}, nil
	}

	premium := false
	family, err := s.familyRepo.GetFamilyByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family != nil {
		premium = family.IsEffectivelyPremium(s.now())
	}

	date := todayDate(s.now)
	completed, err := s.userMissionRepo.GetCompletedOn(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	var todayMood *models.Emotion
	mood, err := s.moodRepo.GetMood(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if mood != nil {
		todayMood = &mood.Emotion
	}

	return FilterAvailableMissions(s.catalog.Missions, completed, premium, todayMood, s.FreeMissionLimit), nil
}

// Complete records the mission as done today and awards its points
func (s *MissionService) Complete(ctx context.Context, userID, missionID string) (*models.UserMission, error) {
	mission, ok := s.catalog.Mission(missionID)
	if !ok {
		return nil, notFound(MsgMissionNotFound)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(MsgUserNotFound)
	}

	um := &models.UserMission{
		ID:                  uuid.NewString(),
		UserID:              userID,
		MissionID:           mission.ID,
		Date:                todayDate(s.now),
		Completed:           true,
		HarmonyPointsEarned: mission.Points,
	}
	if err := s.userMissionRepo.CreateUserMission(ctx, um); err != nil {
		return nil, err
	}

	user.HarmonyPoints += mission.Points
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("mission_id", mission.ID).Int("points", mission.Points).Msg("mission completed")
	return um, nil
}

// CompletedToday lists the user's completions on date; an empty date means today
func (s *MissionService) CompletedToday(ctx context.Context, userID, date string) ([]models.UserMission, error) {
	if date == "" {
		date = todayDate(s.now)
	}
	return s.userMissionRepo.GetCompletedOn(ctx, userID, date)
}

// Catalog returns the full mission catalog in declaration order
func (s *MissionService) Catalog() []models.Mission {
	return s.catalog.Missions
}
