package service

import (
	"context"
	"fmt"
	"time"

	"fambalance/internal/config"
	"fambalance/internal/credentials"
	"fambalance/internal/models"
	"fambalance/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultConnectionReward is the number of connection points per attendee
const DefaultConnectionReward = 25

// MsgMomentNotFound is returned for unknown connection moments
const MsgMomentNotFound = "Momento de conexão não encontrado."

// PointsMode selects how RecordAttendance adjusts a user's connection points
type PointsMode string

const (
	// PointsToggle adds the reward on attend and subtracts it otherwise,
	// independent of the previous flag
	PointsToggle PointsMode = config.PointsModeToggle
	// PointsReconcile applies only the change between the previous and new flag
	PointsReconcile PointsMode = config.PointsModeReconcile
)

// Picker chooses one suggestion from the list
type Picker func(options []string) string

// RandomPicker picks uniformly with crypto/rand, falling back to the first option
func RandomPicker(options []string) string {
	choice, err := credentials.RandomElement(options)
	if err != nil && len(options) > 0 {
		return options[0]
	}
	return choice
}

// ConnectionService manages the daily connection moment of each family
type ConnectionService struct {
	connectionRepo *repository.ConnectionRepository
	userRepo       *repository.UserRepository
	suggestions    []string
	pick           Picker
	now            func() time.Time
	log            zerolog.Logger

	Reward int
	Mode   PointsMode
}

// NewConnectionService creates a new connection service. pick defaults to RandomPicker.
func NewConnectionService(connectionRepo *repository.ConnectionRepository, userRepo *repository.UserRepository, suggestions []string, pick Picker, now func() time.Time, log zerolog.Logger) *ConnectionService {
	if pick == nil {
		pick = RandomPicker
	}
	if now == nil {
		now = time.Now
	}
	return &ConnectionService{
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		suggestions:    suggestions,
		pick:           pick,
		now:            now,
		log:            log.With().Str("component", "connection").Logger(),
		Reward:         DefaultConnectionReward,
		Mode:           PointsToggle,
	}
}

// GetOrCreateToday returns the family's moment for today, creating it with a
// random suggestion on the first call of the day
func (s *ConnectionService) GetOrCreateToday(ctx context.Context, familyID string) (*models.ConnectionMoment, error) {
	date := todayDate(s.now)

	existing, err := s.connectionRepo.GetFamilyMoment(ctx, familyID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if len(s.suggestions) == 0 {
		return nil, fmt.Errorf("no connection suggestions configured")
	}

	moment := &models.ConnectionMoment{
		ID:             uuid.NewString(),
		FamilyID:       familyID,
		Suggestion:     s.pick(s.suggestions),
		Date:           date,
		Participations: []models.Participation{},
	}
	if err := s.connectionRepo.CreateMoment(ctx, moment); err != nil {
		return nil, err
	}

	s.log.Debug().Str("family_id", familyID).Str("suggestion", moment.Suggestion).Msg("connection moment created")
	return moment, nil
}

// SetParticipation upserts the user's attendance and recomputes the
// moment's total. It returns the updated moment and the previous flag.
func (s *ConnectionService) SetParticipation(ctx context.Context, momentID, userID string, attended bool) (*models.ConnectionMoment, bool, error) {
	moment, err := s.connectionRepo.GetMomentByID(ctx, momentID)
	if err != nil {
		return nil, false, err
	}
	if moment == nil {
		return nil, false, notFound(MsgMomentNotFound)
	}

	previous, _ := moment.SetParticipation(userID, attended)
	moment.ConnectionPointsEarned = moment.AttendedCount() * s.Reward

	if err := s.connectionRepo.UpdateMoment(ctx, moment); err != nil {
		return nil, false, err
	}
	return moment, previous, nil
}

// RecordAttendance sets the participation and adjusts the user's connection
// points according to Mode. Unknown users only update the moment.
func (s *ConnectionService) RecordAttendance(ctx context.Context, momentID, userID string, attended bool) (*models.ConnectionMoment, error) {
	moment, previous, err := s.SetParticipation(ctx, momentID, userID, attended)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Warn().Str("user_id", userID).Str("moment_id", momentID).Msg("attendance recorded for unknown user")
		return moment, nil
	}

	delta := s.pointsDelta(previous, attended)
	if delta == 0 {
		return moment, nil
	}

	user.ConnectionPoints += delta
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("moment_id", momentID).Int("delta", delta).Msg("connection points updated")
	return moment, nil
}

func (s *ConnectionService) pointsDelta(previous, attended bool) int {
	if s.Mode == PointsReconcile {
		switch {
		case attended && !previous:
			return s.Reward
		case !attended && previous:
			return -s.Reward
		}
		return 0
	}
	if attended {
		return s.Reward
	}
	return -s.Reward
}

// History returns every moment of the family in creation order
func (s *ConnectionService) History(ctx context.Context, familyID string) ([]models.ConnectionMoment, error) {
	return s.connectionRepo.GetFamilyMoments(ctx, familyID)
}
