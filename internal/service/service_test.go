package service

import (
	"context"
	"testing"
	"time"

	"fambalance/internal/catalog"
	"fambalance/internal/models"
	"fambalance/internal/repository"
	"fambalance/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock shared by every service in a testEnv
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) AddDays(n int) { c.t = c.t.AddDate(0, 0, n) }

type testEnv struct {
	store *store.MemoryStore
	clock *testClock

	users       *repository.UserRepository
	families    *repository.FamilyRepository
	moods       *repository.MoodRepository
	missions    *repository.UserMissionRepository
	journal     *repository.JournalRepository
	connections *repository.ConnectionRepository
	reports     *repository.ReportRepository
	sessions    *repository.SessionRepository

	auth       *AuthService
	mood       *MoodService
	mission    *MissionService
	journalSvc *JournalService
	connection *ConnectionService
	report     *ReportService
	backup     *BackupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.NewMemoryStore()
	clock := &testClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	log := zerolog.Nop()
	cat := catalog.Default()

	env := &testEnv{
		store:       s,
		clock:       clock,
		users:       repository.NewUserRepository(s),
		families:    repository.NewFamilyRepository(s),
		moods:       repository.NewMoodRepository(s),
		missions:    repository.NewUserMissionRepository(s),
		journal:     repository.NewJournalRepository(s),
		connections: repository.NewConnectionRepository(s),
		reports:     repository.NewReportRepository(s),
		sessions:    repository.NewSessionRepository(s),
	}

	env.auth = NewAuthService(env.users, env.families, env.sessions, nil, clock.Now, log)
	env.auth.DefaultAvatar = cat.DefaultAvatars[0]
	env.mood = NewMoodService(env.moods, clock.Now, log)
	env.mission = NewMissionService(cat, env.users, env.families, env.moods, env.missions, clock.Now, log)
	env.journalSvc = NewJournalService(env.journal, clock.Now, log)
	env.connection = NewConnectionService(env.connections, env.users, cat.ConnectionSuggestions, firstPicker, clock.Now, log)
	env.report = NewReportService(env.reports, env.moods, env.families, env.users, nil, cat.FallbackRecommendations, clock.Now, log)
	env.backup = NewBackupService(s, clock.Now, log)
	return env
}

func firstPicker(options []string) string {
	return options[0]
}

// registerMelo registers the reference family with Ana as admin
func (e *testEnv) registerMelo(t *testing.T) *RegisterFamilyResult {
	t.Helper()
	res, err := e.auth.RegisterFamily(context.Background(), RegisterFamilyInput{
		FamilyName:     "Família Melo",
		AdminEmail:     "ana@melo.com",
		FamilyPassword: "secret1",
		Admin: models.Profile{
			Name:      "Ana",
			BirthDate: "1985-03-02",
			Gender:    models.GenderFemale,
		},
	})
	require.NoError(t, err)
	return res
}

// expireTrial turns the family into a plain free family
func (e *testEnv) expireTrial(t *testing.T, familyID string) {
	t.Helper()
	ctx := context.Background()
	family, err := e.families.GetFamilyByID(ctx, familyID)
	require.NoError(t, err)
	require.NotNil(t, family)
	family.TrialEndsAt = nil
	family.IsPremium = false
	require.NoError(t, e.families.UpdateFamily(ctx, family))
}
