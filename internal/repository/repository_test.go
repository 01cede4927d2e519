package repository

import (
	"context"
	"testing"

	"fambalance/internal/models"
	"fambalance/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryStore())

	ana := models.User{ID: "u1", Name: "Ana", FamilyID: "f1", Email: "Ana@Example.com", Role: models.RoleAdmin}
	bia := models.User{ID: "u2", Name: "Bia", FamilyID: "f1", Role: models.RoleMember}
	otherAna := models.User{ID: "u3", Name: "Ana", FamilyID: "f2", Role: models.RoleMember}
	for _, u := range []models.User{ana, bia, otherAna} {
		require.NoError(t, repo.CreateUser(ctx, &u))
	}

	got, err := repo.GetUserByID(ctx, "u2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bia", got.Name)

	missing, err := repo.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byEmail, err := repo.GetUserByEmail(ctx, " ana@example.com ")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	noEmail, err := repo.GetUserByEmail(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, noEmail)

	named, err := repo.GetUsersByName(ctx, "Ana")
	require.NoError(t, err)
	assert.Len(t, named, 2)

	member, err := repo.GetFamilyMemberByName(ctx, "f2", "Ana")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "u3", member.ID)

	ordered, err := repo.GetUsersByIDs(ctx, []string{"u2", "ghost", "u1"})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "u2", ordered[0].ID)
	assert.Equal(t, "u1", ordered[1].ID)

	bia.HarmonyPoints = 15
	require.NoError(t, repo.UpdateUser(ctx, &bia))
	got, err = repo.GetUserByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 15, got.HarmonyPoints)

	err = repo.UpdateUser(ctx, &models.User{ID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFamilyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFamilyRepository(store.NewMemoryStore())

	family := models.Family{ID: "f1", Name: "Família Melo", InviteCode: "AB12CD", AdminID: "u1", MemberIDs: []string{"u1"}}
	require.NoError(t, repo.CreateFamily(ctx, &family))

	byName, err := repo.GetFamilyByName(ctx, "Família Melo")
	require.NoError(t, err)
	require.NotNil(t, byName)

	byCode, err := repo.GetFamilyByInviteCode(ctx, "ab12cd")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, "f1", byCode.ID)

	family.MemberIDs = append(family.MemberIDs, "u2")
	require.NoError(t, repo.UpdateFamily(ctx, &family))
	got, err := repo.GetFamilyByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, got.MemberIDs)

	assert.ErrorIs(t, repo.UpdateFamily(ctx, &models.Family{ID: "f9"}), ErrNotFound)
}

func TestMoodRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewMoodRepository(s)

	require.NoError(t, repo.UpsertMood(ctx, &models.DailyMood{UserID: "u1", FamilyID: "f1", Date: "2024-05-10", Emotion: models.EmotionHappy}))
	require.NoError(t, repo.UpsertMood(ctx, &models.DailyMood{UserID: "u1", FamilyID: "f1", Date: "2024-05-10", Emotion: models.EmotionSad}))
	require.NoError(t, repo.UpsertMood(ctx, &models.DailyMood{UserID: "u1", FamilyID: "f1", Date: "2024-05-11", Emotion: models.EmotionNeutral}))

	all, err := repo.GetAllMoods(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	today, err := repo.GetMood(ctx, "u1", "2024-05-10")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, models.EmotionSad, today.Emotion)
}

func TestMoodRepositoryRange(t *testing.T) {
	ctx := context.Background()
	repo := NewMoodRepository(store.NewMemoryStore())

	for _, m := range []models.DailyMood{
		{UserID: "u1", FamilyID: "f1", Date: "2024-05-01", Emotion: models.EmotionHappy},
		{UserID: "u1", FamilyID: "f1", Date: "2024-05-08", Emotion: models.EmotionHappy},
		{UserID: "u2", FamilyID: "f1", Date: "2024-05-08", Emotion: models.EmotionSad},
		{UserID: "u3", FamilyID: "f2", Date: "2024-05-08", Emotion: models.EmotionSad},
		{UserID: "u1", FamilyID: "f1", Date: "2024-05-09", Emotion: models.EmotionAnxious},
	} {
		require.NoError(t, repo.UpsertMood(ctx, &m))
	}

	moods, err := repo.GetFamilyMoodsInRange(ctx, "f1", "2024-05-02", "2024-05-08")
	require.NoError(t, err)
	assert.Len(t, moods, 2)

	day, err := repo.GetFamilyMoods(ctx, "f1", "2024-05-09")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, models.EmotionAnxious, day[0].Emotion)
}

func TestUserMissionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMissionRepository(store.NewMemoryStore())

	for _, um := range []models.UserMission{
		{ID: "1", UserID: "u1", MissionID: "m1", Date: "2024-05-10", Completed: true},
		{ID: "2", UserID: "u1", MissionID: "m2", Date: "2024-05-10", Completed: true},
		{ID: "3", UserID: "u1", MissionID: "m3", Date: "2024-05-09", Completed: true},
		{ID: "4", UserID: "u2", MissionID: "m1", Date: "2024-05-10", Completed: true},
	} {
		require.NoError(t, repo.CreateUserMission(ctx, &um))
	}

	done, err := repo.GetCompletedOn(ctx, "u1", "2024-05-10")
	require.NoError(t, err)
	assert.Len(t, done, 2)

	history, err := repo.GetUserMissions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestJournalAndConnectionRepositories(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	journal := NewJournalRepository(s)
	connections := NewConnectionRepository(s)

	entry := models.JournalEntry{ID: "j1", FamilyID: "f1", Text: "oi", Emotion: models.EmotionHappy}
	require.NoError(t, journal.CreateEntry(ctx, &entry))
	entry.ToggleReaction("u2", "💖")
	require.NoError(t, journal.UpdateEntry(ctx, &entry))

	got, err := journal.GetEntryByID(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, got.HasReaction("u2", "💖"))

	entries, err := journal.GetFamilyEntries(ctx, "f2")
	require.NoError(t, err)
	assert.Empty(t, entries)

	moment := models.ConnectionMoment{ID: "c1", FamilyID: "f1", Date: "2024-05-10", Suggestion: "Jantar sem telas"}
	require.NoError(t, connections.CreateMoment(ctx, &moment))

	today, err := connections.GetFamilyMoment(ctx, "f1", "2024-05-10")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, "c1", today.ID)

	tomorrow, err := connections.GetFamilyMoment(ctx, "f1", "2024-05-11")
	require.NoError(t, err)
	assert.Nil(t, tomorrow)

	assert.ErrorIs(t, connections.UpdateMoment(ctx, &models.ConnectionMoment{ID: "c9"}), ErrNotFound)
}

func TestReportRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(store.NewMemoryStore())

	require.NoError(t, repo.CreateReport(ctx, &models.Report{ID: "r1", FamilyID: "f1", EndDate: "2024-05-10"}))
	require.NoError(t, repo.CreateReport(ctx, &models.Report{ID: "r2", FamilyID: "f2", EndDate: "2024-05-10"}))

	reports, err := repo.GetFamilyReports(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, reports, 1)

	got, err := repo.GetReportByID(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "f2", got.FamilyID)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewSessionRepository(s)

	session, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.True(t, session.IsEmpty())

	require.NoError(t, repo.SetSession(ctx, models.Session{UserID: "u1", FamilyID: "f1"}))
	session, err = repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: "u1", FamilyID: "f1"}, session)

	raw, err := s.Get(ctx, store.KeyCurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, "u1", string(raw))

	require.NoError(t, repo.ClearSession(ctx))
	session, err = repo.GetSession(ctx)
	require.NoError(t, err)
	assert.True(t, session.IsEmpty())
}
