package service

import (
	"context"
	"html"
	"sort"
	"strings"
	"time"

	"fambalance/internal/models"
	"fambalance/internal/repository"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// Journal messages
const (
	MsgJournalIncomplete = "Por favor, escreva algo e selecione uma emoção."
	MsgEntryNotFound     = "Entrada do diário não encontrada."
	MsgReactionRequired  = "Selecione uma reação."
)

// JournalService manages the shared family journal
type JournalService struct {
	journalRepo *repository.JournalRepository
	sanitizer   *bluemonday.Policy
	now         func() time.Time
	log         zerolog.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo *repository.JournalRepository, now func() time.Time, log zerolog.Logger) *JournalService {
	if now == nil {
		now = time.Now
	}
	return &JournalService{
		journalRepo: journalRepo,
		sanitizer:   bluemonday.StrictPolicy(),
		now:         now,
		log:         log.With().Str("component", "journal").Logger(),
	}
}

// SanitizeText strips every HTML element from text and trims it. Entities
// escaped by the policy are decoded again so plain text survives unchanged.
func (s *JournalService) SanitizeText(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(text)))
}

// AddEntry posts a journal entry dated today
func (s *JournalService) AddEntry(ctx context.Context, userID, familyID, text string, emotion models.Emotion) (*models.JournalEntry, error) {
	text = s.SanitizeText(text)
	if text == "" || !emotion.Valid() {
		return nil, validationError(MsgJournalIncomplete, nil)
	}

	entry := &models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		FamilyID:  familyID,
		Date:      todayDate(s.now),
		Text:      text,
		Emotion:   emotion,
		Reactions: []models.Reaction{},
	}
	if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Debug().Str("entry_id", entry.ID).Str("user_id", userID).Msg("journal entry added")
	return entry, nil
}

// ToggleReaction adds the user's emoji to the entry, or removes it when
// already present
func (s *JournalService) ToggleReaction(ctx context.Context, entryID, userID, emoji string) (*models.JournalEntry, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, validationError(MsgReactionRequired, nil)
	}

	entry, err := s.journalRepo.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFound(MsgEntryNotFound)
	}

	added := entry.ToggleReaction(userID, emoji)
	if err := s.journalRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Debug().Str("entry_id", entryID).Str("user_id", userID).Bool("added", added).Msg("reaction toggled")
	return entry, nil
}

// ListFamily returns the family's entries, newest date first. Entries on
// the same date keep their posting order.
func (s *JournalService) ListFamily(ctx context.Context, familyID string) ([]models.JournalEntry, error) {
	entries, err := s.journalRepo.GetFamilyEntries(ctx, familyID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}
