package models

import (
	"testing"
	"time"
)

func TestFamilyIsEffectivelyPremium(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name        string
		family      Family
		wantPremium bool
		wantDays    int
	}{
		{
			name:        "paid without trial",
			family:      Family{IsPremium: true},
			wantPremium: true,
			wantDays:    0,
		},
		{
			name:        "free with active trial",
			family:      Family{TrialEndsAt: &future},
			wantPremium: true,
			wantDays:    2,
		},
		{
			name:        "free with expired trial",
			family:      Family{TrialEndsAt: &past},
			wantPremium: false,
			wantDays:    0,
		},
		{
			name:        "free without trial",
			family:      Family{},
			wantPremium: false,
			wantDays:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.family.IsEffectivelyPremium(now); got != tt.wantPremium {
				t.Errorf("IsEffectivelyPremium() = %v, want %v", got, tt.wantPremium)
			}
			if got := tt.family.TrialDaysRemaining(now); got != tt.wantDays {
				t.Errorf("TrialDaysRemaining() = %v, want %v", got, tt.wantDays)
			}
		})
	}
}

func TestUserAge(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate string
		want      int
	}{
		{name: "birthday already passed", birthDate: "1990-01-01", want: 34},
		{name: "birthday today", birthDate: "2000-06-15", want: 24},
		{name: "birthday tomorrow", birthDate: "2000-06-16", want: 23},
		{name: "missing birth date", birthDate: "", want: 0},
		{name: "malformed birth date", birthDate: "15/06/2000", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{BirthDate: tt.birthDate}
			if got := u.Age(today); got != tt.want {
				t.Errorf("Age() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEmotion(t *testing.T) {
	tests := []struct {
		input  string
		want   Emotion
		wantOK bool
	}{
		{input: "😊 Feliz", want: EmotionHappy, wantOK: true},
		{input: "triste", want: EmotionSad, wantOK: true},
		{input: "ANXIOUS", want: EmotionAnxious, wantOK: true},
		{input: " stressed ", want: EmotionStressed, wantOK: true},
		{input: "furioso", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEmotion(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseEmotion(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEmotionParts(t *testing.T) {
	if got := EmotionStressed.Emoji(); got != "😖" {
		t.Errorf("Emoji() = %q", got)
	}
	if got := EmotionStressed.Label(); got != "Estressado" {
		t.Errorf("Label() = %q", got)
	}
}

func TestJournalEntryToggleReaction(t *testing.T) {
	entry := JournalEntry{
		Reactions: []Reaction{{Emoji: "💖", UserID: "u1"}},
	}

	if added := entry.ToggleReaction("u2", "💖"); !added {
		t.Fatal("expected reaction to be added")
	}
	if added := entry.ToggleReaction("u2", "🌟"); !added {
		t.Fatal("expected a second distinct emoji to be added")
	}
	if got := entry.ReactionCount("💖"); got != 2 {
		t.Errorf("ReactionCount(💖) = %d, want 2", got)
	}

	if added := entry.ToggleReaction("u2", "💖"); added {
		t.Fatal("expected reaction to be removed")
	}
	if entry.HasReaction("u2", "💖") {
		t.Error("reaction still present after toggle off")
	}
	if !entry.HasReaction("u1", "💖") {
		t.Error("other user's reaction should be untouched")
	}
}

func TestConnectionMomentSetParticipation(t *testing.T) {
	m := ConnectionMoment{}

	prev, existed := m.SetParticipation("u1", true)
	if prev || existed {
		t.Fatalf("first upsert: previous=%v existed=%v", prev, existed)
	}
	m.SetParticipation("u2", true)

	prev, existed = m.SetParticipation("u1", false)
	if !prev || !existed {
		t.Fatalf("second upsert: previous=%v existed=%v", prev, existed)
	}
	if got := m.AttendedCount(); got != 1 {
		t.Errorf("AttendedCount() = %d, want 1", got)
	}
	if len(m.Participations) != 2 {
		t.Errorf("expected 2 participation records, got %d", len(m.Participations))
	}
}
