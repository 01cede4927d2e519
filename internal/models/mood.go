package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for every stored date
const DateLayout = "2006-01-02"

// FormatDate renders the UTC calendar date of t
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Emotion is one of the five mood categories
type Emotion string

// Declaration order matters: reports list categories in this order and break
// ties by it.
const (
	EmotionHappy    Emotion = "😊 Feliz"
	EmotionNeutral  Emotion = "😐 Neutro"
	EmotionSad      Emotion = "😞 Triste"
	EmotionStressed Emotion = "😖 Estressado"
	EmotionAnxious  Emotion = "😔 Ansioso"
)

// AllEmotions returns every emotion in declaration order
func AllEmotions() []Emotion {
	return []Emotion{EmotionHappy, EmotionNeutral, EmotionSad, EmotionStressed, EmotionAnxious}
}

// Valid reports whether e is a known emotion
func (e Emotion) Valid() bool {
	switch e {
	case EmotionHappy, EmotionNeutral, EmotionSad, EmotionStressed, EmotionAnxious:
		return true
	}
	return false
}

// Emoji returns the leading glyph of the emotion label
func (e Emotion) Emoji() string {
	glyph, _, _ := strings.Cut(string(e), " ")
	return glyph
}

// Label returns the emotion name without its glyph
func (e Emotion) Label() string {
	_, label, found := strings.Cut(string(e), " ")
	if !found {
		return string(e)
	}
	return label
}

// ParseEmotion accepts a stored value, a bare label ("Feliz") or a key
// ("happy", "HAPPY") and returns the matching emotion.
func ParseEmotion(s string) (Emotion, bool) {
	s = strings.TrimSpace(s)
	for _, e := range AllEmotions() {
		if s == string(e) || strings.EqualFold(s, e.Label()) {
			return e, true
		}
	}
	switch strings.ToLower(s) {
	case "happy":
		return EmotionHappy, true
	case "neutral":
		return EmotionNeutral, true
	case "sad":
		return EmotionSad, true
	case "stressed":
		return EmotionStressed, true
	case "anxious":
		return EmotionAnxious, true
	}
	return "", false
}

// DailyMood is the single mood a user recorded on a calendar day
type DailyMood struct {
	UserID   string  `json:"userId"`
	FamilyID string  `json:"familyId"`
	Date     string  `json:"date"`
	Emotion  Emotion `json:"emotion"`
}
