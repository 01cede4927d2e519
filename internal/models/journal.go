package models

// Reaction is one emoji left by one user on a journal entry
type Reaction struct {
	Emoji  string `json:"emoji"`
	UserID string `json:"userId"`
}

// JournalEntry is a shared family journal post
type JournalEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	FamilyID  string     `json:"familyId"`
	Date      string     `json:"date"`
	Text      string     `json:"text"`
	Emotion   Emotion    `json:"emotion"`
	Reactions []Reaction `json:"reactions"`
}

// HasReaction reports whether userID already reacted with emoji
func (e *JournalEntry) HasReaction(userID, emoji string) bool {
	return e.reactionIndex(userID, emoji) >= 0
}

// ToggleReaction removes the (userID, emoji) pair when present and appends it
// otherwise. It returns true when the reaction was added.
func (e *JournalEntry) ToggleReaction(userID, emoji string) bool {
	if i := e.reactionIndex(userID, emoji); i >= 0 {
		e.Reactions = append(e.Reactions[:i], e.Reactions[i+1:]...)
		return false
	}
	e.Reactions = append(e.Reactions, Reaction{Emoji: emoji, UserID: userID})
	return true
}

// ReactionCount counts reactions using emoji
func (e *JournalEntry) ReactionCount(emoji string) int {
	count := 0
	for _, r := range e.Reactions {
		if r.Emoji == emoji {
			count++
		}
	}
	return count
}

func (e *JournalEntry) reactionIndex(userID, emoji string) int {
	for i, r := range e.Reactions {
		if r.UserID == userID && r.Emoji == emoji {
			return i
		}
	}
	return -1
}
