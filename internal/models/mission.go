package models

import "slices"

// MissionType groups missions by intent
type MissionType string

const (
	MissionSelfCare   MissionType = "Autocuidado"
	MissionConnection MissionType = "Conexão"
	MissionReflection MissionType = "Reflexão"
)

// Mission is a catalog entry. The catalog ships with the binary and is never persisted.
type Mission struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Points      int         `json:"points"`
	IsPremium   bool        `json:"isPremium,omitempty"`
	Type        MissionType `json:"type"`
	MoodTrigger []Emotion   `json:"moodTrigger,omitempty"`
}

// HasTrigger reports whether the mission is restricted to specific moods
func (m *Mission) HasTrigger() bool {
	return len(m.MoodTrigger) > 0
}

// TriggeredBy reports whether e is in the mission's trigger list
func (m *Mission) TriggeredBy(e Emotion) bool {
	return slices.Contains(m.MoodTrigger, e)
}

// UserMission records one completion of a mission
type UserMission struct {
	ID                  string `json:"id"`
	UserID              string `json:"userId"`
	MissionID           string `json:"missionId"`
	Date                string `json:"date"`
	Completed           bool   `json:"completed"`
	HarmonyPointsEarned int    `json:"harmonyPointsEarned"`
}
