package models

// Participation is a member's attendance flag for a connection moment
type Participation struct {
	UserID   string `json:"userId"`
	Attended bool   `json:"attended"`
}

// ConnectionMoment is the single shared activity suggested to a family for a day
type ConnectionMoment struct {
	ID                     string          `json:"id"`
	FamilyID               string          `json:"familyId"`
	Suggestion             string          `json:"suggestion"`
	Date                   string          `json:"date"`
	Participations         []Participation `json:"participations"`
	ConnectionPointsEarned int             `json:"connectionPointsEarned"`
}

// SetParticipation upserts userID's attendance and returns the previous flag
// and whether a record already existed.
func (m *ConnectionMoment) SetParticipation(userID string, attended bool) (previous bool, existed bool) {
	for i := range m.Participations {
		if m.Participations[i].UserID == userID {
			previous = m.Participations[i].Attended
			m.Participations[i].Attended = attended
			return previous, true
		}
	}
	m.Participations = append(m.Participations, Participation{UserID: userID, Attended: attended})
	return false, false
}

// AttendedCount counts participants who attended
func (m *ConnectionMoment) AttendedCount() int {
	count := 0
	for _, p := range m.Participations {
		if p.Attended {
			count++
		}
	}
	return count
}

// Attended reports userID's attendance flag
func (m *ConnectionMoment) Attended(userID string) bool {
	for _, p := range m.Participations {
		if p.UserID == userID {
			return p.Attended
		}
	}
	return false
}
