package models

// MoodCount is the number of records of one emotion
type MoodCount struct {
	Emotion Emotion `json:"emotion"`
	Count   int     `json:"count"`
}

// MemberMoodSummary holds one member's counts for every emotion
type MemberMoodSummary struct {
	UserID   string      `json:"userId"`
	MoodData []MoodCount `json:"moodData"`
}

// Report is an immutable weekly snapshot of a family's moods
type Report struct {
	ID                    string              `json:"id"`
	FamilyID              string              `json:"familyId"`
	StartDate             string              `json:"startDate"`
	EndDate               string              `json:"endDate"`
	IndividualMoodSummary []MemberMoodSummary `json:"individualMoodSummary"`
	FamilyMoodSummary     []MoodCount         `json:"familyMoodSummary"`
	Recommendations       []string            `json:"recommendations"`
}

// TotalMoods sums the family-wide counts
func (r *Report) TotalMoods() int {
	total := 0
	for _, mc := range r.FamilyMoodSummary {
		total += mc.Count
	}
	return total
}

// MemberSummary returns the summary for userID, or nil
func (r *Report) MemberSummary(userID string) *MemberMoodSummary {
	for i := range r.IndividualMoodSummary {
		if r.IndividualMoodSummary[i].UserID == userID {
			return &r.IndividualMoodSummary[i]
		}
	}
	return nil
}
