package models

import (
	"math"
	"slices"
	"time"
)

// Family represents a household sharing one account and one invite code
type Family struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	FamilyPassword string     `json:"familyPassword,omitempty"`
	AdminID        string     `json:"adminId"`
	MemberIDs      []string   `json:"memberIds"`
	InviteCode     string     `json:"inviteCode"`
	IsPremium      bool       `json:"isPremium"`
	CreatedAt      time.Time  `json:"createdAt"`
	TrialEndsAt    *time.Time `json:"trialEndsAt,omitempty"`
}

// HasMember reports whether userID is listed as a member
func (f *Family) HasMember(userID string) bool {
	return slices.Contains(f.MemberIDs, userID)
}

// IsTrialActive reports whether the trial window is still open at now
func (f *Family) IsTrialActive(now time.Time) bool {
	return f.TrialEndsAt != nil && f.TrialEndsAt.After(now)
}

// IsEffectivelyPremium is the premium flag OR an active trial
func (f *Family) IsEffectivelyPremium(now time.Time) bool {
	return f.IsPremium || f.IsTrialActive(now)
}

// TrialDaysRemaining rounds the remaining trial time up to whole days
func (f *Family) TrialDaysRemaining(now time.Time) int {
	if !f.IsTrialActive(now) {
		return 0
	}
	remaining := f.TrialEndsAt.Sub(now)
	return int(math.Ceil(remaining.Hours() / 24))
}
