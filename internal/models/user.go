package models

import "time"

// Role distinguishes the family administrator from regular members
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Gender as captured on the profile form
type Gender string

const (
	GenderFemale Gender = "Feminino"
	GenderMale   Gender = "Masculino"
	GenderOther  Gender = "Outro"
)

// Valid reports whether g is one of the accepted genders
func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther:
		return true
	}
	return false
}

// User represents a family member profile
type User struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	BirthDate        string `json:"birthDate"`
	Gender           Gender `json:"gender"`
	Avatar           string `json:"avatar"`
	FamilyID         string `json:"familyId,omitempty"`
	Email            string `json:"email,omitempty"`
	Password         string `json:"password,omitempty"`
	Role             Role   `json:"role"`
	HarmonyPoints    int    `json:"harmonyPoints"`
	ConnectionPoints int    `json:"connectionPoints"`
}

// Profile holds the user-editable fields captured when a member is created
type Profile struct {
	Name      string
	BirthDate string
	Gender    Gender
	Avatar    string
}

// IsAdmin reports whether the user administers their family
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLoginIndividually reports whether the member has their own password.
// Members created without one can only be reached through the family login.
func (u *User) CanLoginIndividually() bool {
	return u.Password != ""
}

// Age returns the user's age in whole years on the given day, or 0 when the
// birth date is missing or malformed.
func (u *User) Age(today time.Time) int {
	birth, err := ParseDate(u.BirthDate)
	if err != nil {
		return 0
	}
	today = today.UTC()
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Session points at the currently logged-in user and family
type Session struct {
	UserID   string
	FamilyID string
}

// IsEmpty reports whether either pointer is missing
func (s Session) IsEmpty() bool {
	return s.UserID == "" || s.FamilyID == ""
}

// Birthday describes an upcoming birthday of a family member
type Birthday struct {
	User         User
	NextBirthday time.Time
	DaysUntil    int
	TurningAge   int
}
