package validation

import (
	"fmt"
	"regexp"
	"strings"

	"fambalance/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required checks that a free-text field is not blank
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword only requires a password to be present. Credentials are
// compared as typed, so no strength rules apply.
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	return Required("name", name)
}

// ValidateBirthDate checks for a YYYY-MM-DD calendar date
func ValidateBirthDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return ValidationError{Field: "birthDate", Message: "birthDate is required"}
	}
	if _, err := models.ParseDate(date); err != nil {
		return ValidationError{Field: "birthDate", Message: "birthDate must be YYYY-MM-DD"}
	}
	return nil
}

// ValidateGender checks the gender against the accepted values
func ValidateGender(g models.Gender) error {
	if g == "" {
		return ValidationError{Field: "gender", Message: "gender is required"}
	}
	if !g.Valid() {
		return ValidationError{Field: "gender", Message: fmt.Sprintf("unknown gender %q", g)}
	}
	return nil
}

// ValidateEmotion checks the emotion against the five mood categories
func ValidateEmotion(e models.Emotion) error {
	if !e.Valid() {
		return ValidationError{Field: "emotion", Message: fmt.Sprintf("unknown emotion %q", e)}
	}
	return nil
}

// ValidateProfile runs every profile field check and returns the first failure
func ValidateProfile(p models.Profile) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidateBirthDate(p.BirthDate); err != nil {
		return err
	}
	if err := ValidateGender(p.Gender); err != nil {
		return err
	}
	return Required("avatar", p.Avatar)
}
