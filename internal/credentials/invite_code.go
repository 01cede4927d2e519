package credentials

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// InviteCodeLength is the number of characters in a family invite code
const InviteCodeLength = 6

const inviteCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode generates a random 6-character code using uppercase letters and digits
func GenerateInviteCode() (string, error) {
	code := make([]byte, InviteCodeLength)

	for i := 0; i < InviteCodeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeChars))))
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeChars[num.Int64()]
	}

	return string(code), nil
}

// NormalizeInviteCode trims and upper-cases a code typed by a user
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RandomElement picks a random element from a string slice
func RandomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
