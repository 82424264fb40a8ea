// Package password hashes and checks account passwords with bcrypt.
package password

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt hashes without truncation.
const MaxLength = 72

// Hash returns a bcrypt hash of plain.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errs.NewValueIsRequiredError("password")
	}
	if len(plain) > MaxLength {
		return "", errs.NewValueIsOutOfRangeError("password length", len(plain), 1, MaxLength)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// Check compares a bcrypt hash with its possible plaintext equivalent.
func Check(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
