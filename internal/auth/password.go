// internal/auth/password.go
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/versehub/versehub/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// HashPassword generates a bcrypt hash for the given password.
// bcrypt embeds a fresh random salt per call, so hashing the same
// password twice yields different strings that both verify.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		customLog.Warnf("Error generating bcrypt hash: %v", err)
		// Don't return raw bcrypt error to caller usually
		return "", fmt.Errorf("failed to hash password")
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password with a stored bcrypt hash.
// A mismatch returns false. A structurally corrupt stored hash also returns
// false, but is logged as a store defect rather than a user error.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		customLog.Errorf("Corrupt password hash in credential store: %v", err)
	}
	return err == nil
}
