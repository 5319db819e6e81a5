package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash stands in for a missing user's hash so that lookup failures
// still pay for a bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recipebook-dummy-password"), bcrypt.DefaultCost)

// HashPassword hashes password with the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. An empty hash never matches.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
