package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashAccessKey bcrypt-hashes a plaintext access key for storage in config.
func HashAccessKey(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckAccessKey verifies a presented key against the configured bcrypt
// hash. An empty hash rejects every key.
func CheckAccessKey(hash, key string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
