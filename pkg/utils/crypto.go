package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the unsalted SHA-256 hex digest of password.
// Stored credentials were written in this format before the service existed,
// so the digest must stay fixed-output and unsalted.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash reports whether hash is the digest of password.
func CheckPasswordHash(password, hash string) bool {
	return SecureCompare(HashPassword(password), hash)
}

// IsPasswordHash reports whether s has the shape of a digest produced by HashPassword.
func IsPasswordHash(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
