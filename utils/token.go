package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// Link tokens (custom pricing links, guest portal access) are random 32-byte
// values handed to the customer once. Only the sha256 hex digest is stored;
// consumption nulls the stored hash so a link can never be replayed.

func GenerateLinkToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// VerifyTokenHash compares in constant time so token lookups don't leak
// prefix matches.
func VerifyTokenHash(token, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
