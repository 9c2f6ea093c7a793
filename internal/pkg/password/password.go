// Package password is the credential codec: one-way, salted, adaptive-cost
// hashing of account passwords.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives an opaque hash from a plaintext password. The salt is random
// and embedded in the output, so two calls with the same input produce
// different hashes.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed hashes
// verify as false rather than erroring.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
