// Package credentials hashes and verifies the single static admin bearer
// credential used to gate mutating admin HTTP routes, adapted from the
// teacher's per-user password credential down to one bcrypt hash.
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost mirrors the teacher's default cost.
const DefaultBcryptCost = 12

var (
	// ErrPasswordMismatch indicates the provided password does not match the stored hash.
	ErrPasswordMismatch = errors.New("credentials: password mismatch")
	// ErrMissingPasswordHash indicates no hash has been configured.
	ErrMissingPasswordHash = errors.New("credentials: missing password hash")
)

// Hash bcrypt-hashes plainPassword at the default cost.
func Hash(plainPassword string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plainPassword), DefaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify checks plainPassword against a bcrypt hash produced by Hash.
func Verify(hash, plainPassword string) error {
	if hash == "" {
		return ErrMissingPasswordHash
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plainPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
