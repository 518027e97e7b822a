// Package jwt issues and verifies HS256 bearer tokens for the admin HTTP
// surface, adapted from the teacher's per-user issuer/verifier pair down to
// a single admin subject.
package jwt

import "errors"

var (
	// ErrInvalidToken is returned when the token cannot be parsed or verified.
	ErrInvalidToken = errors.New("jwt: invalid token")
	// ErrExpiredToken is returned when the token is structurally valid but expired.
	ErrExpiredToken = errors.New("jwt: expired token")
)

// Claims is the algorithm-agnostic representation of an issued admin token.
type Claims struct {
	Subject string
}
