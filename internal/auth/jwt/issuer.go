package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Issuer signs HS256 admin bearer tokens.
type Issuer struct {
	issuer   string
	audience string
	secret   []byte
	ttl      time.Duration
}

// NewIssuer creates an HS256 issuer. secret must be non-empty; ttl is the
// token lifetime applied to every issued token.
func NewIssuer(issuer, audience string, secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		issuer:   issuer,
		audience: audience,
		secret:   append([]byte(nil), secret...),
		ttl:      ttl,
	}
}

// Issue signs and returns a bearer token for the admin subject.
func (i *Issuer) Issue(subject string) (string, error) {
	if subject == "" || len(i.secret) == 0 {
		return "", ErrInvalidToken
	}

	now := time.Now()
	claims := jwtlib.MapClaims{
		"iss": i.issuer,
		"aud": i.audience,
		"sub": subject,
		"iat": jwtlib.NewNumericDate(now),
		"exp": jwtlib.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
