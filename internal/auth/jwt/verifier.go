package jwt

import (
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Verifier validates HS256 admin bearer tokens.
type Verifier struct {
	issuer   string
	audience string
	secret   []byte
}

// NewVerifier creates an HS256 verifier matching the given issuer/audience.
func NewVerifier(issuer, audience string, secret []byte) *Verifier {
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		secret:   append([]byte(nil), secret...),
	}
}

// Verify parses and validates a raw bearer token, returning its claims.
func (v *Verifier) Verify(rawToken string) (Claims, error) {
	if rawToken == "" || len(v.secret) == 0 {
		return Claims{}, ErrInvalidToken
	}

	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if t.Method == nil || t.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(v.issuer),
		jwtlib.WithAudience(v.audience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired), errors.Is(err, jwtlib.ErrTokenNotValidYet):
			return Claims{}, ErrExpiredToken
		default:
			return Claims{}, ErrInvalidToken
		}
	}
	if parsed == nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: sub}, nil
}
