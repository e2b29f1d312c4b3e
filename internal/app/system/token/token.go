// Package token issues and verifies the signed access tokens carried by the
// auth cookie. Claims are {sub: userID, exp: now+ttl}, signed HS256 with the
// server secret; there is no refresh path, a token is valid until it
// expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when the config does not override it.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalid covers tampered, malformed, or wrongly signed tokens.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired marks a token that verified structurally but is stale.
	ErrExpired = errors.New("token expired")
)

// Issuer signs and verifies access tokens with a shared symmetric secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// New creates an Issuer. A non-positive ttl falls back to DefaultTTL.
func New(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for userID expiring after the issuer's TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	return i.IssueWithTTL(userID, i.ttl)
}

// IssueWithTTL signs a token for userID with an explicit lifetime.
func (i *Issuer) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the subject user ID.
// Expired-but-authentic tokens return ErrExpired; everything else that
// fails returns ErrInvalid.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
