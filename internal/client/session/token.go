package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/olivecrm/olivecrm/internal/common"
)

// Claims is the payload the server puts into its access tokens. The client
// never verifies the signature; it only reads expiry and identity hints to
// schedule refreshes, so the token is parsed unverified.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the claims out of a JWT without verifying it.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// ExpiresAt returns the token's expiry, or the zero time when the token has
// no exp claim or cannot be decoded.
func ExpiresAt(token string) time.Time {
	claims, err := DecodeClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// IsExpired reports whether the token is expired at the given instant.
// Undecodable tokens and tokens without an exp claim count as expired.
func IsExpired(token string, now time.Time) bool {
	exp := ExpiresAt(token)
	if exp.IsZero() {
		return true
	}
	return !exp.After(now)
}
