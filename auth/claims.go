package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims the API puts in its access tokens.
type AccessClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ParseAccessClaims decodes an access token without verifying its signature.
// The API owns the signing key and checks every token it receives; the
// dashboard only reads identity and expiry out of it.
func ParseAccessClaims(rawToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, fmt.Errorf("[auth ParseAccessClaims] %w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// AccessExpiry returns the exp claim, or the zero time when absent.
func (c *AccessClaims) AccessExpiry() time.Time {
	if c == nil || c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}
