package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing bearer authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed, time-limited access token with the
	// given subject (the user's email address).
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims if the token is valid, or an error if
	// validation fails (expired, invalid signature, malformed payload).
	// Any decode ambiguity is treated as invalid; the caller never
	// receives a partially-trusted identity.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the decoded contents of a validated token.
type Claims struct {
	// Subject is the email address of the user the token was issued for.
	Subject string `json:"sub,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
