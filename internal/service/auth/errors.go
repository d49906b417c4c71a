package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrUnauthorized indicates the request could not be tied to a known
	// user. Bad tokens and tokens for users that no longer exist both map
	// here so the response never reveals which case occurred.
	ErrUnauthorized = errors.New("could not validate credentials")
)
