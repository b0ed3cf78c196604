package models

import "time"

// RefreshToken is a single-use token allowing a client to obtain a fresh
// access token. Tokens are rotated on every refresh.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
