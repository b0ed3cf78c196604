// Package models defines server-side data models for the homeledger backend.
package models

import "time"

// User is one of the two household members sharing the ledger.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
