// Package models defines the server-side domain entities.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server:
// wire DTOs are built from the other fields only.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
