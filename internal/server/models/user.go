package models

import "time"

// User is an account. UserName is the identity key everywhere else;
// ID is opaque. PasswordHash never leaves the server.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
	LastSeen     *time.Time
}
