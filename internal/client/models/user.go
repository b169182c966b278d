// Package models holds the API payloads as the CLI sees them.
package models

import "time"

type User struct {
	ID        string     `json:"id"`
	UserName  string     `json:"username"`
	CreatedAt time.Time  `json:"created_at"`
	LastSeen  *time.Time `json:"last_seen"`
}

// Token is the body returned by register and login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Credentials struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}
