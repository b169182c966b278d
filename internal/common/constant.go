// Package common contains shared constants and sentinel errors used across
// LoveLetters components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme accepted by the API.
const BearerScheme = "Bearer"

// TokenType is reported to clients alongside every issued access token.
const TokenType = "bearer"

// MaxListSize caps every list operation (inbox, sent, drafts, users).
const MaxListSize = 1000
