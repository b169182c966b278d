// Package common defines shared constants and sentinel errors used across
// client and server layers of LoveLetters. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrUserNotFound is returned when a valid token names a user that no
	// longer exists. It is a kind of ErrorUnauthorized.
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrorUnauthorized)

	// Account errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")

	// Message errors.
	ErrWrongCode = errors.New("invalid secret code")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken   = errors.New("invalid token")
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenExpired is a kind of ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)
