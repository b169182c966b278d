// Package auth holds the server-side credential primitives: bearer token
// issuance/verification and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies HS256 bearer tokens whose subject is a
// username. There is no revocation: a token stays valid until it expires.
type TokenService struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey string, validity time.Duration) *TokenService {
	return &TokenService{secretKey: []byte(secretKey), validity: validity, now: time.Now}
}

// Issue returns a signed token asserting sub=username, exp=now+validity.
func (s *TokenService) Issue(username string) (string, error) {
	return GenerateToken(username, s.secretKey, s.validity, s.now())
}

// Verify returns the token subject. It fails with common.ErrInvalidToken
// (or common.ErrTokenExpired, which is one) when the signature, algorithm or
// expiry is wrong, and with common.ErrMalformedToken when sub is missing.
func (s *TokenService) Verify(token string) (string, error) {
	return GetSubjectFromToken(token, s.secretKey, s.now)
}

func GenerateToken(subject string, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	})

	return token.SignedString(secretKey)
}

func GetSubjectFromToken(tokenString string, secretKey []byte, now func() time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", common.ErrMalformedToken
	}

	return claims.Subject, nil
}
