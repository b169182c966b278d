package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	s := NewTokenService("super-secret", 24*time.Hour)

	tok, err := s.Issue("alice")
	require.NoError(t, err)

	sub, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestTokenService_ExpiresAfterValidity(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	s := NewTokenService("secret", 24*time.Hour)
	s.now = func() time.Time { return issuedAt }

	tok, err := s.Issue("bob")
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	sub, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", sub)

	s.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Second) }
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := GenerateToken("u1", []byte("secret"), -time.Second, now)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tok, []byte("secret"), time.Now)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tok, []byte("wrong-secret"), time.Now)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetSubjectFromToken_AlgorithmMismatch(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tok, secret, time.Now)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetSubjectFromToken_NoneAlgorithmRejected(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tok, []byte("secret"), time.Now)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetSubjectFromToken_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tok, secret, time.Now)
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestGetSubjectFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetSubjectFromToken("not.a.jwt", []byte("k"), time.Now)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
