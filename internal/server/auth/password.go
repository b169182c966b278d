package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"golang.org/x/crypto/argon2"
)

// saltSize is the number of random bytes in a salt; it is stored hex-encoded.
const saltSize = 16

// argon2id parameters, OWASP minimums.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// PasswordHasher produces and checks stored password hashes of the form
// "<hex salt>:<hex digest>".
type PasswordHasher interface {
	// Hash salts and digests password with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches storedHash. A malformed
	// storedHash simply does not match.
	Verify(password, storedHash string) bool
}

// NewPasswordHasher returns the hasher registered under name.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch name {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "argon2id":
		return Argon2idHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// SHA256Hasher computes SHA-256(password ‖ salt), where salt is the hex
// string itself. It is fast and therefore weak against offline guessing;
// it exists to stay compatible with hashes already in the store.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	return hashWithSalt(password, sha256Digest)
}

func (SHA256Hasher) Verify(password, storedHash string) bool {
	return verifyWithSalt(password, storedHash, sha256Digest)
}

// Argon2idHasher keeps the salt:digest layout but derives the digest with
// argon2id keyed on the salt string.
type Argon2idHasher struct{}

func (Argon2idHasher) Hash(password string) (string, error) {
	return hashWithSalt(password, argon2Digest)
}

func (Argon2idHasher) Verify(password, storedHash string) bool {
	return verifyWithSalt(password, storedHash, argon2Digest)
}

func sha256Digest(password, salt string) []byte {
	sum := sha256.Sum256([]byte(password + salt))
	return sum[:]
}

func argon2Digest(password, salt string) []byte {
	return argon2.IDKey([]byte(password), []byte(salt), argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func hashWithSalt(password string, digest func(password, salt string) []byte) (string, error) {
	salt, err := common.MakeRandHexString(saltSize)
	if err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return salt + ":" + hex.EncodeToString(digest(password, salt)), nil
}

func verifyWithSalt(password, storedHash string, digest func(password, salt string) []byte) bool {
	salt, expectedHex, ok := strings.Cut(storedHash, ":")
	if !ok {
		return false
	}

	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(digest(password, salt), expected) == 1
}
