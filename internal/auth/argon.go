package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hashing parameters. Moodshelf accounts are ordinary web logins, so
// these follow the argon2id defaults recommended for interactive use.
const (
	hashMemory  uint32 = 64 * 1024
	hashTime    uint32 = 3
	hashThreads uint8  = 4
	hashSaltLen        = 16
	hashKeyLen  uint32 = 32

	maxPasswordLen = 1024
)

// hashParams are the cost parameters recovered from a stored hash, so
// verification still works if the constants above ever change.
type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// HashPassword derives an argon2id hash and returns it in PHC string
// format ($argon2id$v=...$m=...,t=...,p=...$salt$hash).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	// Oversized passwords only burn CPU during key derivation.
	if len(password) > maxPasswordLen {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, hashTime, hashMemory, hashThreads, hashKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemory, hashTime, hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the stored hash.
// Malformed hashes verify as false rather than surfacing parse detail.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if len(password) > maxPasswordLen {
		return false, nil
	}

	params, salt, want, err := parseHash(encodedHash)
	if err != nil {
		return false, nil
	}

	got := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, params.keyLen)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// parseHash splits a PHC-format argon2id string into its parameters,
// salt, and derived key.
func parseHash(encodedHash string) (*hashParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("malformed hash")
	}
	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible argon2 version %d", version)
	}

	params := &hashParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("malformed salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("malformed key: %w", err)
	}
	params.keyLen = uint32(len(key))

	return params, salt, key, nil
}
