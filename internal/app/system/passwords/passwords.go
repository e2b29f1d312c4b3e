// Package passwords hashes and verifies login passwords with argon2id.
//
// Hashes use the standard encoded form
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 key>
//
// so parameters travel with the hash and can be raised later without
// invalidating stored credentials.
package passwords

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	timeCost    = 1
	memoryCost  = 64 * 1024
	parallelism = 4
	saltLen     = 16
	keyLen      = 32
)

// ErrMalformedHash is returned by parse for input that is not an encoded
// argon2id hash. Verify treats it as a simple mismatch.
var ErrMalformedHash = errors.New("malformed password hash")

// Hash derives an encoded argon2id hash with a fresh random salt.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, parallelism, keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryCost, timeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether password matches the encoded hash. Malformed input
// verifies false rather than failing the request.
func Verify(password, encoded string) bool {
	salt, key, m, t, p, err := parse(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

func parse(encoded string) (salt, key []byte, m, t uint32, p uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	// argon2.IDKey panics on zero time cost or parallelism.
	if t < 1 || p < 1 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	return salt, key, m, t, p, nil
}
