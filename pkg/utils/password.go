package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing these invalidates no stored hashes: the
// format string below pins the parameters each hash was created with.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	argonSaltLen = 16
)

const argonPrefix = "$argon2id$v=19$m=65536,t=3,p=2$"

// HashPassword derives an argon2id hash with a fresh random salt.
// Output format: $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash> (base64, no padding).
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return argonPrefix +
		base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hashed string) (bool, error) {
	salt, key, err := decodeHash(hashed)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

func decodeHash(hashed string) (salt, key []byte, err error) {
	if len(hashed) < len(argonPrefix) || hashed[:len(argonPrefix)] != argonPrefix {
		return nil, nil, errors.New("invalid hash format")
	}
	rest := hashed[len(argonPrefix):]
	sep := -1
	for i := range rest {
		if rest[i] == '$' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, nil, errors.New("invalid hash format")
	}
	salt, err = base64.RawStdEncoding.DecodeString(rest[:sep])
	if err != nil {
		return nil, nil, err
	}
	key, err = base64.RawStdEncoding.DecodeString(rest[sep+1:])
	if err != nil {
		return nil, nil, err
	}
	return salt, key, nil
}
