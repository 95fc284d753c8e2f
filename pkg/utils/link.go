package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// NewLink returns a random URL-safe token of n characters for public
// user/post links. Collisions are cryptographically unlikely; callers
// that insert into a unique index retry on conflict anyway.
func NewLink(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:n], nil
}
