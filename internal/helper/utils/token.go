package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// RandomToken returns n bytes of secure randomness, hex encoded. n=32 gives
// the 64 character tokens used for password resets.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("failed to read random bytes")
	}
	return hex.EncodeToString(buf), nil
}
