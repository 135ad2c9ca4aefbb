package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New mints an opaque 32-hex-character access token. 128 bits of
// cryptographic randomness makes collisions negligible; the backing
// unique constraint on client_form.access_token is the only other guard.
func New() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
