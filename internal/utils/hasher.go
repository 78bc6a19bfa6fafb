package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex SHA-256 digest of input.
func Hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// URLKey digests a URL for use in cache keys. Surrounding whitespace and
// the fragment are ignored, as they never change what the server returns.
func URLKey(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return Hash(rawURL)
}
