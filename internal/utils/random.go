package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

var lowerBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// RandomString returns bytes of crypto-random data as lowercase base32,
// safe to embed in tokens and URLs.
func RandomString(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToLower(lowerBase32.EncodeToString(b)), nil
}
