// Package slug builds URL-safe identifiers from display names.
package slug

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Make lower-cases the name, collapses every run of non-alphanumeric
// characters into a single hyphen and trims hyphens from both ends.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Token returns n random bytes hex-encoded, used to suffix slugs so
// uniqueness does not need a per-row database round trip.
func Token(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// there is no useful recovery at this level.
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// WithToken joins a slugified name and a random token.
func WithToken(name string, tokenBytes int) string {
	base := Make(name)
	if base == "" {
		return Token(tokenBytes)
	}
	return base + "-" + Token(tokenBytes)
}
