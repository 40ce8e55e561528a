package util

import (
	"strings"
	"unicode"
)

// Slugify turns a human-readable name into a URL-safe identifier:
// lowercase, spaces collapsed to single hyphens, everything that is not a
// letter, digit or hyphen dropped.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading hyphens

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
