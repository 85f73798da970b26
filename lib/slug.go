package lib

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify turns a display name into a URL-safe slug.
// Diacritics are stripped, everything non-alphanumeric collapses to a
// single hyphen, e.g. "Plantas de Interior" -> "plantas-de-interior".
func Slugify(name string) string {
	// Decompose so combining marks can be dropped
	decomposed := norm.NFD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))

	lastHyphen := true // suppress leading hyphens
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
