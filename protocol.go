package mdsanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// schemeRE captures the text before the first colon, literal or
// entity-encoded, that is not preceded by a slash, query or fragment
// marker. None of those can occur in a scheme.
var schemeRE = regexp.MustCompile(`(?i)^([^/#?]*?)(?::|&#0*58|&#x0*3a)`)

// schemeAllowed reports whether the URL in raw uses one of the schemes
// in allowed. URLs without a scheme are relative.
func schemeAllowed(raw string, allowed set) bool {
	// Browsers ignore control characters and whitespace inside a
	// scheme, so "java\tscript:" must be caught as "javascript:".
	v := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	m := schemeRE.FindStringSubmatch(v)
	if m == nil {
		return allowed.has(Relative)
	}
	return allowed.has(strings.ToLower(m[1]))
}
