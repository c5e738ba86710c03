package search

import "strings"

// regexp metacharacters neutralized in caller-supplied terms. Keywords
// and code prefixes are literal search text, never pattern syntax.
const metacharacters = `-/\^$*+?.()|[]{}`

func escapeRegexp(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(metacharacters, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NameRegexp builds an anchored pattern matching names that contain
// every keyword as a substring, in any order, using one positive
// lookahead per keyword. Empty input yields an empty pattern.
func NameRegexp(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('^')
	for _, kw := range keywords {
		b.WriteString("(?=.*")
		b.WriteString(escapeRegexp(kw))
		b.WriteString(")")
	}
	return b.String()
}

// CodeRegexp builds a pattern matching codes that start with any one of
// the given prefixes. Empty input yields an empty pattern.
func CodeRegexp(prefixes []string) string {
	if len(prefixes) == 0 {
		return ""
	}
	escaped := make([]string, len(prefixes))
	for i, p := range prefixes {
		escaped[i] = escapeRegexp(p)
	}
	return "^(" + strings.Join(escaped, "|") + ")"
}
