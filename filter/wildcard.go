package filter

import "strings"

const regexSpecialChars = `\.+()[]{}^$|`

// globToPattern translates a `*`/`?` glob into an anchored regex pattern:
// `*` becomes `.*`, `?` becomes `.`, everything else is escaped literally.
func globToPattern(glob string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			if strings.ContainsRune(regexSpecialChars, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('$')
	return b.String()
}

// NewWildcardFilter builds a Filter from a DOS-style glob pattern, matched
// case-insensitively by default, matching DOS/Windows filename semantics.
func NewWildcardFilter(pattern string) (*RegexFilter, error) {
	return NewRegexFilter(globToPattern(pattern), RegexOptions{CultureInvariant: true, IgnoreCase: true})
}
