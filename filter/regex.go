package filter

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// RegexOptions mirrors the .NET-style option vocabulary a pattern can carry:
// the original tool this scanner's filtering is modeled on exposes regex
// options as System.Text.RegularExpressions.RegexOptions flags, so a regex2
// engine (which implements the same flag set, unlike Go's RE2-based
// stdlib regexp) is what backs pattern matching here.
type RegexOptions struct {
	IgnoreCase              bool
	Multiline               bool
	ExplicitCapture         bool
	Compiled                bool
	Singleline              bool
	IgnorePatternWhitespace bool
	RightToLeft             bool
	ECMAScript              bool

	// CultureInvariant has no regexp2 equivalent to invert; it's kept so
	// callers that mechanically translate a RegexOptions value don't need
	// a special case for it.
	CultureInvariant bool
}

func (o RegexOptions) toEngineOptions() regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	if o.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if o.Multiline {
		opts |= regexp2.Multiline
	}
	if o.ExplicitCapture {
		opts |= regexp2.ExplicitCapture
	}
	if o.Compiled {
		opts |= regexp2.Compiled
	}
	if o.Singleline {
		opts |= regexp2.Singleline
	}
	if o.IgnorePatternWhitespace {
		opts |= regexp2.IgnorePatternWhitespace
	}
	if o.RightToLeft {
		opts |= regexp2.RightToLeft
	}
	if o.ECMAScript {
		opts |= regexp2.ECMAScript
	}
	return opts
}

// RegexFilter matches text against a compiled regexp2 pattern.
type RegexFilter struct {
	re *regexp2.Regexp
}

func NewRegexFilter(pattern string, opts RegexOptions) (*RegexFilter, error) {
	re, err := regexp2.Compile(pattern, opts.toEngineOptions())
	if err != nil {
		return nil, fmt.Errorf("filter: compiling pattern %q: %w", pattern, err)
	}
	return &RegexFilter{re: re}, nil
}

func (f *RegexFilter) IsMatch(s string) bool {
	ok, err := f.re.MatchString(s)
	if err != nil {
		return false
	}
	return ok
}
