package xmlnode

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher selects element children by tag name. The three variants are the
// exact matcher (case-insensitive equality), the wildcard matcher
// ("*:local", namespace-agnostic case-insensitive suffix match), and the
// pattern matcher (a compiled regular expression tested against the raw tag
// with its own case semantics). Matching always scans children in document
// order; the first hit wins.
type Matcher interface {
	Matches(tag string) bool

	// String describes the matcher for error diagnostics.
	String() string
}

// Name builds a Matcher from a tag name. A name of the form "*:local"
// yields the wildcard matcher; anything else the exact matcher.
func Name(s string) Matcher {
	if strings.HasPrefix(s, "*:") {
		return wildcardMatcher(s[1:])
	}
	return exactMatcher(s)
}

// Pattern builds a Matcher from a compiled regular expression.
func Pattern(re *regexp.Regexp) Matcher {
	return patternMatcher{re: re}
}

type exactMatcher string

func (m exactMatcher) Matches(tag string) bool {
	return strings.EqualFold(tag, string(m))
}

func (m exactMatcher) String() string {
	return fmt.Sprintf("%q", string(m))
}

// wildcardMatcher stores the ":local" suffix of the "*:local" form.
type wildcardMatcher string

func (m wildcardMatcher) Matches(tag string) bool {
	if len(tag) < len(m) {
		return false
	}
	return strings.EqualFold(tag[len(tag)-len(m):], string(m))
}

func (m wildcardMatcher) String() string {
	return fmt.Sprintf("\"*%s\"", string(m))
}

type patternMatcher struct {
	re *regexp.Regexp
}

func (m patternMatcher) Matches(tag string) bool {
	return m.re.MatchString(tag)
}

func (m patternMatcher) String() string {
	return fmt.Sprintf("pattern %q", m.re.String())
}
