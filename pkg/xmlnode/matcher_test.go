package xmlnode

import (
	"regexp"
	"testing"
)

func TestNameMatcher(t *testing.T) {
	tests := []struct {
		name    string
		matcher string
		tag     string
		want    bool
	}{
		{name: "exact match", matcher: "bar", tag: "bar", want: true},
		{name: "exact is case-insensitive", matcher: "bar", tag: "BAR", want: true},
		{name: "exact mismatch", matcher: "bar", tag: "baz", want: false},
		{name: "exact does not ignore prefix", matcher: "bar", tag: "xs:bar", want: false},
		{name: "wildcard matches any prefix", matcher: "*:bar", tag: "xs:bar", want: true},
		{name: "wildcard is case-insensitive", matcher: "*:bar", tag: "XS:BAR", want: true},
		{name: "wildcard requires colon", matcher: "*:bar", tag: "bar", want: false},
		{name: "wildcard suffix only at colon", matcher: "*:bar", tag: "ns:foobar", want: false},
		{name: "wildcard mismatch", matcher: "*:bar", tag: "xs:baz", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.matcher).Matches(tt.tag); got != tt.want {
				t.Errorf("Name(%q).Matches(%q) = %v, want %v", tt.matcher, tt.tag, got, tt.want)
			}
		})
	}
}

func TestPatternMatcher(t *testing.T) {
	m := Pattern(regexp.MustCompile(`^sig:`))
	if !m.Matches("sig:Reference") {
		t.Error("pattern should match sig:Reference")
	}
	if m.Matches("SIG:Reference") {
		t.Error("pattern keeps its own case semantics, should not match SIG:Reference")
	}
}

func TestMatcherString(t *testing.T) {
	tests := []struct {
		name    string
		matcher Matcher
		want    string
	}{
		{name: "exact", matcher: Name("bar"), want: `"bar"`},
		{name: "wildcard", matcher: Name("*:bar"), want: `"*:bar"`},
		{name: "pattern", matcher: Pattern(regexp.MustCompile(`^a`)), want: `pattern "^a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.matcher.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
