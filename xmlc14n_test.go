package xmlc14n_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/jacoelho/xmlc14n"
	"github.com/jacoelho/xmlc14n/errors"
	"github.com/jacoelho/xmlc14n/pkg/xmlnode"
)

func TestCanonicalForm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  xmlc14n.CanonicalizeOptions
		want  string
	}{
		{
			name:  "unused named namespace dropped",
			input: `<foo xmlns:a="a"></foo>`,
			want:  "<foo></foo>",
		},
		{
			name:  "namespace surfaces at first point of use",
			input: `<foo xmlns:a="a"><a:bar>1</a:bar><a:bar><a:baz>2</a:baz></a:bar></foo>`,
			want:  `<foo><a:bar xmlns:a="a">1</a:bar><a:bar xmlns:a="a"><a:baz>2</a:baz></a:bar></foo>`,
		},
		{
			name:  "namespace attributes sort before the rest",
			input: `<foo xmlns="a" a="1" B="2"></foo>`,
			want:  `<foo xmlns="a" B="2" a="1"></foo>`,
		},
		{
			name:  "ancestor declaration wins",
			input: `<a:foo xmlns:a="a"><a:bar xmlns:a="B">1</a:bar></a:foo>`,
			want:  `<a:foo xmlns:a="a"><a:bar>1</a:bar></a:foo>`,
		},
		{
			name:  "inclusive prefix kept at the root",
			input: `<foo xmlns:a="a"></foo>`,
			opts:  xmlc14n.CanonicalizeOptions{InclusiveNamespaces: []string{"a"}},
			want:  `<foo xmlns:a="a"></foo>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xmlc14n.CanonicalForm([]byte(tt.input), tt.opts)
			if err != nil {
				t.Fatalf("CanonicalForm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CanonicalForm() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanonicalizeLeavesInputIntact(t *testing.T) {
	input := `<foo xmlns:a="a" b="2" a="1"><a:bar>1</a:bar></foo>`
	root, err := xmlc14n.ParseString(input)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	first := xmlc14n.Canonicalize(root, xmlc14n.CanonicalizeOptions{})
	if got := root.String(); got != input {
		t.Fatalf("input tree changed after canonicalization: %s", got)
	}

	// Re-canonicalizing the untouched original must reproduce the result.
	second := xmlc14n.Canonicalize(root, xmlc14n.CanonicalizeOptions{})
	if first.String() != second.String() {
		t.Errorf("re-canonicalization diverged: %s vs %s", first, second)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	input := `<foo xmlns:a="a"><a:bar>1</a:bar><a:bar><a:baz>2</a:baz></a:bar></foo>`
	root, err := xmlc14n.ParseString(input)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	once := xmlc14n.Canonicalize(root, xmlc14n.CanonicalizeOptions{})
	twice := xmlc14n.Canonicalize(once, xmlc14n.CanonicalizeOptions{})
	if twice.String() != once.String() {
		t.Errorf("canonical form is not a fixed point: %s vs %s", twice, once)
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"<foo></foo>",
		`<foo a="1" B="2"><bar>text</bar></foo>`,
		`<ns:Assertion xmlns:ns="urn:oasis:names:tc:SAML:2.0:assertion"><ns:Issuer>idp</ns:Issuer></ns:Assertion>`,
	}
	for _, input := range inputs {
		root, err := xmlc14n.ParseString(input)
		if err != nil {
			t.Fatalf("ParseString(%q) error = %v", input, err)
		}
		if got := root.String(); got != input {
			t.Errorf("round trip broke: %q -> %q", input, got)
		}
	}
}

func TestParseWithOptions(t *testing.T) {
	t.Run("negative limit rejected", func(t *testing.T) {
		_, err := xmlc14n.ParseWithOptions([]byte("<foo></foo>"), xmlc14n.ParseOptions{MaxDepth: -1})
		if err == nil {
			t.Fatal("ParseWithOptions() with negative depth should fail")
		}
	})

	t.Run("default depth limit applies", func(t *testing.T) {
		deep := strings.Repeat("<a>", 300) + strings.Repeat("</a>", 300)
		_, err := xmlc14n.Parse([]byte(deep))
		var limitErr *errors.LimitError
		if !stderrors.As(err, &limitErr) {
			t.Fatalf("Parse() error = %v, want LimitError", err)
		}
	})

	t.Run("explicit limit overrides default", func(t *testing.T) {
		deep := strings.Repeat("<a>", 300) + strings.Repeat("</a>", 300)
		if _, err := xmlc14n.ParseWithOptions([]byte(deep), xmlc14n.ParseOptions{MaxDepth: 512}); err != nil {
			t.Fatalf("ParseWithOptions() error = %v", err)
		}
	})
}

func TestCanonicalizeForest(t *testing.T) {
	nodes := []xmlnode.Node{
		&xmlnode.Element{Tag: "a:one", Attributes: []xmlnode.Attribute{{Name: "xmlns:a", Value: "a"}}},
		xmlnode.Text("x"),
	}
	got := xmlnode.ToString(xmlc14n.CanonicalizeForest(nodes, xmlc14n.CanonicalizeOptions{})...)
	want := `<a:one xmlns:a="a"></a:one>x`
	if got != want {
		t.Errorf("CanonicalizeForest() = %s, want %s", got, want)
	}
}
