// Package canonical rewrites node trees into their exclusive canonical
// form: namespace declarations that nothing on the current path uses are
// dropped where declared and re-emitted at the first element that needs
// them, redeclarations of an already-rendered prefix are discarded in favor
// of the ancestor's binding, and attributes are sorted with namespace
// declarations first. The output feeds the serializer to obtain the byte
// form that digests and signatures are computed over.
package canonical

import (
	"slices"
	"strings"

	"github.com/jacoelho/xmlc14n/pkg/xmlnode"
)

// Element canonicalizes a single element and returns a new tree. The input
// is never mutated. Prefixes listed in inclusive are retained wherever they
// are declared, starting at el itself, even when structurally unused there.
func Element(el *xmlnode.Element, inclusive []string) *xmlnode.Element {
	return transform(el, nil, nil, inclusiveSet(inclusive))
}

// Forest canonicalizes a sequence of sibling nodes. All siblings share the
// same incoming namespace state; no sibling observes another's decisions.
func Forest(nodes []xmlnode.Node, inclusive []string) []xmlnode.Node {
	return transformChildren(nodes, nil, nil, inclusiveSet(inclusive))
}

func inclusiveSet(prefixes []string) map[string]struct{} {
	if len(prefixes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		set[p] = struct{}{}
	}
	return set
}

// transform carries two maps down the recursion: used holds prefixes whose
// declarations are already rendered on the path from the canonicalization
// root, unused holds prefixes declared by an ancestor but not yet emitted.
// Both are cloned on entry so sibling branches stay independent.
func transform(el *xmlnode.Element, used, unused map[string]string, inclusive map[string]struct{}) *xmlnode.Element {
	used = clone(used)
	unused = clone(unused)

	ownPrefix := xmlnode.Prefix(el.Tag)

	var attrs []xmlnode.Attribute

	// A pending ancestor declaration for the element's own prefix surfaces
	// here, at its first point of use.
	if ownPrefix != "" {
		if uri, ok := unused[ownPrefix]; ok {
			attrs = append(attrs, xmlnode.Attribute{Name: "xmlns:" + ownPrefix, Value: uri})
			used[ownPrefix] = uri
			delete(unused, ownPrefix)
		}
	}

	for _, a := range el.Attributes {
		switch {
		case a.Name == "xmlns":
			// The default declaration is always emitted where written and
			// never deferred.
			attrs = append(attrs, a)

		case xmlnode.IsNamespaceAttribute(a.Name):
			prefix := strings.TrimPrefix(a.Name, "xmlns:")
			switch {
			case prefix == ownPrefix:
				if _, rendered := used[prefix]; rendered {
					// Ancestor binding wins over the redeclaration.
					continue
				}
				attrs = append(attrs, a)
				used[prefix] = a.Value
				delete(unused, prefix)
			case prefixReferenced(el, prefix) || member(inclusive, prefix):
				attrs = append(attrs, a)
				used[prefix] = a.Value
				delete(unused, prefix)
			default:
				// Park the declaration; a descendant that first needs the
				// prefix re-emits it there. A binding already rendered or
				// already parked keeps its value: first occurrence wins.
				if _, rendered := used[prefix]; rendered {
					continue
				}
				if _, pending := unused[prefix]; pending {
					continue
				}
				unused[prefix] = a.Value
			}

		default:
			if prefix := xmlnode.Prefix(a.Name); prefix != "" {
				// An attribute's namespace must be visible wherever the
				// attribute appears.
				if uri, ok := unused[prefix]; ok {
					attrs = append(attrs, xmlnode.Attribute{Name: "xmlns:" + prefix, Value: uri})
					used[prefix] = uri
					delete(unused, prefix)
				}
			}
			attrs = append(attrs, a)
		}
	}

	attrs = dedupFirstWins(attrs)
	sortAttributes(attrs)

	return &xmlnode.Element{
		Tag:        el.Tag,
		Attributes: attrs,
		Children:   transformChildren(el.Children, used, unused, inclusive),
	}
}

func transformChildren(children []xmlnode.Node, used, unused map[string]string, inclusive map[string]struct{}) []xmlnode.Node {
	if children == nil {
		return nil
	}
	out := make([]xmlnode.Node, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case xmlnode.Text:
			out = append(out, v)
		case *xmlnode.Element:
			out = append(out, transform(v, used, unused, inclusive))
		}
	}
	return out
}

// prefixReferenced reports whether any non-namespace attribute on el is
// named "prefix:local".
func prefixReferenced(el *xmlnode.Element, prefix string) bool {
	for _, a := range el.Attributes {
		if xmlnode.IsNamespaceAttribute(a.Name) {
			continue
		}
		if xmlnode.Prefix(a.Name) == prefix {
			return true
		}
	}
	return false
}

func dedupFirstWins(attrs []xmlnode.Attribute) []xmlnode.Attribute {
	seen := make(map[string]struct{}, len(attrs))
	out := attrs[:0]
	for _, a := range attrs {
		if _, dup := seen[a.Name]; dup {
			continue
		}
		seen[a.Name] = struct{}{}
		out = append(out, a)
	}
	return out
}

// sortAttributes orders namespace declarations before all other attributes,
// each group ascending by name, byte order.
func sortAttributes(attrs []xmlnode.Attribute) {
	slices.SortStableFunc(attrs, func(a, b xmlnode.Attribute) int {
		aNS, bNS := xmlnode.IsNamespaceAttribute(a.Name), xmlnode.IsNamespaceAttribute(b.Name)
		if aNS != bNS {
			if aNS {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func member(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
