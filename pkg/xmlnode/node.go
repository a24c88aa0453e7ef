// Package xmlnode provides the minimal XML document model used for
// canonicalization and signature verification. Elements hold their tag,
// attributes, and children as plain strings and slices; namespace prefixes
// are string conventions embedded in names, never resolved symbols, so
// attacker-controlled documents cannot grow any interning table.
//
// Trees are treated as immutable after construction: every operation is
// pure, transforming operations return new trees, and values are safe to
// share between goroutines without synchronization.
package xmlnode

import "strings"

// Attribute is an ordered name/value pair. Names are opaque, case-sensitive
// strings; a name of the form "prefix:local" is recognized purely by its
// textual colon separator.
type Attribute struct {
	Name  string
	Value string
}

// Node is a tree entry: either a Text leaf or an *Element.
type Node interface {
	// String renders the node back to XML text.
	String() string

	isNode()
}

// Text is a character-data leaf. Its value is carried verbatim; escaping is
// the responsibility of whatever produced it.
type Text string

func (Text) isNode() {}

// String returns the text value unchanged.
func (t Text) String() string { return string(t) }

// Element is an XML element with ordered attributes and ordered children.
// Attribute duplicates may occur; every operation that needs "the" value
// takes the first occurrence.
type Element struct {
	Tag        string
	Attributes []Attribute
	Children   []Node
}

func (*Element) isNode() {}

// String renders the element subtree to XML text, preserving stored
// attribute and child order exactly.
func (e *Element) String() string {
	var sb strings.Builder
	e.render(&sb)
	return sb.String()
}

// ToString renders a sequence of sibling nodes by concatenation in order.
func ToString(nodes ...Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		renderNode(&sb, n)
	}
	return sb.String()
}

func renderNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		sb.WriteString(string(v))
	case *Element:
		v.render(sb)
	}
}

func (e *Element) render(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.Tag)
	for _, a := range e.Attributes {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	for _, c := range e.Children {
		renderNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteByte('>')
}

// Prefix returns the substring before the first colon of name, or "" when
// name has no colon.
func Prefix(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return ""
}

// IsNamespaceAttribute reports whether name declares a namespace: either
// exactly "xmlns" or any name with the "xmlns:" prefix. The test is purely
// syntactic.
func IsNamespaceAttribute(name string) bool {
	return name == "xmlns" || strings.HasPrefix(name, "xmlns:")
}
