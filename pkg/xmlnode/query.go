package xmlnode

import (
	"github.com/jacoelho/xmlc14n/errors"
)

// Attribute returns the value of the first attribute whose name equals name
// exactly (case-sensitive, byte-exact). Duplicate names resolve to the
// first occurrence.
func (e *Element) Attribute(name string) (string, error) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, nil
		}
	}
	return "", &errors.AttributeNotFoundError{Name: name}
}

// FirstChild returns the first direct child element matching m, scanning in
// document order. Text children never match.
func (e *Element) FirstChild(m Matcher) (*Element, error) {
	for _, c := range e.Children {
		child, ok := c.(*Element)
		if !ok {
			continue
		}
		if m.Matches(child.Tag) {
			return child, nil
		}
	}
	return nil, &errors.ChildNotFoundError{
		Matcher:  m.String(),
		Children: e.renderChildren(),
	}
}

// StructuralChildren returns all children when the node has at least one
// element child. A node that is empty, or whose content is only text
// (including whitespace-only text), has no structural children.
func (e *Element) StructuralChildren() ([]Node, error) {
	for _, c := range e.Children {
		if _, ok := c.(*Element); ok {
			return e.Children, nil
		}
	}
	return nil, &errors.NoChildrenError{Children: e.renderChildren()}
}

// ChildrenMatching returns the direct element children matching m in
// document order. It returns an empty slice when none match.
func (e *Element) ChildrenMatching(m Matcher) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if child, ok := c.(*Element); ok && m.Matches(child.Tag) {
			out = append(out, child)
		}
	}
	return out
}

// DropChildren returns a new element identical to e except that direct
// element children matching m are removed. The receiver is not mutated.
func (e *Element) DropChildren(m Matcher) *Element {
	kept := make([]Node, 0, len(e.Children))
	for _, c := range e.Children {
		if child, ok := c.(*Element); ok && m.Matches(child.Tag) {
			continue
		}
		kept = append(kept, c)
	}
	return &Element{Tag: e.Tag, Attributes: e.Attributes, Children: kept}
}

// Text returns the value of the node's first child when it is a text leaf.
// It does not assemble text across multiple fragments.
func (e *Element) Text() (string, error) {
	if len(e.Children) > 0 {
		if t, ok := e.Children[0].(Text); ok {
			return string(t), nil
		}
	}
	return "", &errors.TextNotFoundError{Children: e.renderChildren()}
}

// NamespaceAttribute returns the namespace declaration governing the node's
// own tag: the "xmlns" attribute for an unprefixed tag, or "xmlns:p" for a
// tag with prefix p.
func (e *Element) NamespaceAttribute() (Attribute, error) {
	want := "xmlns"
	if p := Prefix(e.Tag); p != "" {
		want = "xmlns:" + p
	}
	for _, a := range e.Attributes {
		if a.Name == want {
			return a, nil
		}
	}
	return Attribute{}, &errors.NamespaceAttributeNotFoundError{Tag: e.Tag}
}

func (e *Element) renderChildren() []string {
	out := make([]string, 0, len(e.Children))
	for _, c := range e.Children {
		out = append(out, c.String())
	}
	return out
}
