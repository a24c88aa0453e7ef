// Package parser builds xmlnode trees from raw bytes. The tokenizer is
// string-based: tag and attribute names stay plain Go strings and nothing
// is interned, so a document cannot grow a symbol table by inventing names.
// Text and attribute values are stored verbatim; entity references are not
// resolved, which keeps serialization a left inverse of parsing.
//
// Supported input is one root element with nested elements, attributes, and
// character data, optionally preceded by an XML declaration. Comments,
// processing instructions, CDATA sections, and DOCTYPE are rejected.
package parser

import (
	"fmt"

	"github.com/jacoelho/xmlc14n/errors"
	"github.com/jacoelho/xmlc14n/pkg/xmlnode"
)

// Limits bound resource use while parsing untrusted input. A zero or
// negative field disables that bound; the facade resolves defaults before
// calling Parse.
type Limits struct {
	MaxDepth     int
	MaxAttrs     int
	MaxTokenSize int
}

// Parse builds a node tree from data, enforcing limits.
func Parse(data []byte, limits Limits) (*xmlnode.Element, error) {
	s := &scanner{data: data, limits: limits}

	s.skipBOM()
	s.skipSpace()
	if err := s.skipXMLDecl(); err != nil {
		return nil, err
	}
	s.skipSpace()

	root, err := s.element(1)
	if err != nil {
		return nil, err
	}

	s.skipSpace()
	if s.pos != len(s.data) {
		return nil, s.errorf("content after document end")
	}
	return root, nil
}

type scanner struct {
	data   []byte
	pos    int
	limits Limits
}

func (s *scanner) element(depth int) (*xmlnode.Element, error) {
	if s.limits.MaxDepth > 0 && depth > s.limits.MaxDepth {
		return nil, &errors.LimitError{What: "element depth", Limit: s.limits.MaxDepth, Value: depth}
	}

	if !s.consume('<') {
		return nil, s.errorf("expected element start")
	}
	tag, err := s.name()
	if err != nil {
		return nil, err
	}

	el := &xmlnode.Element{Tag: tag}

	for {
		s.skipSpace()
		switch {
		case s.consume('>'):
			children, err := s.content(el.Tag, depth)
			if err != nil {
				return nil, err
			}
			el.Children = children
			return el, nil

		case s.consume('/'):
			if !s.consume('>') {
				return nil, s.errorf("malformed element tag %q", tag)
			}
			return el, nil

		default:
			attr, err := s.attribute()
			if err != nil {
				return nil, err
			}
			el.Attributes = append(el.Attributes, attr)
			if s.limits.MaxAttrs > 0 && len(el.Attributes) > s.limits.MaxAttrs {
				return nil, &errors.LimitError{What: "attribute count", Limit: s.limits.MaxAttrs, Value: len(el.Attributes)}
			}
		}
	}
}

// content reads child nodes until the matching end tag is consumed.
func (s *scanner) content(tag string, depth int) ([]xmlnode.Node, error) {
	var children []xmlnode.Node
	for {
		if s.pos >= len(s.data) {
			return nil, s.errorf("unclosed element %q", tag)
		}
		if s.peek() == '<' {
			switch {
			case s.hasPrefix("</"):
				s.pos += 2
				end, err := s.name()
				if err != nil {
					return nil, err
				}
				if end != tag {
					return nil, s.errorf("end tag %q does not close %q", end, tag)
				}
				s.skipSpace()
				if !s.consume('>') {
					return nil, s.errorf("malformed end tag %q", end)
				}
				return children, nil
			case s.hasPrefix("<!--"):
				return nil, s.errorf("comments are not supported")
			case s.hasPrefix("<![CDATA["):
				return nil, s.errorf("CDATA sections are not supported")
			case s.hasPrefix("<!"):
				return nil, s.errorf("directives are not supported")
			case s.hasPrefix("<?"):
				return nil, s.errorf("processing instructions are not supported")
			default:
				child, err := s.element(depth + 1)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
			continue
		}

		text, err := s.text()
		if err != nil {
			return nil, err
		}
		children = append(children, xmlnode.Text(text))
	}
}

func (s *scanner) text() (string, error) {
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != '<' {
		s.pos++
	}
	if s.limits.MaxTokenSize > 0 && s.pos-start > s.limits.MaxTokenSize {
		return "", &errors.LimitError{What: "text length", Limit: s.limits.MaxTokenSize, Value: s.pos - start}
	}
	return string(s.data[start:s.pos]), nil
}

func (s *scanner) attribute() (xmlnode.Attribute, error) {
	name, err := s.name()
	if err != nil {
		return xmlnode.Attribute{}, err
	}
	s.skipSpace()
	if !s.consume('=') {
		return xmlnode.Attribute{}, s.errorf("attribute %q has no value", name)
	}
	s.skipSpace()

	quote := s.peek()
	if quote != '"' && quote != '\'' {
		return xmlnode.Attribute{}, s.errorf("attribute %q value is not quoted", name)
	}
	s.pos++

	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != quote {
		if s.data[s.pos] == '<' {
			return xmlnode.Attribute{}, s.errorf("attribute %q value contains '<'", name)
		}
		s.pos++
	}
	if s.pos >= len(s.data) {
		return xmlnode.Attribute{}, s.errorf("attribute %q value is unterminated", name)
	}
	if s.limits.MaxTokenSize > 0 && s.pos-start > s.limits.MaxTokenSize {
		return xmlnode.Attribute{}, &errors.LimitError{What: "attribute value length", Limit: s.limits.MaxTokenSize, Value: s.pos - start}
	}
	value := string(s.data[start:s.pos])
	s.pos++
	return xmlnode.Attribute{Name: name, Value: value}, nil
}

func (s *scanner) name() (string, error) {
	start := s.pos
	if s.pos >= len(s.data) || !isNameStartByte(s.data[s.pos]) {
		return "", s.errorf("invalid name")
	}
	s.pos++
	for s.pos < len(s.data) && isNameByte(s.data[s.pos]) {
		s.pos++
	}
	if s.limits.MaxTokenSize > 0 && s.pos-start > s.limits.MaxTokenSize {
		return "", &errors.LimitError{What: "name length", Limit: s.limits.MaxTokenSize, Value: s.pos - start}
	}
	return string(s.data[start:s.pos]), nil
}

func (s *scanner) skipXMLDecl() error {
	if !s.hasPrefix("<?") {
		return nil
	}
	if !s.atXMLDecl() {
		return s.errorf("processing instructions are not supported")
	}
	for s.pos < len(s.data)-1 {
		if s.data[s.pos] == '?' && s.data[s.pos+1] == '>' {
			s.pos += 2
			return nil
		}
		s.pos++
	}
	return s.errorf("unterminated XML declaration")
}

// atXMLDecl reports whether the scanner sits on an XML declaration proper:
// "<?xml" followed by whitespace or "?". A target that merely starts with
// "xml", such as xml-stylesheet, is a processing instruction.
func (s *scanner) atXMLDecl() bool {
	const decl = "<?xml"
	if !s.hasPrefix(decl) {
		return false
	}
	next := s.pos + len(decl)
	if next >= len(s.data) {
		return false
	}
	switch s.data[next] {
	case ' ', '\t', '\r', '\n', '?':
		return true
	}
	return false
}

func (s *scanner) skipBOM() {
	const bom = "\xef\xbb\xbf"
	if s.hasPrefix(bom) {
		s.pos += len(bom)
	}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.data) {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) consume(b byte) bool {
	if s.pos < len(s.data) && s.data[s.pos] == b {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) hasPrefix(p string) bool {
	if len(s.data)-s.pos < len(p) {
		return false
	}
	return string(s.data[s.pos:s.pos+len(p)]) == p
}

func (s *scanner) errorf(format string, args ...any) error {
	line, column := s.position()
	return &errors.ParseError{
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// position derives the 1-based line and column of the current offset.
func (s *scanner) position() (line, column int) {
	line, column = 1, 1
	for i := 0; i < s.pos && i < len(s.data); i++ {
		if s.data[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
