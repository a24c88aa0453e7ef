// Package errors defines the recoverable error values returned by the
// xmlc14n tree query and parse operations. Every error is a plain value:
// queries on well-formed but unmatching input never panic, and callers
// distinguish failure classes with errors.As or the attached ErrorCode.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a failure class independently of the Go error type.
type ErrorCode string

const (
	// ErrAttributeNotFound indicates the requested attribute is absent.
	ErrAttributeNotFound ErrorCode = "c14n-attribute-not-found"
	// ErrChildNotFound indicates no direct child element matched.
	ErrChildNotFound ErrorCode = "c14n-child-not-found"
	// ErrNoChildren indicates the node has no structural children.
	ErrNoChildren ErrorCode = "c14n-no-children"
	// ErrTextNotFound indicates the first child is not a text leaf.
	ErrTextNotFound ErrorCode = "c14n-text-not-found"
	// ErrNamespaceAttributeNotFound indicates no namespace declaration
	// applies to the node's prefix.
	ErrNamespaceAttributeNotFound ErrorCode = "c14n-namespace-attr-not-found"
	// ErrXMLParse indicates the input bytes are not a supported XML document.
	ErrXMLParse ErrorCode = "xml-parse-error"
	// ErrLimitExceeded indicates the input breached a parse hardening limit.
	ErrLimitExceeded ErrorCode = "xml-limit-exceeded"
)

// AttributeNotFoundError reports a failed attribute lookup.
type AttributeNotFoundError struct {
	Name string
}

// Code returns ErrAttributeNotFound.
func (e *AttributeNotFoundError) Code() ErrorCode { return ErrAttributeNotFound }

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("[%s] attribute %q not found", ErrAttributeNotFound, e.Name)
}

// ChildNotFoundError reports that no direct child element matched. Children
// carries the serialized forms of the node's actual children for diagnostics.
type ChildNotFoundError struct {
	Matcher  string
	Children []string
}

// Code returns ErrChildNotFound.
func (e *ChildNotFoundError) Code() ErrorCode { return ErrChildNotFound }

func (e *ChildNotFoundError) Error() string {
	return fmt.Sprintf("[%s] no child matching %s in %s", ErrChildNotFound, e.Matcher, summarize(e.Children))
}

// NoChildrenError reports that a node holds no structural children (it is
// empty, or contains only whitespace text).
type NoChildrenError struct {
	Children []string
}

// Code returns ErrNoChildren.
func (e *NoChildrenError) Code() ErrorCode { return ErrNoChildren }

func (e *NoChildrenError) Error() string {
	return fmt.Sprintf("[%s] no structural children in %s", ErrNoChildren, summarize(e.Children))
}

// TextNotFoundError reports that the first child of a node is not text.
type TextNotFoundError struct {
	Children []string
}

// Code returns ErrTextNotFound.
func (e *TextNotFoundError) Code() ErrorCode { return ErrTextNotFound }

func (e *TextNotFoundError) Error() string {
	return fmt.Sprintf("[%s] first child is not text in %s", ErrTextNotFound, summarize(e.Children))
}

// NamespaceAttributeNotFoundError reports that a node declares no namespace
// for its own prefix.
type NamespaceAttributeNotFoundError struct {
	Tag string
}

// Code returns ErrNamespaceAttributeNotFound.
func (e *NamespaceAttributeNotFoundError) Code() ErrorCode {
	return ErrNamespaceAttributeNotFound
}

func (e *NamespaceAttributeNotFoundError) Error() string {
	return fmt.Sprintf("[%s] no namespace declaration for %q", ErrNamespaceAttributeNotFound, e.Tag)
}

// ParseError reports malformed or unsupported input with 1-based position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// Code returns ErrXMLParse.
func (e *ParseError) Code() ErrorCode { return ErrXMLParse }

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s at line %d, column %d", ErrXMLParse, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("[%s] %s", ErrXMLParse, e.Message)
}

// LimitError reports input that breached a parse hardening limit.
type LimitError struct {
	What  string
	Limit int
	Value int
}

// Code returns ErrLimitExceeded.
func (e *LimitError) Code() ErrorCode { return ErrLimitExceeded }

func (e *LimitError) Error() string {
	return fmt.Sprintf("[%s] %s %d exceeds limit %d", ErrLimitExceeded, e.What, e.Value, e.Limit)
}

// CodeOf extracts the ErrorCode from any error produced by this module.
// It reports false for nil and for foreign errors.
func CodeOf(err error) (ErrorCode, bool) {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	return "", false
}

func summarize(children []string) string {
	if len(children) == 0 {
		return "(no children)"
	}
	return strings.Join(children, "")
}
