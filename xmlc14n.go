// Package xmlc14n is a safe, minimal XML document model with an exact
// implementation of Exclusive XML Canonicalization, intended as the trust
// anchor when verifying XML digital signatures such as identity-provider
// assertions. Parsing keeps every name a plain string, so hostile documents
// cannot exhaust a symbol table; canonicalization and serialization are
// pure functions over immutable trees and safe for concurrent use.
//
// A signature verifier parses the document, extracts the signed region with
// the pkg/xmlnode query API, canonicalizes it, serializes it, and hands the
// bytes to its digest and signature routines. Digesting, signature checks,
// and key management are outside this module.
package xmlc14n

import (
	"fmt"

	"github.com/jacoelho/xmlc14n/internal/canonical"
	"github.com/jacoelho/xmlc14n/internal/parser"
	"github.com/jacoelho/xmlc14n/pkg/xmlnode"
)

// ParseOptions configures parse hardening limits. Zero values select the
// package defaults; negative values are rejected.
type ParseOptions struct {
	MaxDepth     int
	MaxAttrs     int
	MaxTokenSize int
}

// CanonicalizeOptions configures canonicalization.
type CanonicalizeOptions struct {
	// InclusiveNamespaces lists prefixes that are retained where declared,
	// starting at the canonicalization root, even when structurally unused
	// there. It mirrors the W3C InclusiveNamespaces PrefixList.
	InclusiveNamespaces []string
}

// Parse builds a node tree from an XML document using default limits.
func Parse(data []byte) (*xmlnode.Element, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseString is a convenience wrapper over Parse.
func ParseString(s string) (*xmlnode.Element, error) {
	return Parse([]byte(s))
}

// ParseWithOptions builds a node tree from an XML document with explicit
// hardening limits.
func ParseWithOptions(data []byte, opts ParseOptions) (*xmlnode.Element, error) {
	limits, err := resolveXMLParseLimits(opts.MaxDepth, opts.MaxAttrs, opts.MaxTokenSize)
	if err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	root, err := parser.Parse(data, limits)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return root, nil
}

// Canonicalize returns the exclusive canonical form of el as a new tree.
// The input tree is never mutated and may be canonicalized again.
func Canonicalize(el *xmlnode.Element, opts CanonicalizeOptions) *xmlnode.Element {
	return canonical.Element(el, opts.InclusiveNamespaces)
}

// CanonicalizeForest canonicalizes a sequence of sibling nodes sharing one
// incoming namespace state.
func CanonicalizeForest(nodes []xmlnode.Node, opts CanonicalizeOptions) []xmlnode.Node {
	return canonical.Forest(nodes, opts.InclusiveNamespaces)
}

// CanonicalForm parses data with default limits, canonicalizes the root,
// and returns the canonical bytes as a string. This is the form digests and
// signatures are computed over.
func CanonicalForm(data []byte, opts CanonicalizeOptions) (string, error) {
	root, err := Parse(data)
	if err != nil {
		return "", err
	}
	return Canonicalize(root, opts).String(), nil
}
