package xmlc14n

import (
	"cmp"
	"fmt"

	"github.com/jacoelho/xmlc14n/internal/parser"
)

const (
	defaultXMLMaxDepth     = 256
	defaultXMLMaxAttrs     = 256
	defaultXMLMaxTokenSize = 4 << 20
)

func resolveXMLParseLimits(maxDepth, maxAttrs, maxTokenSize int) (parser.Limits, error) {
	if maxDepth < 0 {
		return parser.Limits{}, fmt.Errorf("xml max depth must be >= 0")
	}
	if maxAttrs < 0 {
		return parser.Limits{}, fmt.Errorf("xml max attrs must be >= 0")
	}
	if maxTokenSize < 0 {
		return parser.Limits{}, fmt.Errorf("xml max token size must be >= 0")
	}
	return parser.Limits{
		MaxDepth:     defaultXMLLimit(maxDepth, defaultXMLMaxDepth),
		MaxAttrs:     defaultXMLLimit(maxAttrs, defaultXMLMaxAttrs),
		MaxTokenSize: defaultXMLLimit(maxTokenSize, defaultXMLMaxTokenSize),
	}, nil
}

func defaultXMLLimit(value, fallback int) int {
	return cmp.Or(value, fallback)
}
