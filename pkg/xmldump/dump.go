// Package xmldump renders node trees in an indented branch layout for logs
// and test output.
package xmldump

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/jacoelho/xmlc14n/pkg/xmlnode"
)

// Dump renders the tree rooted at n, one branch per element, text leaves
// quoted.
func Dump(n xmlnode.Node) string {
	switch v := n.(type) {
	case xmlnode.Text:
		return treeprint.NewWithRoot(fmt.Sprintf("%q", string(v))).String()
	case *xmlnode.Element:
		tree := treeprint.NewWithRoot(label(v))
		addChildren(tree, v)
		return tree.String()
	default:
		return treeprint.New().String()
	}
}

func addChildren(branch treeprint.Tree, el *xmlnode.Element) {
	for _, c := range el.Children {
		switch v := c.(type) {
		case xmlnode.Text:
			branch.AddNode(fmt.Sprintf("%q", string(v)))
		case *xmlnode.Element:
			addChildren(branch.AddBranch(label(v)), v)
		}
	}
}

func label(el *xmlnode.Element) string {
	if len(el.Attributes) == 0 {
		return el.Tag
	}
	var sb strings.Builder
	sb.WriteString(el.Tag)
	sb.WriteString(" [")
	for i, a := range el.Attributes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%q", a.Name, a.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
