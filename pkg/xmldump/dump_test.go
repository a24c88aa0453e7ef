package xmldump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/xmlc14n/pkg/xmlnode"
)

func TestDumpElement(t *testing.T) {
	tree := &xmlnode.Element{
		Tag:        "saml:Assertion",
		Attributes: []xmlnode.Attribute{{Name: "xmlns:saml", Value: "urn:saml"}},
		Children: []xmlnode.Node{
			&xmlnode.Element{Tag: "saml:Issuer", Children: []xmlnode.Node{xmlnode.Text("idp")}},
			&xmlnode.Element{Tag: "saml:Subject"},
		},
	}

	out := Dump(tree)

	require.NotEmpty(t, out)
	assert.Contains(t, out, `saml:Assertion [xmlns:saml="urn:saml"]`)
	assert.Contains(t, out, "saml:Issuer")
	assert.Contains(t, out, `"idp"`)
	assert.Contains(t, out, "saml:Subject")
}

func TestDumpText(t *testing.T) {
	out := Dump(xmlnode.Text("hello"))
	assert.Contains(t, out, `"hello"`)
}

func TestDumpElementWithoutAttributes(t *testing.T) {
	out := Dump(&xmlnode.Element{Tag: "foo"})
	assert.Contains(t, out, "foo")
	assert.NotContains(t, out, "[")
}
