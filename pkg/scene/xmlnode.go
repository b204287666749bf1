package scene

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// xmlHeader is written in front of every serialized scene document.
const xmlHeader = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"

// xmlNode is a generic element tree used to round-trip scene documents
// without modelling every section: only reference paths are rewritten,
// everything else is preserved structurally.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*xmlNode `xml:",any"`
}

// parseXML decodes a document into the generic tree and canonicalizes
// whitespace-only character data introduced by pretty printing.
func parseXML(doc []byte) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(doc, &root); err != nil {
		return nil, err
	}
	root.canonicalize()
	return &root, nil
}

// canonicalize trims indentation text so that decode→encode is stable.
func (n *xmlNode) canonicalize() {
	n.Text = strings.TrimSpace(n.Text)
	if len(n.Children) > 0 {
		n.Text = ""
	}
	for _, c := range n.Children {
		c.canonicalize()
	}
}

// encodeXML serializes the tree with a UTF-8 declaration.
func encodeXML(root *xmlNode) ([]byte, error) {
	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// child returns the first direct child with the given local name.
func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// walk applies fn to every node in the subtree, depth first.
func (n *xmlNode) walk(fn func(*xmlNode) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.walk(fn); err != nil {
			return err
		}
	}
	return nil
}
