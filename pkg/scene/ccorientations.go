package scene

import (
	"strings"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// orientationsRoot is the root element of a CCOrientations XML document.
const orientationsRoot = "BlocksExchange"

// rewriteOrientationsXML translates every ImagePath and MaskPath element in
// a CCOrientations document. The directory component is the translated
// unit; the file basename is preserved.
func rewriteOrientationsXML(root *xmlNode, d Direction, table *ReferenceTable) ([]byte, error) {
	if root.XMLName.Local != orientationsRoot {
		return nil, apierr.Newf(apierr.CodeInvalidScene, "unexpected root element %q", root.XMLName.Local)
	}

	err := root.walk(func(n *xmlNode) error {
		if n.XMLName.Local != "ImagePath" && n.XMLName.Local != "MaskPath" {
			return nil
		}
		if n.Text == "" {
			return nil
		}
		translated, err := translateDir(n.Text, d, table)
		if err != nil {
			return err
		}
		n.Text = translated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return encodeXML(root)
}

// translateDir rewrites the directory component of an image path, keeping
// the basename.
func translateDir(imagePath string, d Direction, table *ReferenceTable) (string, error) {
	norm := NormalizePath(imagePath)
	i := strings.LastIndex(norm, "/")
	if i <= 0 {
		return "", apierr.Newf(apierr.CodeInvalidScene, "image path %q has no directory component", imagePath)
	}
	dir, base := norm[:i], norm[i+1:]

	translated, err := table.Translate(dir, d)
	if err != nil {
		return "", err
	}
	return translated + "/" + base, nil
}
