package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// Rewrite translates every reference in a serialized scene document. The
// format is selected by the file extension: ".json" is a ContextScene JSON
// document, anything else is parsed as XML and dispatched on the root
// element (ContextScene or BlocksExchange).
func Rewrite(doc []byte, ext string, d Direction, table *ReferenceTable) ([]byte, error) {
	if strings.EqualFold(ext, ".json") {
		return rewriteContextSceneJSON(doc, d, table)
	}

	root, err := parseXML(doc)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInvalidScene, "malformed scene XML", err)
	}
	switch root.XMLName.Local {
	case contextSceneRoot:
		return rewriteContextSceneXML(root, d, table)
	case orientationsRoot:
		return rewriteOrientationsXML(root, d, table)
	default:
		return nil, apierr.Newf(apierr.CodeInvalidScene, "unexpected root element %q", root.XMLName.Local)
	}
}

// RewriteFileTo reads src, translates its references, and writes the
// result to dst.
func RewriteFileTo(src, dst string, d Direction, table *ReferenceTable) error {
	doc, err := os.ReadFile(src)
	if err != nil {
		return apierr.Wrap(apierr.CodeInvalidScene, "read scene file", err)
	}

	out, err := Rewrite(doc, filepath.Ext(src), d, table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return apierr.Wrap(apierr.CodeInvalidScene, "write scene file", err)
	}
	return nil
}

// RewriteFile translates a scene file in place.
func RewriteFile(path string, d Direction, table *ReferenceTable) error {
	return RewriteFileTo(path, path, d, table)
}

// IsSceneFile reports whether path holds a ContextScene or CCOrientations
// document.
func IsSceneFile(path string) bool {
	doc, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var top map[string]json.RawMessage
		if err := json.Unmarshal(doc, &top); err != nil {
			return false
		}
		_, hasVersion := top["version"]
		_, hasRefs := top["References"]
		return hasVersion || hasRefs
	}

	root, err := parseXML(doc)
	if err != nil {
		return false
	}
	return root.XMLName.Local == contextSceneRoot || root.XMLName.Local == orientationsRoot
}

// FindSceneFile scans a directory (non-recursively) for the first scene
// document it contains.
func FindSceneFile(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".xml" && ext != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if IsSceneFile(path) {
			return path, true
		}
	}
	return "", false
}
