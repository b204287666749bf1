package scene

import (
	"bytes"
	"encoding/json"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// contextSceneRoot is the root element of a ContextScene XML document.
const contextSceneRoot = "ContextScene"

// rewriteContextSceneXML translates every References/Reference/Path in a
// ContextScene XML document. A scene with no References section is a no-op
// and round-trips canonically.
func rewriteContextSceneXML(root *xmlNode, d Direction, table *ReferenceTable) ([]byte, error) {
	if root.XMLName.Local != contextSceneRoot {
		return nil, apierr.Newf(apierr.CodeInvalidScene, "unexpected root element %q", root.XMLName.Local)
	}

	refs := root.child("References")
	if refs != nil {
		for _, ref := range refs.Children {
			if ref.XMLName.Local != "Reference" {
				return nil, apierr.Newf(apierr.CodeInvalidScene, "unexpected element %q in References", ref.XMLName.Local)
			}
			pathNode := ref.child("Path")
			if pathNode == nil {
				return nil, apierr.New(apierr.CodeInvalidScene, "reference without a Path element")
			}
			translated, err := table.Translate(pathNode.Text, d)
			if err != nil {
				return nil, err
			}
			pathNode.Text = translated
		}
	}

	return encodeXML(root)
}

// rewriteContextSceneJSON translates every References entry Path in a
// ContextScene JSON document. All other top-level sections and all other
// per-reference fields are preserved verbatim. A scene without a
// References section is a no-op, matching the XML behavior.
func rewriteContextSceneJSON(doc []byte, d Direction, table *ReferenceTable) ([]byte, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, apierr.Wrap(apierr.CodeInvalidScene, "malformed ContextScene JSON", err)
	}

	if rawRefs, ok := top["References"]; ok {
		var refs map[string]map[string]json.RawMessage
		if err := json.Unmarshal(rawRefs, &refs); err != nil {
			return nil, apierr.Wrap(apierr.CodeInvalidScene, "malformed References section", err)
		}

		for key, ref := range refs {
			rawPath, ok := ref["Path"]
			if !ok {
				return nil, apierr.Newf(apierr.CodeInvalidScene, "reference %q without a Path field", key)
			}
			var path string
			if err := json.Unmarshal(rawPath, &path); err != nil {
				return nil, apierr.Wrap(apierr.CodeInvalidScene, "reference path is not a string", err)
			}

			translated, err := table.Translate(path, d)
			if err != nil {
				return nil, err
			}
			encoded, err := json.Marshal(translated)
			if err != nil {
				return nil, err
			}
			ref["Path"] = encoded
		}

		encoded, err := json.Marshal(refs)
		if err != nil {
			return nil, err
		}
		top["References"] = encoded
	}

	return encodeJSON(top)
}

// encodeJSON serializes with 4-space indent and without HTML escaping.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
