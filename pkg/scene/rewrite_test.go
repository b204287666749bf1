package scene

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

const sampleContextSceneXML = `<?xml version="1.0" encoding="utf-8"?>
<ContextScene version="5.0">
  <PhotoCollection>
    <Photos>
      <Photo id="0">
        <ImagePath>0:img_0001.jpg</ImagePath>
      </Photo>
    </Photos>
  </PhotoCollection>
  <References>
    <Reference id="0">
      <Path>C:/data/imgs</Path>
    </Reference>
  </References>
</ContextScene>
`

func testTable(t *testing.T) *ReferenceTable {
	t.Helper()
	rt := NewReferenceTable()
	if err := rt.AddReference("C:/data/imgs", "abcd-1234"); err != nil {
		t.Fatal(err)
	}
	return rt
}

func TestContextSceneXMLRoundTrip(t *testing.T) {
	rt := testTable(t)

	cloud, err := Rewrite([]byte(sampleContextSceneXML), ".xml", LocalToCloud, rt)
	if err != nil {
		t.Fatalf("L→C: %v", err)
	}
	if !bytes.Contains(cloud, []byte("<Path>rds:abcd-1234</Path>")) {
		t.Errorf("cloud form missing rds path:\n%s", cloud)
	}
	// Non-reference sections survive untouched.
	if !bytes.Contains(cloud, []byte("<ImagePath>0:img_0001.jpg</ImagePath>")) {
		t.Errorf("photo section lost:\n%s", cloud)
	}

	local, err := Rewrite(cloud, ".xml", CloudToLocal, rt)
	if err != nil {
		t.Fatalf("C→L: %v", err)
	}
	if !bytes.Contains(local, []byte("<Path>C:/data/imgs</Path>")) {
		t.Errorf("local form missing original path:\n%s", local)
	}

	// Round trip is identity on the canonical form.
	canon, err := Rewrite([]byte(sampleContextSceneXML), ".xml", LocalToCloud, rt)
	if err != nil {
		t.Fatal(err)
	}
	canonBack, err := Rewrite(canon, ".xml", CloudToLocal, rt)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Rewrite(canonBack, ".xml", LocalToCloud, rt)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(canon, again) {
		t.Errorf("canonical round trip not stable:\n%s\nvs\n%s", canon, again)
	}
}

func TestContextSceneXMLWithoutReferences(t *testing.T) {
	doc := []byte(`<ContextScene version="5.0"><MeshCollection/></ContextScene>`)
	out, err := Rewrite(doc, ".xml", LocalToCloud, NewReferenceTable())
	if err != nil {
		t.Fatalf("no-references scene should succeed: %v", err)
	}
	if !bytes.Contains(out, []byte("MeshCollection")) {
		t.Errorf("content lost:\n%s", out)
	}
}

func TestContextSceneJSONRewrite(t *testing.T) {
	doc := []byte(`{
    "version": "5.0",
    "References": {
        "0": {"Path": "C:/data/imgs"}
    },
    "PhotoCollection": {"Photos": {"0": {"ImagePath": "0:img_0001.jpg"}}}
}`)
	rt := testTable(t)

	cloud, err := Rewrite(doc, ".json", LocalToCloud, rt)
	if err != nil {
		t.Fatalf("L→C: %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(cloud, &top); err != nil {
		t.Fatalf("decode rewritten JSON: %v", err)
	}
	var refs map[string]map[string]string
	if err := json.Unmarshal(top["References"], &refs); err != nil {
		t.Fatal(err)
	}
	if refs["0"]["Path"] != "rds:abcd-1234" {
		t.Errorf("Path = %q, want rds:abcd-1234", refs["0"]["Path"])
	}
	if _, ok := top["PhotoCollection"]; !ok {
		t.Error("PhotoCollection section dropped")
	}

	local, err := Rewrite(cloud, ".json", CloudToLocal, rt)
	if err != nil {
		t.Fatalf("C→L: %v", err)
	}
	if !bytes.Contains(local, []byte(`"Path": "C:/data/imgs"`)) {
		t.Errorf("local path not restored:\n%s", local)
	}
}

func TestContextSceneJSONWithoutReferences(t *testing.T) {
	// Empty references succeed, matching the XML behavior.
	doc := []byte(`{"version": "5.0"}`)
	if _, err := Rewrite(doc, ".json", LocalToCloud, NewReferenceTable()); err != nil {
		t.Errorf("no-references JSON scene should succeed: %v", err)
	}
}

func TestCCOrientationsRewrite(t *testing.T) {
	doc := []byte(`<BlocksExchange version="3.1">
  <Block>
    <Photogroups>
      <Photogroup>
        <Photo>
          <ImagePath>C:/data/imgs/img_0001.jpg</ImagePath>
          <MaskPath>C:/data/masks/img_0001.png</MaskPath>
        </Photo>
      </Photogroup>
    </Photogroups>
  </Block>
</BlocksExchange>`)

	rt := NewReferenceTable()
	rt.AddReference("C:/data/imgs", "abcd-1234")
	rt.AddReference("C:/data/masks", "efgh-5678")

	cloud, err := Rewrite(doc, ".xml", LocalToCloud, rt)
	if err != nil {
		t.Fatalf("L→C: %v", err)
	}
	if !bytes.Contains(cloud, []byte("<ImagePath>rds:abcd-1234/img_0001.jpg</ImagePath>")) {
		t.Errorf("image path not rewritten:\n%s", cloud)
	}
	if !bytes.Contains(cloud, []byte("<MaskPath>rds:efgh-5678/img_0001.png</MaskPath>")) {
		t.Errorf("mask path not rewritten:\n%s", cloud)
	}

	local, err := Rewrite(cloud, ".xml", CloudToLocal, rt)
	if err != nil {
		t.Fatalf("C→L: %v", err)
	}
	if !bytes.Contains(local, []byte("<ImagePath>C:/data/imgs/img_0001.jpg</ImagePath>")) {
		t.Errorf("image path not restored:\n%s", local)
	}
}

func TestRewriteErrors(t *testing.T) {
	rt := NewReferenceTable()

	// Unknown root element.
	_, err := Rewrite([]byte(`<Unknown/>`), ".xml", LocalToCloud, rt)
	if apierr.CodeOf(err) != apierr.CodeInvalidScene {
		t.Errorf("unknown root: %v, want InvalidSceneError", err)
	}

	// Reference without Path.
	doc := []byte(`<ContextScene><References><Reference id="0"/></References></ContextScene>`)
	_, err = Rewrite(doc, ".xml", LocalToCloud, rt)
	if apierr.CodeOf(err) != apierr.CodeInvalidScene {
		t.Errorf("missing Path: %v, want InvalidSceneError", err)
	}

	// Untranslatable reference.
	doc = []byte(`<ContextScene><References><Reference id="0"><Path>C:/nope</Path></Reference></References></ContextScene>`)
	_, err = Rewrite(doc, ".xml", LocalToCloud, rt)
	if apierr.CodeOf(err) != apierr.CodeMissingReference {
		t.Errorf("unknown path: %v, want MissingReferenceError", err)
	}

	// Malformed XML.
	_, err = Rewrite([]byte(`<ContextScene`), ".xml", LocalToCloud, rt)
	if apierr.CodeOf(err) != apierr.CodeInvalidScene {
		t.Errorf("malformed XML: %v, want InvalidSceneError", err)
	}
}

func TestRewriteFileInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.xml")
	if err := os.WriteFile(path, []byte(sampleContextSceneXML), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RewriteFile(path, LocalToCloud, testTable(t)); err != nil {
		t.Fatalf("RewriteFile: %v", err)
	}

	out, _ := os.ReadFile(path)
	if !strings.Contains(string(out), "rds:abcd-1234") {
		t.Errorf("file not rewritten:\n%s", out)
	}
}

func TestFindSceneFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644)
	os.WriteFile(filepath.Join(dir, "scene.xml"), []byte(sampleContextSceneXML), 0644)

	path, ok := FindSceneFile(dir)
	if !ok || filepath.Base(path) != "scene.xml" {
		t.Errorf("FindSceneFile = %q, %v", path, ok)
	}

	if _, ok := FindSceneFile(t.TempDir()); ok {
		t.Error("empty dir should have no scene file")
	}
}
