package realitydata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/config"
	"github.com/realitycloud/realitycloud/pkg/rest"
	"github.com/realitycloud/realitycloud/pkg/scene"
	"github.com/realitycloud/realitycloud/pkg/transfer"
)

// fakeTransfer stands in for the blob layer. Upload snapshots the
// source files so assertions survive temp-dir cleanup.
type fakeTransfer struct {
	mu        sync.Mutex
	uploads   []string // source paths passed to Upload
	captured  map[string][]byte
	uploadErr error
	// downloads maps blob name to content, written into destDir.
	downloads map[string][]byte
}

func (f *fakeTransfer) Upload(ctx context.Context, sasURL, source string, opts transfer.UploadOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, source)
	if f.captured == nil {
		f.captured = make(map[string][]byte)
	}
	entries, err := os.ReadDir(source)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(source, e.Name()))
			if err == nil {
				f.captured[e.Name()] = data
			}
		}
	}
	return f.uploadErr
}

func (f *fakeTransfer) Download(ctx context.Context, sasURL, destDir string, opts transfer.DownloadOptions) error {
	for name, data := range f.downloads {
		p := filepath.Join(destDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeTransfer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	session := rest.NewSession(config.Default(), rest.StaticToken("Bearer t")).WithBaseURL(srv.URL)
	ft := &fakeTransfer{}
	return &Client{session: session, transfer: ft}, ft
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestCreateAndGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /reality-management/reality-data/", func(w http.ResponseWriter, r *http.Request) {
		var rd RealityData
		json.NewDecoder(r.Body).Decode(&rd)
		if rd.ITwinID != "itwin-1" || rd.Type != TypeCCImageCollection {
			t.Errorf("create body = %+v", rd)
		}
		rd.ID = "rd-1"
		writeJSON(w, http.StatusCreated, envelope{RealityData: rd})
	})
	mux.HandleFunc("GET /reality-management/reality-data/rd-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope{RealityData: RealityData{ID: "rd-1", DisplayName: "Test"}})
	})
	c, _ := newTestClient(t, mux)

	created := c.Create(context.Background(), RealityData{
		ITwinID:     "itwin-1",
		DisplayName: "Test",
		Type:        TypeCCImageCollection,
	})
	if !created.Ok() || created.Value.ID != "rd-1" || created.StatusCode != http.StatusCreated {
		t.Fatalf("Create = %+v", created)
	}

	got := c.Get(context.Background(), "rd-1")
	if !got.Ok() || got.Value.DisplayName != "Test" {
		t.Fatalf("Get = %+v", got)
	}
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /reality-management/reality-data/rd-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, envelope{RealityData: RealityData{ID: "rd-1"}})
	})
	c, _ := newTestClient(t, mux)

	if resp := c.Update(context.Background(), "rd-1", Patch{}.WithAuthoring(true)); !resp.Ok() {
		t.Fatalf("Update: %+v", resp)
	}
	if len(body) != 1 {
		t.Fatalf("patch body = %v, want only authoring", body)
	}
	if string(body["authoring"]) != "true" {
		t.Errorf("authoring = %s", body["authoring"])
	}
}

func TestDeleteIdempotentError(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /reality-management/reality-data/rd-1", func(w http.ResponseWriter, r *http.Request) {
		if deleted {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"error": map[string]string{"code": "RealityDataNotFound", "message": "gone"},
			})
			return
		}
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	c, _ := newTestClient(t, mux)

	first := c.DeleteData(context.Background(), "rd-1")
	if !first.Ok() || first.StatusCode != http.StatusNoContent {
		t.Fatalf("first delete = %+v", first)
	}
	second := c.DeleteData(context.Background(), "rd-1")
	if second.Ok() || second.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete = %+v", second)
	}
	if second.Err.ServiceCode() != "RealityDataNotFound" {
		t.Errorf("service code = %q", second.Err.ServiceCode())
	}
}

func TestListFilterAndContinuation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reality-management/reality-data", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("iTwinId") != "itwin-1" || q.Get("types") != "ContextScene,OPC" || q.Get("$top") != "50" {
			t.Errorf("query = %v", q)
		}
		if r.Header.Get("Prefer") != "return=minimal" {
			t.Errorf("Prefer = %q", r.Header.Get("Prefer"))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"realityData": []RealityData{{ID: "a"}, {ID: "b"}},
			"_links": map[string]interface{}{
				"next": map[string]string{"href": "https://api.bentley.com/reality-management/reality-data?continuationToken=tok123&$top=50"},
			},
		})
	})
	c, _ := newTestClient(t, mux)

	resp := c.List(context.Background(), ListFilter{
		ITwinID: "itwin-1",
		Types:   []string{TypeContextScene, TypeOPC},
		Top:     50,
		Minimal: true,
	})
	if !resp.Ok() {
		t.Fatalf("List: %+v", resp)
	}
	if len(resp.Value.RealityData) != 2 || resp.Value.ContinuationToken != "tok123" {
		t.Fatalf("page = %+v", resp.Value)
	}

	if bad := c.List(context.Background(), ListFilter{Top: 1001}); bad.Ok() {
		t.Error("top=1001 accepted")
	}
}

func TestExtentValidation(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		writeJSON(w, http.StatusOK, envelope{})
	}))

	inverted := []*Extent{
		{SouthWest: Point{Latitude: 50, Longitude: 1}, NorthEast: Point{Latitude: 49, Longitude: 2}},
		{SouthWest: Point{Latitude: 49, Longitude: 3}, NorthEast: Point{Latitude: 50, Longitude: 2}},
	}
	for _, e := range inverted {
		if resp := c.Create(context.Background(), RealityData{Extent: e}); resp.Ok() || resp.Err.Code != apierr.CodeSchema {
			t.Errorf("Create with extent %+v = %+v, want %s", e, resp, apierr.CodeSchema)
		}
		if resp := c.Update(context.Background(), "rd-1", Patch{Extent: e}); resp.Ok() || resp.Err.Code != apierr.CodeSchema {
			t.Errorf("Update with extent %+v = %+v, want %s", e, resp, apierr.CodeSchema)
		}
		if resp := c.List(context.Background(), ListFilter{Extent: e}); resp.Ok() || resp.Err.Code != apierr.CodeSchema {
			t.Errorf("List with extent %+v = %+v, want %s", e, resp, apierr.CodeSchema)
		}
	}
	if called {
		t.Error("invalid extent reached the service")
	}

	valid := &Extent{
		SouthWest: Point{Latitude: 49, Longitude: 1},
		NorthEast: Point{Latitude: 50, Longitude: 2},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid extent rejected: %v", err)
	}
	var none *Extent
	if err := none.Validate(); err != nil {
		t.Errorf("nil extent rejected: %v", err)
	}
}

func TestAccessURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reality-management/reality-data/rd-1/readaccess", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("iTwinId") != "itwin-1" {
			t.Errorf("iTwinId = %q", r.URL.Query().Get("iTwinId"))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_links": map[string]interface{}{
				"containerUrl": map[string]string{"href": "https://blob.example/c?sas=1"},
			},
		})
	})
	c, _ := newTestClient(t, mux)

	resp := c.ReadAccessURL(context.Background(), "rd-1", "itwin-1")
	if !resp.Ok() || resp.Value != "https://blob.example/c?sas=1" {
		t.Fatalf("ReadAccessURL = %+v", resp)
	}
}

// authoringServer tracks the authoring flag updates an upload performs.
func authoringServer(t *testing.T, haveData bool) (*http.ServeMux, *[]bool) {
	t.Helper()
	var states []bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reality-management/reality-data/rd-1/writeaccess", func(w http.ResponseWriter, r *http.Request) {
		if !haveData {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"error": map[string]string{"code": "RealityDataNotFound", "message": "gone"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_links": map[string]interface{}{
				"containerUrl": map[string]string{"href": "https://blob.example/c?sas=w"},
			},
		})
	})
	mux.HandleFunc("PATCH /reality-management/reality-data/rd-1", func(w http.ResponseWriter, r *http.Request) {
		var patch Patch
		json.NewDecoder(r.Body).Decode(&patch)
		if patch.Authoring != nil {
			states = append(states, *patch.Authoring)
		}
		writeJSON(w, http.StatusOK, envelope{RealityData: RealityData{ID: "rd-1"}})
	})
	return mux, &states
}

func TestUploadBracketsAuthoring(t *testing.T) {
	mux, states := authoringServer(t, true)
	c, _ := newTestClient(t, mux)

	resp := c.UploadRealityData(context.Background(), "rd-1", t.TempDir(), TransferOptions{ITwinID: "itwin-1"})
	if !resp.Ok() {
		t.Fatalf("UploadRealityData: %+v", resp)
	}
	want := []bool{true, false}
	if len(*states) != 2 || (*states)[0] != want[0] || (*states)[1] != want[1] {
		t.Fatalf("authoring updates = %v, want %v", *states, want)
	}
}

func TestUploadAuthoringClearedOnFailure(t *testing.T) {
	mux, states := authoringServer(t, true)
	c, ft := newTestClient(t, mux)
	ft.uploadErr = apierr.New(apierr.CodeTransferFailed, "network error after first file")

	resp := c.UploadRealityData(context.Background(), "rd-1", t.TempDir(), TransferOptions{})
	if resp.Ok() {
		t.Fatal("upload reported success despite transfer failure")
	}
	if resp.Err.Code != apierr.CodeTransferFailed {
		t.Errorf("code = %s, want %s", resp.Err.Code, apierr.CodeTransferFailed)
	}
	// authoring must end false, cleared exactly once
	if len(*states) != 2 || (*states)[1] != false {
		t.Fatalf("authoring updates = %v, want [true false]", *states)
	}
}

func TestUploadToMissingRealityData(t *testing.T) {
	mux, states := authoringServer(t, false)
	c, _ := newTestClient(t, mux)

	resp := c.UploadRealityData(context.Background(), "rd-1", t.TempDir(), TransferOptions{})
	if resp.Ok() || resp.Err.Code != apierr.CodeInvalidState {
		t.Fatalf("resp = %+v, want %s", resp, apierr.CodeInvalidState)
	}
	if len(*states) != 0 {
		t.Errorf("authoring touched before access check: %v", *states)
	}
}

func TestUploadSceneRealityData(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.json")
	doc := `{
    "version": "5.0",
    "References": {
        "0": {
            "Path": "C:/data/imgs"
        }
    }
}`
	if err := os.WriteFile(scenePath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	table := scene.NewReferenceTable()
	if err := table.AddReference("C:/data/imgs", "abcd-1234"); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /reality-management/reality-data/", func(w http.ResponseWriter, r *http.Request) {
		var rd RealityData
		json.NewDecoder(r.Body).Decode(&rd)
		if rd.RootDocument != "scene.json" || rd.Type != TypeContextScene {
			t.Errorf("create body = %+v", rd)
		}
		rd.ID = "rd-9"
		writeJSON(w, http.StatusCreated, envelope{RealityData: rd})
	})
	mux.HandleFunc("GET /reality-management/reality-data/rd-9/writeaccess", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_links": map[string]interface{}{"containerUrl": map[string]string{"href": "u"}},
		})
	})
	mux.HandleFunc("PATCH /reality-management/reality-data/rd-9", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope{RealityData: RealityData{ID: "rd-9"}})
	})
	c, ft := newTestClient(t, mux)

	resp := c.UploadSceneRealityData(context.Background(), SceneUpload{
		ITwinID:     "itwin-1",
		DisplayName: "Scene",
		Type:        TypeContextScene,
		ScenePath:   scenePath,
		Table:       table,
	})
	if !resp.Ok() || resp.Value != "rd-9" {
		t.Fatalf("UploadSceneRealityData = %+v", resp)
	}

	if len(ft.uploads) != 1 {
		t.Fatalf("uploads = %v", ft.uploads)
	}
	// the uploaded copy carries the cloud reference; the original is untouched
	if !strings.Contains(string(ft.captured["scene.json"]), "rds:abcd-1234") {
		t.Errorf("uploaded scene not rewritten: %s", ft.captured["scene.json"])
	}
	original, _ := os.ReadFile(scenePath)
	if !strings.Contains(string(original), "C:/data/imgs") {
		t.Error("original scene was modified")
	}
	// the temporary directory is removed once the call returns
	if _, err := os.Stat(ft.uploads[0]); !os.IsNotExist(err) {
		t.Errorf("temp dir %s still exists", ft.uploads[0])
	}
}

func TestDownloadRewritesScene(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reality-management/reality-data/rd-1/readaccess", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_links": map[string]interface{}{"containerUrl": map[string]string{"href": "u"}},
		})
	})
	c, ft := newTestClient(t, mux)
	ft.downloads = map[string][]byte{
		"scene.json": []byte(`{
    "version": "5.0",
    "References": {
        "0": {
            "Path": "rds:abcd-1234"
        }
    }
}`),
	}

	table := scene.NewReferenceTable()
	if err := table.AddReference("C:/data/imgs", "abcd-1234"); err != nil {
		t.Fatal(err)
	}
	dest := t.TempDir()
	resp := c.DownloadRealityData(context.Background(), "rd-1", dest, TransferOptions{Table: table})
	if !resp.Ok() {
		t.Fatalf("DownloadRealityData: %+v", resp)
	}
	got, err := os.ReadFile(filepath.Join(dest, "scene.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "C:/data/imgs") {
		t.Errorf("scene not rewritten to local form: %s", got)
	}
}
