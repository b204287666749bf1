// Package scene translates the references embedded in ContextScene and
// CCOrientations documents between local filesystem paths and cloud
// reality-data identifiers.
package scene

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// CloudPrefix delimits a cloud reality-data id inside a scene path.
// Exactly four characters.
const CloudPrefix = "rds:"

// Direction selects which way references are translated.
type Direction int

const (
	// LocalToCloud rewrites local paths into rds:<id> form.
	LocalToCloud Direction = iota

	// CloudToLocal rewrites rds:<id> references into local paths.
	CloudToLocal
)

func (d Direction) String() string {
	if d == LocalToCloud {
		return "local-to-cloud"
	}
	return "cloud-to-local"
}

// NormalizePath collapses platform separators to forward slashes and strips
// any trailing slash, so that paths written on different hosts compare equal.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// ReferenceTable is a bidirectional mapping between local paths and cloud
// reality-data ids. A local path appears at most once, a cloud id appears
// at most once, and lookups in both directions are O(1).
type ReferenceTable struct {
	localToCloud map[string]string
	cloudToLocal map[string]string
}

// NewReferenceTable creates an empty table.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{
		localToCloud: make(map[string]string),
		cloudToLocal: make(map[string]string),
	}
}

// AddReference records a local-path ↔ cloud-id pair. Re-adding the same
// pair is a no-op; a pair that conflicts with an existing entry on either
// side is rejected.
func (t *ReferenceTable) AddReference(localPath, cloudID string) error {
	localPath = NormalizePath(localPath)
	if localPath == "" || cloudID == "" {
		return fmt.Errorf("reference table: empty local path or cloud id")
	}

	if existing, ok := t.localToCloud[localPath]; ok && existing != cloudID {
		return fmt.Errorf("reference table: %q already mapped to %q", localPath, existing)
	}
	if existing, ok := t.cloudToLocal[cloudID]; ok && existing != localPath {
		return fmt.Errorf("reference table: id %q already mapped to %q", cloudID, existing)
	}

	t.localToCloud[localPath] = cloudID
	t.cloudToLocal[cloudID] = localPath
	return nil
}

// RemoveReference deletes the pair keyed by localPath. It reports whether
// an entry was removed.
func (t *ReferenceTable) RemoveReference(localPath string) bool {
	localPath = NormalizePath(localPath)
	id, ok := t.localToCloud[localPath]
	if !ok {
		return false
	}
	delete(t.localToCloud, localPath)
	delete(t.cloudToLocal, id)
	return true
}

// CloudID looks up the cloud id for a local path.
func (t *ReferenceTable) CloudID(localPath string) (string, bool) {
	id, ok := t.localToCloud[NormalizePath(localPath)]
	return id, ok
}

// LocalPath looks up the local path for a cloud id.
func (t *ReferenceTable) LocalPath(cloudID string) (string, bool) {
	p, ok := t.cloudToLocal[cloudID]
	return p, ok
}

// Len returns the number of pairs in the table.
func (t *ReferenceTable) Len() int {
	return len(t.localToCloud)
}

// Translate converts a single reference string in the requested direction.
// Untranslatable references fail with MissingReferenceError.
func (t *ReferenceTable) Translate(ref string, d Direction) (string, error) {
	switch d {
	case LocalToCloud:
		id, ok := t.CloudID(ref)
		if !ok {
			return "", apierr.Newf(apierr.CodeMissingReference, "no cloud id for path %q", ref)
		}
		return CloudPrefix + id, nil

	case CloudToLocal:
		if !strings.HasPrefix(ref, CloudPrefix) {
			return "", apierr.Newf(apierr.CodeMissingReference, "reference %q is not cloud-qualified", ref)
		}
		local, ok := t.LocalPath(ref[len(CloudPrefix):])
		if !ok {
			return "", apierr.Newf(apierr.CodeMissingReference, "no local path for id %q", ref[len(CloudPrefix):])
		}
		return local, nil

	default:
		return "", fmt.Errorf("unknown direction %d", d)
	}
}

// Save persists the table as text: one "local<TAB>id" line per pair, UTF-8.
func (t *ReferenceTable) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for local, id := range t.localToCloud {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", local, id); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadReferenceTable reloads a table persisted by Save. Blank lines and
// lines starting with '#' are ignored.
func LoadReferenceTable(path string) (*ReferenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := NewReferenceTable()
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		local, id, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("reference table %s:%d: missing tab separator", path, line)
		}
		if err := t.AddReference(local, id); err != nil {
			return nil, fmt.Errorf("reference table %s:%d: %w", path, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
