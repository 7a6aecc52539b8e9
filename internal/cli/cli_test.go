package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetArgs(args)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()
	return buf.String(), err
}

// writeBleveConfig points both realms at an on-disk bleve directory so that
// separate command runs share the indexes.
func writeBleveConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := `
http:
  port: 8080
realms:
  users:
    driver: bleve
    bleve:
      path: ` + filepath.Join(dir, "indexes") + `
  catalog:
    driver: bleve
    bleve:
      path: ` + filepath.Join(dir, "indexes") + `
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeDocs(t *testing.T, docs string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.json")
	if err := os.WriteFile(path, []byte(docs), 0o600); err != nil {
		t.Fatalf("write docs: %v", err)
	}
	return path
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"expand", "search", "index", "health", "version"} {
		if _, _, err := cmd.Find([]string{name}); err != nil {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
	for _, flag := range []string{"env", "config", "log-level"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("flag %q not registered", flag)
		}
	}
}

func TestExpand_PackageURL(t *testing.T) {
	out, err := execute(t, "expand", "pkg:maven/org.apache@1.0")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{`"pkg:maven/org.apache@1.0"`, `"pkg:maven/org.apache%401.0"`}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestExpand_PlainText(t *testing.T) {
	out, err := execute(t, "expand", "openssl")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "(wildcard)") {
		t.Errorf("expected wildcard marker, got %q", out)
	}
}

func TestExpand_RequiresArg(t *testing.T) {
	if _, err := execute(t, "expand"); err == nil {
		t.Fatal("expected error without text")
	}
}

func TestIndexAndSearch(t *testing.T) {
	cfg := writeBleveConfig(t)
	catalog := writeDocs(t, `[
		{"id": "c1", "type": "component", "fields": {"name": "OpenSSL"}},
		{"id": "r1", "type": "release", "fields": {"name": "OpenSSL", "version": "3.0.13"}}
	]`)
	users := writeDocs(t, `[
		{"id": "u1", "type": "user", "fields": {"fullname": "Jane Doe", "email": "jane@example.com"}}
	]`)

	out, err := execute(t, "--config", cfg, "index", "catalog", catalog)
	if err != nil {
		t.Fatalf("index catalog: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Indexed 2 of 2 documents.") {
		t.Errorf("unexpected index output: %q", out)
	}
	if out, err = execute(t, "--config", cfg, "index", "users", users); err != nil {
		t.Fatalf("index users: %v\n%s", err, out)
	}

	out, err = execute(t, "--config", cfg, "search", "openssl", "--json")
	if err != nil {
		t.Fatalf("search: %v\n%s", err, out)
	}
	var results []resultJSON
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	got := make(map[string]string, len(results))
	for _, r := range results {
		got[r.ID] = r.Name
	}
	if got["c1"] != "OpenSSL" || got["r1"] != "OpenSSL 3.0.13" || len(got) != 2 {
		t.Errorf("unexpected results: %v", got)
	}

	out, err = execute(t, "--config", cfg, "search", "jane", "--type", "user")
	if err != nil {
		t.Fatalf("search users: %v\n%s", err, out)
	}
	if !strings.Contains(out, "jane@example.com") || strings.Contains(out, "OpenSSL") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestIndex_ReportsInvalidDocuments(t *testing.T) {
	cfg := writeBleveConfig(t)
	docs := writeDocs(t, `[
		{"id": "c1", "type": "component", "fields": {"name": "zlib"}},
		{"id": "", "type": "component", "fields": {"name": "no id"}}
	]`)

	out, err := execute(t, "--config", cfg, "index", "catalog", docs)
	if err == nil {
		t.Fatal("expected error for invalid document")
	}
	if !strings.Contains(out, "Indexed 1 of 2 documents.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestIndex_UnknownRealm(t *testing.T) {
	cfg := writeBleveConfig(t)
	docs := writeDocs(t, `[]`)

	if _, err := execute(t, "--config", cfg, "index", "projects", docs); err == nil {
		t.Fatal("expected error for unknown realm")
	}
}

func TestHealth(t *testing.T) {
	cfg := writeBleveConfig(t)

	out, err := execute(t, "--config", cfg, "health")
	if err != nil {
		t.Fatalf("health: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Status: ok") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Errorf("unexpected version output: %q", out)
	}
}
