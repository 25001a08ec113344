package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParseFileDispatch(t *testing.T) {
	dir := t.TempDir()

	t.Run("android", func(t *testing.T) {
		path := writeFile(t, dir, "strings.xml", `<resources>
  <string name="error">A temporary error has occurred.</string>
  <string name="app" translatable="false">App</string>
  <string name="ok">OK</string>
</resources>`)

		doc, err := ParseFile(FormatAndroid, path)
		if err != nil {
			t.Fatalf("ParseFile error: %v", err)
		}
		if doc.Path != path {
			t.Errorf("Path = %q, want %q", doc.Path, path)
		}
		if diff := cmp.Diff([]string{"error", "ok"}, doc.Keys); diff != "" {
			t.Errorf("Keys mismatch (-want +got):\n%s", diff)
		}
		if got := doc.Text("error"); got != "A temporary error has occurred." {
			t.Errorf("Text(error) = %q", got)
		}
		if got := doc.Text("app"); got != "" {
			t.Errorf("Text(app) = %q, want empty for translatable=false", got)
		}
	})

	t.Run("xliff", func(t *testing.T) {
		path := writeFile(t, dir, "en.xliff", `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body>
  <trans-unit id="1"><source>A temporary error has occurred.</source><target>A temporary error has occurred.</target></trans-unit>
</body></file></xliff>`)

		doc, err := ParseFile(FormatXLIFF, path)
		if err != nil {
			t.Fatalf("ParseFile error: %v", err)
		}
		if doc.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", doc.Len())
		}
		if got := doc.Text("A temporary error has occurred."); got != "A temporary error has occurred." {
			t.Errorf("Text() = %q", got)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := ParseFile(Format("po"), filepath.Join(dir, "x.po"))
		if err == nil || !strings.Contains(err.Error(), "unknown format") {
			t.Fatalf("ParseFile error = %v, want unknown format", err)
		}
	})
}

func TestDocumentText(t *testing.T) {
	doc := NewDocument("mem", []string{"a", "b"}, map[string]string{"a": "A", "b": ""})
	if doc.Text("a") != "A" || doc.Text("b") != "" || doc.Text("missing") != "" {
		t.Fatalf("Text() returned unexpected values")
	}
	if diff := cmp.Diff([]string{"a", "b"}, doc.Keys); diff != "" {
		t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
	}

	empty := NewDocument("", nil, nil)
	if empty.Len() != 0 || empty.Text("x") != "" {
		t.Fatalf("empty document is not empty")
	}
}
