package xliff

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleXLIFF = `<?xml version="1.0" encoding="UTF-8"?>
<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2" version="1.2">
  <file original="App/en.lproj/Localizable.strings" source-language="en" target-language="de" datatype="plaintext">
    <header>
      <tool tool-id="com.apple.dt.xcode" tool-name="Xcode"/>
    </header>
    <body>
      <trans-unit id="error.temporary" xml:space="preserve">
        <source>A temporary error has occurred.</source>
        <target>Ein Fehler ist aufgetreten.</target>
        <note>Generic error</note>
      </trans-unit>
      <trans-unit id="greeting">
        <source>Hello</source>
        <target/>
      </trans-unit>
    </body>
  </file>
  <file original="App/en.lproj/InfoPlist.strings" source-language="en" target-language="de">
    <body>
      <trans-unit id="CFBundleName">
        <source>My App</source>
        <target>Meine App</target>
      </trans-unit>
    </body>
  </file>
</xliff>`

func TestParse_Sample(t *testing.T) {
	doc, err := Parse([]byte(sampleXLIFF))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(doc.Files))
	}
	f := doc.Files[0]
	if f.Original != "App/en.lproj/Localizable.strings" || f.SourceLanguage != "en" || f.TargetLanguage != "de" {
		t.Errorf("file attrs = %q %q %q", f.Original, f.SourceLanguage, f.TargetLanguage)
	}

	wantUnits := []*Unit{
		{ID: "error.temporary", Source: "A temporary error has occurred.", Target: "Ein Fehler ist aufgetreten.", Note: "Generic error"},
		{ID: "greeting", Source: "Hello"},
		{ID: "CFBundleName", Source: "My App", Target: "Meine App"},
	}
	if diff := cmp.Diff(wantUnits, doc.Units()); diff != "" {
		t.Errorf("Units() mismatch (-want +got):\n%s", diff)
	}

	wantStrings := map[string]string{
		"A temporary error has occurred.": "Ein Fehler ist aufgetreten.",
		"Hello":                           "",
		"My App":                          "Meine App",
	}
	if diff := cmp.Diff(wantStrings, doc.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}

	total, translated, untranslated := doc.Stats()
	if total != 3 || translated != 2 || untranslated != 1 {
		t.Errorf("Stats() = %d/%d/%d, want 3/2/1", total, translated, untranslated)
	}
}

func TestParse_DuplicateSourceLastWins(t *testing.T) {
	data := `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body>
  <trans-unit id="1"><source>OK</source><target>Okay</target></trans-unit>
  <trans-unit id="2"><source>Cancel</source><target>Abbrechen</target></trans-unit>
  <trans-unit id="3"><source>OK</source><target>In Ordnung</target></trans-unit>
</body></file></xliff>`

	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := doc.Strings()["OK"]; got != "In Ordnung" {
		t.Errorf("Strings()[OK] = %q, want In Ordnung", got)
	}
	if diff := cmp.Diff([]string{"OK", "Cancel"}, doc.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_IgnoresForeignNamespaceAndGroups(t *testing.T) {
	data := `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2" xmlns:x="urn:other">
  <x:file><body><trans-unit id="a"><source>A</source><target>A</target></trans-unit></body></x:file>
  <file>
    <body>
      <group><trans-unit id="b"><source>B</source><target>B</target></trans-unit></group>
      <x:trans-unit id="c"><source>C</source></x:trans-unit>
      <trans-unit id="d"><source>D</source><target>Dee</target><x:extra/></trans-unit>
    </body>
  </file>
</xliff>`

	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"D": "Dee"}, doc.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InlineMarkupInTarget(t *testing.T) {
	data := `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body>
  <trans-unit id="1"><source>Hello <g id="1">world</g></source><target>Hallo <g id="1">Welt</g></target></trans-unit>
</body></file></xliff>`

	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	u := doc.Units()[0]
	if u.Source != `Hello <g id="1">world</g>` || u.Target != `Hallo <g id="1">Welt</g>` {
		t.Errorf("unit = %#v", u)
	}
}

// ---------------------------------------------------------------------------
// Error tests
// ---------------------------------------------------------------------------

func TestParse_DeclaredWindows1252(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
		`<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body>` +
		"<trans-unit id=\"1\"><source>Coffee</source><target>Caf\xe9 \x80</target></trans-unit>" +
		`</body></file></xliff>`)

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"Coffee": "Café €"}, doc.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing target",
			xml:     `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body><trans-unit id="t1"><source>S</source></trans-unit></body></file></xliff>`,
			wantErr: ErrMissingTarget,
			wantMsg: `<trans-unit id="t1">`,
		},
		{
			name:    "missing source",
			xml:     `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body><trans-unit id="t2"><target>T</target></trans-unit></body></file></xliff>`,
			wantErr: ErrMissingSource,
			wantMsg: `<trans-unit id="t2">`,
		},
		{
			name:    "root without namespace",
			xml:     `<xliff><file/></xliff>`,
			wantErr: ErrNotXLIFF,
		},
		{
			name:    "wrong root",
			xml:     `<resources/>`,
			wantErr: ErrNotXLIFF,
		},
		{
			name:    "malformed markup",
			xml:     `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body><trans-unit id="t3"><source>S</target></trans-unit></body></file></xliff>`,
			wantMsg: `<trans-unit id="t3">`,
		},
		{
			name:    "truncated",
			xml:     `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body>`,
			wantMsg: "<body>",
		},
		{
			name: "empty",
			xml:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.xml))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %T, want *ParseError", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("Parse() error = %q, want it to mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("error names the file", func(t *testing.T) {
		path := filepath.Join(dir, "en_de.xliff")
		data := `<xliff xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body><trans-unit id="x"><source>S</source></trans-unit></body></file></xliff>`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := ParseFile(path)
		if err == nil || !strings.Contains(err.Error(), path) {
			t.Fatalf("ParseFile error = %v, want it to name %s", err, path)
		}
		if !errors.Is(err, ErrMissingTarget) {
			t.Fatalf("ParseFile error = %v, want ErrMissingTarget", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		path := filepath.Join(dir, "en.xliff")
		if err := os.WriteFile(path, []byte(sampleXLIFF), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		doc, err := ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile error: %v", err)
		}
		if doc.Path != path {
			t.Errorf("Path = %q, want %q", doc.Path, path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "missing.xliff"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("ParseFile error = %v, want fs.ErrNotExist", err)
		}
	})
}
