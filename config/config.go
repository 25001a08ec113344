// Package config reads and writes the .crosscheck.yaml configuration file.
//
// The file names the English source files of both pipelines, the target
// languages, and the characters stripped before translations are compared.
// Options missing from the file fall back to Defaults; when no file exists
// the defaults are used as-is.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".crosscheck.yaml"

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .crosscheck.yaml structure.
type File struct {
	// Languages are the target language codes. Each code is also the suffix
	// of the translated file names (strings_de.xml, en_de.xliff).
	Languages []string `yaml:"languages,omitempty"`
	// AndroidSource is the English Android resource file.
	AndroidSource string `yaml:"android_source,omitempty"`
	// IOSSource is the English iOS XLIFF file.
	IOSSource string `yaml:"ios_source,omitempty"`
	// IgnoredCharacters are removed from translations before comparing.
	// Each entry is a single character.
	IgnoredCharacters []string `yaml:"ignored_characters,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() *File {
	return &File{
		Languages:         []string{"de", "es", "fr", "it-IT", "ja-JP", "ko-KR", "pt-BR", "ru-RU", "zh-CN", "zh-TW"},
		AndroidSource:     "Android/strings V2.xml",
		IOSSource:         "iOS/en V1.xliff",
		IgnoredCharacters: []string{`\`},
	}
}

// Config is a validated configuration with source paths resolved.
type Config struct {
	Languages         []string
	AndroidSource     string
	IOSSource         string
	IgnoredCharacters []string
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the config file at path. Returns nil if the file doesn't exist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// LoadOrDefault loads path and fills every option the file leaves out with
// its default. A missing file yields Defaults().
func LoadOrDefault(path string) (*File, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	def := Defaults()
	if f == nil {
		return def, nil
	}
	if len(f.Languages) == 0 {
		f.Languages = def.Languages
	}
	if f.AndroidSource == "" {
		f.AndroidSource = def.AndroidSource
	}
	if f.IOSSource == "" {
		f.IOSSource = def.IOSSource
	}
	if f.IgnoredCharacters == nil {
		f.IgnoredCharacters = def.IgnoredCharacters
	}
	return f, nil
}

// Save writes the file as YAML, creating parent directories.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Resolve validates the file and resolves relative source paths against
// rootDir.
func (f *File) Resolve(rootDir string) (*Config, error) {
	langs, err := NormalizeLanguages(f.Languages)
	if err != nil {
		return nil, err
	}
	if len(langs) == 0 {
		return nil, errors.New("no languages configured")
	}
	if f.AndroidSource == "" {
		return nil, errors.New("android_source is not set")
	}
	if f.IOSSource == "" {
		return nil, errors.New("ios_source is not set")
	}
	for _, c := range f.IgnoredCharacters {
		if utf8.RuneCountInString(c) != 1 {
			return nil, fmt.Errorf("ignored_characters: %q is not a single character", c)
		}
	}

	return &Config{
		Languages:         langs,
		AndroidSource:     resolvePath(rootDir, f.AndroidSource),
		IOSSource:         resolvePath(rootDir, f.IOSSource),
		IgnoredCharacters: append([]string(nil), f.IgnoredCharacters...),
	}, nil
}

func resolvePath(rootDir, p string) string {
	if filepath.IsAbs(p) || rootDir == "" {
		return p
	}
	return filepath.Join(rootDir, p)
}

// NormalizeLanguages trims, deduplicates and validates language codes.
// Codes keep their spelling since they are used verbatim in file names.
func NormalizeLanguages(codes []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		if err := ValidateLanguage(code); err != nil {
			return nil, err
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

// ValidateLanguage checks that code is safe to splice into a file name.
// Codes are otherwise opaque: Android qualifiers such as "zh-rCN" or
// "b+sr+Latn" and folder names such as "Base" are accepted as written.
func ValidateLanguage(code string) error {
	if strings.ContainsAny(code, `/\ `) || strings.Contains(code, "..") {
		return fmt.Errorf("language %q: not usable in a file name", code)
	}
	return nil
}

// SplitList splits a comma-separated flag value.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitChars turns a flag value into one entry per character.
func SplitChars(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
