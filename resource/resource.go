// Package resource gives the Android and XLIFF parsers a common shape: a
// Document mapping an opaque key to its text, in document order.
//
// For Android files the key is the resource name. For XLIFF files the key is
// the source text of the trans-unit and the text is its target.
package resource

import (
	"fmt"

	"github.com/minios-linux/crosscheck/android"
	"github.com/minios-linux/crosscheck/xliff"
)

// Format identifies a file format family.
type Format string

const (
	// FormatAndroid is Android resource XML (strings.xml).
	FormatAndroid Format = "android"
	// FormatXLIFF is XLIFF 1.2 as exported by Xcode.
	FormatXLIFF Format = "xliff"
)

// Document is a parsed file reduced to key → text.
type Document struct {
	Path string
	// Keys lists every key once, in order of first appearance.
	Keys []string

	text map[string]string
}

// NewDocument builds a Document from a key order and a key → text table.
// Keys missing from order are not reachable through Keys.
func NewDocument(path string, order []string, text map[string]string) *Document {
	if text == nil {
		text = make(map[string]string)
	}
	return &Document{Path: path, Keys: order, text: text}
}

// Text returns the text stored under key; empty when the key is absent or
// its text is empty.
func (d *Document) Text(key string) string {
	return d.text[key]
}

// Len returns the number of keys.
func (d *Document) Len() int { return len(d.Keys) }

// ParserFunc parses the file at path.
type ParserFunc func(path string) (*Document, error)

var parsers = map[Format]ParserFunc{
	FormatAndroid: parseAndroid,
	FormatXLIFF:   parseXLIFF,
}

// ParseFile parses path with the parser registered for format.
func ParseFile(format Format, path string) (*Document, error) {
	parse, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return parse(path)
}

func parseAndroid(path string) (*Document, error) {
	f, err := android.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewDocument(path, f.Keys(), f.Strings()), nil
}

func parseXLIFF(path string) (*Document, error) {
	d, err := xliff.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewDocument(path, d.Keys(), d.Strings()), nil
}
