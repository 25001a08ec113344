// Package android reads Android resource XML files (res/values/strings.xml
// and friends) into a key → text table.
//
// Only <string> resources take part in reconciliation. Resources marked
// translatable="false" are parsed but excluded from Strings and Keys.
// <string-array>, <plurals> and every other element are skipped.
//
// Text is kept exactly as written in the file: Android escapes such as \'
// or \n are not interpreted, so the caller decides what to normalise.
package android

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minios-linux/crosscheck/xmltext"
)

// ---------------------------------------------------------------------------
// Data model
// ---------------------------------------------------------------------------

// Entry is a single <string> resource.
type Entry struct {
	// Name is the resource name (attribute name="…").
	Name string
	// Translatable reflects the translatable="…" attribute. Defaults to true.
	Translatable bool
	// Value is the raw element content. Empty means untranslated.
	Value string
}

// File represents a parsed Android resource file.
type File struct {
	// Path is the file the resources were read from, if any.
	Path string
	// Entries in document order.
	Entries []*Entry
	// byName maps resource name to index in Entries.
	byName map[string]int
}

// ParseError reports a structural problem in a resource file.
type ParseError struct {
	Path    string
	Element string
	Err     error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Element == "" {
		return fmt.Sprintf("%s: %v", path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", path, e.Element, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	// ErrNoResources is returned when the document root is not <resources>.
	ErrNoResources = errors.New("root element is not <resources>")
	// ErrMissingName is returned for a <string> without a name attribute.
	ErrMissingName = errors.New("missing name attribute")
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses an Android resource file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse parses Android resource XML.
func Parse(data []byte) (*File, error) {
	f := &File{byName: make(map[string]int)}

	dec, data, err := xmltext.NewDecoder(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	root, err := nextStart(dec)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if root.Name.Local != "resources" {
		return nil, &ParseError{Element: "<" + root.Name.Local + ">", Err: ErrNoResources}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Element: "<resources>", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "string" {
				if err := dec.Skip(); err != nil {
					return nil, &ParseError{Element: "<" + t.Name.Local + ">", Err: err}
				}
				continue
			}
			e, err := parseStringElement(dec, t, data)
			if err != nil {
				return nil, err
			}
			f.addEntry(e)

		case xml.EndElement:
			// </resources>; anything after the root is not our business
			// beyond being well-formed.
			if err := drain(dec); err != nil {
				return nil, &ParseError{Err: err}
			}
			return f, nil
		}
	}
}

// nextStart returns the document's root element.
func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, errors.New("empty document")
			}
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// drain consumes the remaining tokens so trailing garbage is reported.
func drain(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return fmt.Errorf("unexpected element <%s> after root", se.Name.Local)
		}
	}
}

// addEntry appends an entry and registers it in byName. A repeated name
// replaces the earlier entry but keeps its position; a non-translatable
// entry never replaces a translatable one.
func (f *File) addEntry(e *Entry) {
	if idx, ok := f.byName[e.Name]; ok {
		if f.Entries[idx].Translatable && !e.Translatable {
			return
		}
		f.Entries[idx] = e
		return
	}
	f.byName[e.Name] = len(f.Entries)
	f.Entries = append(f.Entries, e)
}

// parseAttrs extracts name and translatable from a start element.
func parseAttrs(elem xml.StartElement) (name string, translatable bool) {
	translatable = true
	name, _ = xmltext.Attr(elem, "name")
	if v, ok := xmltext.Attr(elem, "translatable"); ok && v == "false" {
		translatable = false
	}
	return
}

// parseStringElement parses a <string> element already opened.
func parseStringElement(dec *xml.Decoder, elem xml.StartElement, data []byte) (*Entry, error) {
	name, translatable := parseAttrs(elem)
	if name == "" {
		return nil, &ParseError{Element: "<string>", Err: ErrMissingName}
	}
	value, err := xmltext.ReadInner(dec, data)
	if err != nil {
		return nil, &ParseError{Element: xmltext.Describe("string", "name", name), Err: err}
	}
	return &Entry{
		Name:         name,
		Translatable: translatable,
		Value:        value,
	}, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Keys returns all translatable resource names in document order.
func (f *File) Keys() []string {
	var keys []string
	for _, e := range f.Entries {
		if e.Translatable {
			keys = append(keys, e.Name)
		}
	}
	return keys
}

// Strings returns the translatable resources as a name → value table.
func (f *File) Strings() map[string]string {
	m := make(map[string]string, len(f.Entries))
	for _, e := range f.Entries {
		if e.Translatable {
			m[e.Name] = e.Value
		}
	}
	return m
}

// Stats returns (total, translated, untranslated) counts for translatable resources.
func (f *File) Stats() (total, translated, untranslated int) {
	for _, e := range f.Entries {
		if !e.Translatable {
			continue
		}
		total++
		if e.Value != "" {
			translated++
		} else {
			untranslated++
		}
	}
	return
}
