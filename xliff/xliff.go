// Package xliff reads XLIFF 1.2 translation memory documents, the format
// Xcode exports for localization (File ▸ Export Localizations).
//
// Only the xliff → file → body → trans-unit structure in the
// urn:oasis:names:tc:xliff:document:1.2 namespace is read. Elements in
// other namespaces, <header> blocks and <group> wrappers are skipped.
package xliff

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minios-linux/crosscheck/xmltext"
)

// Namespace is the XLIFF 1.2 document namespace.
const Namespace = "urn:oasis:names:tc:xliff:document:1.2"

// Unit is a single <trans-unit>.
type Unit struct {
	ID     string
	Source string
	// Target is empty both for <target/> and for a target without text.
	Target string
	Note   string
}

// FileSection is one <file> element of the document.
type FileSection struct {
	Original       string
	SourceLanguage string
	TargetLanguage string
	Units          []*Unit
}

// Document is a parsed XLIFF document.
type Document struct {
	Path  string
	Files []*FileSection
}

// ParseError reports a structural problem in an XLIFF document.
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
	// ErrNotXLIFF is returned when the root is not an XLIFF 1.2 <xliff> element.
	ErrNotXLIFF = errors.New("root element is not <xliff> in namespace " + Namespace)
	// ErrMissingSource is returned for a trans-unit without <source>.
	ErrMissingSource = errors.New("missing <source> element")
	// ErrMissingTarget is returned for a trans-unit without <target>.
	ErrMissingTarget = errors.New("missing <target> element")
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses an XLIFF file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse parses XLIFF 1.2 data.
func Parse(data []byte) (*Document, error) {
	dec, data, err := xmltext.NewDecoder(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	p := &parser{dec: dec, data: data}
	return p.document()
}

type parser struct {
	dec  *xml.Decoder
	data []byte
}

func isXLIFF(name xml.Name, local string) bool {
	return name.Space == Namespace && name.Local == local
}

func (p *parser) document() (*Document, error) {
	var root xml.StartElement
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				err = errors.New("empty document")
			}
			return nil, &ParseError{Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = se
			break
		}
	}
	if !isXLIFF(root.Name, "xliff") {
		return nil, &ParseError{Element: "<" + root.Name.Local + ">", Err: ErrNotXLIFF}
	}

	doc := &Document{}
	err := p.children("<xliff>", func(se xml.StartElement) error {
		if !isXLIFF(se.Name, "file") {
			return p.skip(se)
		}
		f, err := p.file(se)
		if err != nil {
			return err
		}
		doc.Files = append(doc.Files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Trailing content must still be well-formed.
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return doc, nil
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok {
			return nil, &ParseError{Err: fmt.Errorf("unexpected element <%s> after root", se.Name.Local)}
		}
	}
}

// children calls fn for every direct child element until the parent's end
// tag. fn must consume the child completely.
func (p *parser) children(parent string, fn func(xml.StartElement) error) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return &ParseError{Element: parent, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) skip(se xml.StartElement) error {
	if err := p.dec.Skip(); err != nil {
		return &ParseError{Element: "<" + se.Name.Local + ">", Err: err}
	}
	return nil
}

func (p *parser) file(se xml.StartElement) (*FileSection, error) {
	f := &FileSection{}
	f.Original, _ = xmltext.Attr(se, "original")
	f.SourceLanguage, _ = xmltext.Attr(se, "source-language")
	f.TargetLanguage, _ = xmltext.Attr(se, "target-language")

	elem := xmltext.Describe("file", "original", f.Original)
	err := p.children(elem, func(child xml.StartElement) error {
		if !isXLIFF(child.Name, "body") {
			return p.skip(child)
		}
		return p.children("<body>", func(u xml.StartElement) error {
			if !isXLIFF(u.Name, "trans-unit") {
				return p.skip(u)
			}
			unit, err := p.unit(u)
			if err != nil {
				return err
			}
			f.Units = append(f.Units, unit)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *parser) unit(se xml.StartElement) (*Unit, error) {
	u := &Unit{}
	u.ID, _ = xmltext.Attr(se, "id")
	elem := xmltext.Describe("trans-unit", "id", u.ID)

	var hasSource, hasTarget, hasNote bool
	err := p.children(elem, func(child xml.StartElement) error {
		var dst *string
		switch {
		case isXLIFF(child.Name, "source") && !hasSource:
			dst, hasSource = &u.Source, true
		case isXLIFF(child.Name, "target") && !hasTarget:
			dst, hasTarget = &u.Target, true
		case isXLIFF(child.Name, "note") && !hasNote:
			dst, hasNote = &u.Note, true
		default:
			return p.skip(child)
		}
		text, err := xmltext.ReadInner(p.dec, p.data)
		if err != nil {
			return &ParseError{Element: elem, Err: err}
		}
		*dst = text
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case !hasSource:
		return nil, &ParseError{Element: elem, Err: ErrMissingSource}
	case !hasTarget:
		return nil, &ParseError{Element: elem, Err: ErrMissingTarget}
	}
	return u, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Units returns every trans-unit of every file section in document order.
func (d *Document) Units() []*Unit {
	var units []*Unit
	for _, f := range d.Files {
		units = append(units, f.Units...)
	}
	return units
}

// Keys returns the distinct source texts in order of first appearance.
func (d *Document) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, u := range d.Units() {
		if !seen[u.Source] {
			seen[u.Source] = true
			keys = append(keys, u.Source)
		}
	}
	return keys
}

// Strings returns the document as a source → target table. When the same
// source text occurs in several units the last one wins.
func (d *Document) Strings() map[string]string {
	m := make(map[string]string)
	for _, u := range d.Units() {
		m[u.Source] = u.Target
	}
	return m
}

// Stats returns (total, translated, untranslated) unit counts.
func (d *Document) Stats() (total, translated, untranslated int) {
	for _, u := range d.Units() {
		total++
		if u.Target != "" {
			translated++
		} else {
			untranslated++
		}
	}
	return
}
