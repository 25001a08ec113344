// Package xmltext holds the token-level helpers shared by the resource
// parsers: decoder setup for declared encodings, reading the inner text of
// an element and looking up attributes.
package xmltext

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// NewDecoder returns a decoder over data together with the bytes it reads.
// A document whose XML declaration names an encoding other than UTF-8 is
// transcoded to UTF-8 first, so decoder offsets always index the returned
// bytes.
func NewDecoder(data []byte) (*xml.Decoder, []byte, error) {
	if label := declaredEncoding(data); label != "" && !isUTF8(label) {
		enc, err := ianaindex.IANA.Encoding(label)
		if err != nil || enc == nil {
			return nil, nil, fmt.Errorf("unsupported encoding %q", label)
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding %s: %w", label, err)
		}
		data = decoded
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Input is UTF-8 by now whatever the declaration says.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	return dec, data, nil
}

func isUTF8(label string) bool {
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}

// declaredEncoding returns the encoding named in the XML declaration, or ""
// when there is no declaration or it names none.
func declaredEncoding(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(data, []byte("?>"))
	if end < 0 {
		return ""
	}
	decl := string(data[len("<?xml"):end])
	i := strings.Index(decl, "encoding")
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(decl[i+len("encoding"):], " \t\r\n")
	if !strings.HasPrefix(rest, "=") {
		return ""
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	rest = rest[1:]
	j := strings.IndexByte(rest, quote)
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// ReadInner reads the content of an element whose start tag was just
// returned by dec, up to and including its matching end tag.
//
// Character data is returned decoded (entities resolved, CDATA unwrapped).
// Inline child elements such as <xliff:g> or <b> are kept as they appear in
// data, so a translation carrying markup compares as the full string.
// Comments and processing instructions are dropped.
//
// data must be the exact byte slice dec is reading from.
func ReadInner(dec *xml.Decoder, data []byte) (string, error) {
	var b []byte
	depth := 1
	for depth > 0 {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		end := dec.InputOffset()

		switch t := tok.(type) {
		case xml.CharData:
			b = append(b, t...)
		case xml.StartElement:
			depth++
			b = append(b, raw(data, start, end)...)
		case xml.EndElement:
			depth--
			if depth > 0 {
				b = append(b, raw(data, start, end)...)
			}
		}
	}
	return string(b), nil
}

// raw returns data[start:end], clamped to the slice bounds.
func raw(data []byte, start, end int64) []byte {
	if start < 0 || end > int64(len(data)) || start >= end {
		return nil
	}
	return data[start:end]
}

// Attr returns the value of the attribute with the given local name.
func Attr(elem xml.StartElement, local string) (string, bool) {
	for _, a := range elem.Attr {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

// Describe renders a start element for error messages, e.g.
// `<string name="error">` or `<trans-unit id="42">`.
func Describe(local, attr, value string) string {
	if attr == "" {
		return "<" + local + ">"
	}
	return fmt.Sprintf("<%s %s=%q>", local, attr, value)
}
