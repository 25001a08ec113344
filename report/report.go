// Package report prints reconciliation results as plain text.
//
// Each language gets a header line, one block per discrepancy and a closing
// separator:
//
//	Comparing translations for de...
//	English: A temporary error has occurred.
//	Android: Ein temporärer Fehler ist aufgetreten.
//	iOS: Ein Fehler ist aufgetreten.
//	---
//	---------------------------------------------
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/minios-linux/crosscheck/reconcile"
)

// DiscrepancySeparator follows every discrepancy block.
const DiscrepancySeparator = "---"

// LanguageSeparator closes the section of each language.
var LanguageSeparator = strings.Repeat("---", 15)

// Writer writes language sections to an io.Writer. The first write error is
// kept and returned by every later call.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Header starts the section of lang.
func (w *Writer) Header(lang string) error {
	w.printf("Comparing translations for %s...\n", lang)
	return w.err
}

// Discrepancy writes one English/Android/iOS block.
func (w *Writer) Discrepancy(d reconcile.Discrepancy) error {
	w.printf("English: %s\n", d.English)
	w.printf("Android: %s\n", d.Android)
	w.printf("iOS: %s\n", d.IOS)
	w.printf("%s\n", DiscrepancySeparator)
	return w.err
}

// Separator closes the current language section.
func (w *Writer) Separator() error {
	w.printf("%s\n", LanguageSeparator)
	return w.err
}

// Result writes a whole language section. A failed language gets a header
// and a separator only; its error is for the caller to log.
func (w *Writer) Result(r *reconcile.LanguageResult) error {
	w.Header(r.Language)
	if r.Comparison != nil {
		for _, d := range r.Comparison.Discrepancies {
			w.Discrepancy(d)
		}
	}
	return w.Separator()
}

// Summary accumulates totals over a run.
type Summary struct {
	Languages     int
	Compared      int
	Missing       int
	Failed        int
	Matched       int
	Discrepancies int
}

// Add records one language result.
func (s *Summary) Add(r *reconcile.LanguageResult) {
	s.Languages++
	switch {
	case r.Err == nil:
		s.Compared++
		if r.Comparison != nil {
			s.Matched += r.Comparison.Matched
			s.Discrepancies += len(r.Comparison.Discrepancies)
		}
	case r.Missing():
		s.Missing++
	default:
		s.Failed++
	}
}
