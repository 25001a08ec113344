// Package i18n translates crosscheck's own log messages.
//
// It wraps the gotext library to provide simple T() and N() functions.
// Catalogs are embedded in the binary via //go:embed and loaded by Init().
// Only messages written to stderr go through this package; the report on
// stdout is never translated.
//
// Usage:
//
//	import "github.com/minios-linux/crosscheck/i18n"
//
//	func main() {
//	    i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	    fmt.Fprintln(os.Stderr, i18n.T("No discrepancies found"))
//	}
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/crosscheck.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name.
const domain = "crosscheck"

// po is the gotext locale object used for translations.
var po *gotext.Locale

// Init selects the catalog closest to lang and loads it. If lang is empty
// it is detected from LANGUAGE, LC_ALL, LC_MESSAGES and LANG (in that
// order, matching GNU gettext). Returns the catalog language, or "" when
// messages stay untranslated.
//
// Init should be called once at program startup, before any T() or N() calls.
func Init(lang string) string {
	if lang == "" {
		lang = detectLanguage()
	}

	catalog := matchCatalog(lang, available())
	if catalog == "" {
		po = nil
		return ""
	}
	po = gotext.NewLocaleFSWithPath(catalog, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
	return catalog
}

// available lists the embedded catalog languages.
func available() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	return langs
}

// matchCatalog picks the catalog serving lang ("de_AT" is served by "de").
// English and unmatched languages get no catalog.
func matchCatalog(lang string, catalogs []string) string {
	want, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil || len(catalogs) == 0 {
		return ""
	}
	if base, _ := want.Base(); base.String() == "en" {
		return ""
	}

	tags := make([]language.Tag, 0, len(catalogs))
	for _, c := range catalogs {
		tags = append(tags, language.Make(strings.ReplaceAll(c, "_", "-")))
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf < language.High {
		return ""
	}
	return catalogs[idx]
}

// T translates a string. If no translation is available, returns the
// original string unchanged (standard gettext passthrough behavior).
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a string with plural forms. The singular form is used
// when n == 1, the plural form otherwise (exact rules depend on the
// target language's plural formula).
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// Strip encoding suffix (e.g. "ru_RU.UTF-8" -> "ru_RU")
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			// "C" and "POSIX" mean no translation
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}
