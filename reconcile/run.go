// Package reconcile compares the translations of two localization pipelines,
// Android resource XML and iOS XLIFF, on the English text they share.
//
// For every configured language the English sources of both pipelines are
// indexed by text, the shared texts are matched, and the translated files are
// looked up under the matched keys. Translations that still differ after the
// configured characters are stripped are reported as discrepancies.
package reconcile

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/minios-linux/crosscheck/config"
	"github.com/minios-linux/crosscheck/resource"
)

// ErrMissingTranslation marks a language whose translated file does not exist.
var ErrMissingTranslation = errors.New("translated file not found")

// TranslatedPath derives the path of a translated file by inserting
// "_<lang>" before the extension of the English file name:
// "Android/strings V2.xml" → "Android/strings V2_de.xml".
func TranslatedPath(base, lang string) string {
	dir, name := filepath.Split(base)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if strings.TrimLeft(stem, ".") == "" {
		// A leading dot does not start an extension: ".xliff" has none.
		stem, ext = name, ""
	}
	return dir + stem + "_" + lang + ext
}

// Paths are the four files compared for one language.
type Paths struct {
	EnglishAndroid    string
	EnglishIOS        string
	TranslatedAndroid string
	TranslatedIOS     string
}

// PathsFor returns the files compared for lang under cfg.
func PathsFor(cfg *config.Config, lang string) Paths {
	return Paths{
		EnglishAndroid:    cfg.AndroidSource,
		EnglishIOS:        cfg.IOSSource,
		TranslatedAndroid: TranslatedPath(cfg.AndroidSource, lang),
		TranslatedIOS:     TranslatedPath(cfg.IOSSource, lang),
	}
}

// LanguageResult is the outcome for one language: either a Comparison or
// an error explaining why the language could not be compared.
type LanguageResult struct {
	Language   string
	Paths      Paths
	Comparison *Comparison
	Err        error
}

// Missing reports whether the language failed only because a translated
// file does not exist.
func (r *LanguageResult) Missing() bool {
	return errors.Is(r.Err, ErrMissingTranslation)
}

// Options control how Run handles failing languages.
type Options struct {
	// Strict stops the run at the first language that fails, including
	// languages whose translated files are missing.
	Strict bool
}

// Run compares every configured language in order and passes each result
// to emit as soon as it is available.
//
// A failing English source aborts the run before any language is compared.
// A failing language is reported through its LanguageResult and the run
// continues, unless opts.Strict is set, in which case Run returns the
// language's error after emitting it. An error returned by emit stops the
// run.
func Run(cfg *config.Config, opts Options, emit func(*LanguageResult) error) error {
	enAndroid, err := resource.ParseFile(resource.FormatAndroid, cfg.AndroidSource)
	if err != nil {
		return fmt.Errorf("english android source: %w", err)
	}
	enIOS, err := resource.ParseFile(resource.FormatXLIFF, cfg.IOSSource)
	if err != nil {
		return fmt.Errorf("english ios source: %w", err)
	}

	norm := NewNormalizer(cfg.IgnoredCharacters)
	for _, lang := range cfg.Languages {
		res := &LanguageResult{Language: lang, Paths: PathsFor(cfg, lang)}
		res.Comparison, res.Err = compareLanguage(enAndroid, enIOS, res.Paths, norm)

		if err := emit(res); err != nil {
			return err
		}
		if res.Err != nil && opts.Strict {
			return fmt.Errorf("language %s: %w", lang, res.Err)
		}
	}
	return nil
}

func compareLanguage(enAndroid, enIOS *resource.Document, paths Paths, norm *Normalizer) (*Comparison, error) {
	trAndroid, err := parseTranslated(resource.FormatAndroid, paths.TranslatedAndroid)
	if err != nil {
		return nil, err
	}
	trIOS, err := parseTranslated(resource.FormatXLIFF, paths.TranslatedIOS)
	if err != nil {
		return nil, err
	}
	return Compare(Sources{
		EnglishAndroid:    enAndroid,
		EnglishIOS:        enIOS,
		TranslatedAndroid: trAndroid,
		TranslatedIOS:     trIOS,
	}, norm), nil
}

func parseTranslated(format resource.Format, path string) (*resource.Document, error) {
	doc, err := resource.ParseFile(format, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingTranslation, path)
		}
		return nil, err
	}
	return doc, nil
}
