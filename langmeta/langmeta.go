// Package langmeta provides language display metadata (native names and
// emoji flags) for the CLI.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

func canonicalize(lang string) string {
	return strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
}

// Resolve returns best-effort metadata for a language code such as "de",
// "pt-BR" or "zh_TW". Unknown codes resolve to the code itself and no flag.
func Resolve(lang string) Meta {
	tag, err := language.Parse(canonicalize(lang))
	if err != nil {
		return Meta{Name: lang}
	}
	name := display.Self.Name(tag)
	if name == "" {
		name = lang
	}
	return Meta{Name: name, Flag: flag(tag)}
}

// flag builds the regional-indicator emoji for the tag's region, guessing
// the region from the language when the tag does not name one.
func flag(tag language.Tag) string {
	region, conf := tag.Region()
	if conf == language.No || !region.IsCountry() {
		return ""
	}
	return FlagFromRegion(region.String())
}

// FlagFromRegion converts a two-letter region code to its emoji flag.
// Returns "" for anything that is not two ASCII letters.
func FlagFromRegion(region string) string {
	if len(region) != 2 {
		return ""
	}
	region = strings.ToUpper(region)
	var b strings.Builder
	for i := 0; i < 2; i++ {
		c := region[i]
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(rune(0x1F1E6 + int(c-'A')))
	}
	return b.String()
}
