package reconcile

import (
	"strings"

	"github.com/minios-linux/crosscheck/resource"
)

// Normalizer strips a fixed set of characters from translations before they
// are compared. The strip is global: it does not look at context, so an
// ignored backslash is removed wherever it appears.
type Normalizer struct {
	ignored []string
}

// NewNormalizer returns a Normalizer removing every string in ignored.
func NewNormalizer(ignored []string) *Normalizer {
	n := &Normalizer{}
	for _, s := range ignored {
		if s != "" {
			n.ignored = append(n.ignored, s)
		}
	}
	return n
}

// Clean removes the ignored characters from s.
func (n *Normalizer) Clean(s string) string {
	for _, c := range n.ignored {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}

// Discrepancy is a matched English text whose translations differ.
// Android and IOS hold the translations as found in the files, before
// normalization.
type Discrepancy struct {
	English string
	Android string
	IOS     string
}

// Sources are the four documents taking part in one comparison.
type Sources struct {
	EnglishAndroid    *resource.Document
	EnglishIOS        *resource.Document
	TranslatedAndroid *resource.Document
	TranslatedIOS     *resource.Document
}

// Comparison is the outcome of comparing one language.
type Comparison struct {
	// Matched is the number of English texts found in both pipelines.
	Matched int
	// Discrepancies are ordered by English text.
	Discrepancies []Discrepancy
	// Collisions found while indexing the English sources.
	Collisions []Collision
}

// Compare indexes the English documents by text, matches them and reports
// every matched entry whose normalized translations are both non-empty and
// different.
func Compare(src Sources, norm *Normalizer) *Comparison {
	androidIx := BuildIndex(src.EnglishAndroid)
	iosIx := BuildIndex(src.EnglishIOS)

	common := Match(androidIx, iosIx)
	c := &Comparison{Matched: len(common)}
	c.Collisions = append(c.Collisions, androidIx.Collisions...)
	c.Collisions = append(c.Collisions, iosIx.Collisions...)

	for _, english := range common {
		androidKey, _ := androidIx.Key(english)
		iosKey, _ := iosIx.Key(english)

		androidRaw := src.TranslatedAndroid.Text(androidKey)
		iosRaw := src.TranslatedIOS.Text(iosKey)

		androidClean := norm.Clean(androidRaw)
		iosClean := norm.Clean(iosRaw)
		if androidClean == "" || iosClean == "" {
			continue
		}
		if androidClean != iosClean {
			c.Discrepancies = append(c.Discrepancies, Discrepancy{
				English: english,
				Android: androidRaw,
				IOS:     iosRaw,
			})
		}
	}
	return c
}
