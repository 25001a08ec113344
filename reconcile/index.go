package reconcile

import (
	"sort"

	"github.com/minios-linux/crosscheck/resource"
)

// Index maps English text to the key it was declared under.
type Index struct {
	keys map[string]string
	// Collisions lists every English text declared under more than one key.
	Collisions []Collision
}

// Collision records an English text shared by two keys in the same file.
// The later key replaces the earlier one in the index.
type Collision struct {
	Path    string
	English string
	Dropped string
	Kept    string
}

// BuildIndex inverts doc (key → English text) into English text → key.
// Keys are visited in document order, so for duplicated English text the
// last declared key wins. Empty texts are not indexed.
func BuildIndex(doc *resource.Document) *Index {
	ix := &Index{
		keys: make(map[string]string, doc.Len()),
	}
	for _, key := range doc.Keys {
		english := doc.Text(key)
		if english == "" {
			continue
		}
		if prev, ok := ix.keys[english]; ok && prev != key {
			ix.Collisions = append(ix.Collisions, Collision{
				Path:    doc.Path,
				English: english,
				Dropped: prev,
				Kept:    key,
			})
		}
		ix.keys[english] = key
	}
	return ix
}

// Key returns the key declared for english.
func (ix *Index) Key(english string) (string, bool) {
	k, ok := ix.keys[english]
	return k, ok
}

// Len returns the number of indexed English texts.
func (ix *Index) Len() int { return len(ix.keys) }

// Match returns the English texts present in both indices, sorted.
func Match(a, b *Index) []string {
	small, large := a, b
	if small.Len() > large.Len() {
		small, large = large, small
	}
	var common []string
	for english := range small.keys {
		if _, ok := large.keys[english]; ok {
			common = append(common, english)
		}
	}
	sort.Strings(common)
	return common
}
