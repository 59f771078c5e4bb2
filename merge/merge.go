// Package merge applies translated text back onto a resource catalog.
package merge

import (
	"github.com/minios-linux/resxkit/extract"
	"github.com/minios-linux/resxkit/resx"
)

// Apply writes translations onto file and returns the number of entries set.
//
// Each translated key is correlated to its entry through the ordinal the
// extractor recorded for that key, so the iteration order of translations
// is irrelevant and missing keys simply leave the source value in place.
// Keys unknown to tm, and ordinals whose entry no longer carries that key,
// are ignored.
//
// file is modified in place: pass a clone per locale.
func Apply(file *resx.File, translations map[string]string, tm *extract.TextMap) int {
	entries := file.Entries()
	applied := 0
	for key, text := range translations {
		ordinal, ok := tm.Ordinal(key)
		if !ok || ordinal < 0 || ordinal >= len(entries) {
			continue
		}
		e := entries[ordinal]
		if e.Name != key {
			continue
		}
		e.Value = text
		applied++
	}
	return applied
}

// Carry copies the values of keys from an existing translated catalog into
// dst. Keys missing from either catalog are skipped. Returns the number of
// entries copied.
func Carry(dst, existing *resx.File, keys []string) int {
	carried := 0
	for _, key := range keys {
		v, ok := existing.Get(key)
		if !ok {
			continue
		}
		if dst.Set(key, v) {
			carried++
		}
	}
	return carried
}
