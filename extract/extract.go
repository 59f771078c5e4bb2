// Package extract collects the translatable text of a resource catalog.
//
// Extraction walks the catalog in document order and records, for every
// entry, its key, its source text and its position in the catalog. The key
// order produced here is the single ordering used by every later stage:
// request bodies, response records, reassembly and merge-back.
package extract

import "github.com/minios-linux/resxkit/resx"

// TextMap is the ordered key -> source text mapping of one catalog.
//
// Keys holds the keys in extraction order, Text maps each key to its source
// text, and Ordinals[i] is the index in the catalog's entry sequence that
// Keys[i] came from.
type TextMap struct {
	Keys     []string
	Text     map[string]string
	Ordinals []int

	index map[string]int // key -> position in Keys
}

// Extract builds the TextMap of f. Every entry is translatable.
func Extract(f *resx.File) *TextMap {
	entries := f.Entries()
	tm := &TextMap{
		Keys:     make([]string, 0, len(entries)),
		Text:     make(map[string]string, len(entries)),
		Ordinals: make([]int, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		tm.add(e.Name, e.Value, i)
	}
	return tm
}

// New builds a TextMap from parallel key, text and ordinal slices.
// It panics if the slices differ in length.
func New(keys, texts []string, ordinals []int) *TextMap {
	if len(keys) != len(texts) || len(keys) != len(ordinals) {
		panic("extract: keys, texts and ordinals must have the same length")
	}
	tm := &TextMap{
		Text:  make(map[string]string, len(keys)),
		index: make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		tm.add(k, texts[i], ordinals[i])
	}
	return tm
}

func (tm *TextMap) add(key, text string, ordinal int) {
	if tm.index == nil {
		tm.index = make(map[string]int)
	}
	tm.index[key] = len(tm.Keys)
	tm.Keys = append(tm.Keys, key)
	tm.Text[key] = text
	tm.Ordinals = append(tm.Ordinals, ordinal)
}

// Len returns the number of keys.
func (tm *TextMap) Len() int { return len(tm.Keys) }

// Empty reports whether there is nothing to translate.
func (tm *TextMap) Empty() bool { return len(tm.Keys) == 0 }

// Texts returns the source texts in extraction order.
func (tm *TextMap) Texts() []string {
	texts := make([]string, len(tm.Keys))
	for i, k := range tm.Keys {
		texts[i] = tm.Text[k]
	}
	return texts
}

// Ordinal returns the catalog entry index recorded for key.
func (tm *TextMap) Ordinal(key string) (int, bool) {
	i, ok := tm.index[key]
	if !ok {
		return 0, false
	}
	return tm.Ordinals[i], true
}

// Subset returns a TextMap holding only the keys for which keep returns
// true, in the same relative order and with the same ordinals.
func (tm *TextMap) Subset(keep func(key, text string) bool) *TextMap {
	sub := &TextMap{
		Text:  make(map[string]string),
		index: make(map[string]int),
	}
	for i, k := range tm.Keys {
		if keep(k, tm.Text[k]) {
			sub.add(k, tm.Text[k], tm.Ordinals[i])
		}
	}
	return sub
}
