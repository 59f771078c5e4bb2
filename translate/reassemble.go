package translate

import (
	"github.com/minios-linux/resxkit/extract"
	"github.com/minios-linux/resxkit/locale"
)

// ResultSet maps a target locale to its translated texts keyed by entry
// name.
type ResultSet map[string]map[string]string

// Reassemble regroups the flat, batch-concatenated service records into one
// map per requested locale.
//
// results holds one block of len(tm.Keys) records per request, so the
// record for key i in any block is at index i+k*len(tm.Keys). Each block is
// searched for a translation whose target matches the locale. Keys without
// a non-empty translation are left out; every locale in locales gets a map,
// even an empty one.
func Reassemble(tm *extract.TextMap, results []Result, locales []string) ResultSet {
	set := make(ResultSet, len(locales))
	n := tm.Len()
	for _, loc := range locales {
		texts := make(map[string]string)
		set[loc] = texts
		if n == 0 {
			continue
		}
		for i, key := range tm.Keys {
			if text, ok := findTranslation(results, i, n, loc); ok {
				texts[key] = text
			}
		}
	}
	return set
}

func findTranslation(results []Result, i, stride int, loc string) (string, bool) {
	for j := i; j < len(results); j += stride {
		for _, tr := range results[j].Translations {
			if locale.Matches(tr.To, loc) && tr.Text != "" {
				return tr.Text, true
			}
		}
	}
	return "", false
}
