// Package locale handles locale identifiers: normalization, target
// selection, ordering, and deriving per-locale catalog paths.
package locale

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// canonicalize fixes separators and casing without consulting any registry:
// "pt_br" -> "pt-BR", "zh-hans" -> "zh-Hans".
func canonicalize(code string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		switch len(parts[i]) {
		case 2:
			parts[i] = strings.ToUpper(parts[i])
		case 4:
			parts[i] = strings.ToUpper(parts[i][:1]) + strings.ToLower(parts[i][1:])
		default:
			parts[i] = strings.ToLower(parts[i])
		}
	}
	return strings.Join(parts, "-")
}

// Normalize validates a locale code and returns it in canonical casing.
// Well-formed codes that the language tables do not know (service-specific
// codes such as "tlh-Latn") are accepted as-is after canonicalize.
func Normalize(code string) (string, error) {
	c := canonicalize(code)
	if c == "" {
		return "", errors.New("empty locale")
	}
	tag, err := language.Raw.Parse(c)
	if err != nil {
		var unknown interface{ Subtag() string }
		if errors.As(err, &unknown) {
			return c, nil
		}
		return "", fmt.Errorf("invalid locale %q: %w", code, err)
	}
	return tag.String(), nil
}

// Matches reports whether two locale codes name the same locale.
func Matches(a, b string) bool {
	return strings.EqualFold(canonicalize(a), canonicalize(b))
}

// Sort orders codes in natural, case-insensitive order ("sr-Cyrl" before
// "sr-Latn", "x2" before "x10").
func Sort(codes []string) {
	collate.New(language.Und, collate.IgnoreCase, collate.Numeric).SortStrings(codes)
}

// Targets selects the target locales for a run.
//
// When include is non-empty it replaces available. The source locale and
// every locale in exclude are dropped, duplicates removed, and the result
// sorted with Sort.
func Targets(available []string, source string, include, exclude []string) []string {
	candidates := available
	if len(include) > 0 {
		candidates = include
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		key := strings.ToLower(canonicalize(c))
		if key == "" || seen[key] || Matches(c, source) {
			continue
		}
		excluded := false
		for _, x := range exclude {
			if Matches(c, x) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	Sort(out)
	return out
}

// TargetPath derives the path of a target catalog from a source catalog
// path by replacing its locale segment: "Foo.en.resx" -> "Foo.fr.resx".
// It returns "" when the file name carries no sourceLocale segment.
func TargetPath(sourcePath, sourceLocale, target string) string {
	dir, base := filepath.Split(sourcePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	i := strings.LastIndex(stem, ".")
	if i < 0 || !Matches(stem[i+1:], sourceLocale) {
		return ""
	}
	return dir + stem[:i+1] + target + ext
}

// FromPath returns the locale segment of a catalog file name
// ("Foo.fr.resx" -> "fr"), or "" if there is none.
func FromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	i := strings.LastIndex(stem, ".")
	if i < 0 {
		return ""
	}
	return stem[i+1:]
}
