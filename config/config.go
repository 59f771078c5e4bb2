package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/minios-linux/resxkit/locale"
)

// skipDirs are never descended into during discovery.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"bin":          true,
	"obj":          true,
}

// FindSourceFiles walks root and returns the catalogs whose slash-separated
// path relative to root matches one of include and none of exclude. The
// result holds paths joined with root, sorted.
func FindSourceFiles(root string, include, exclude []string) ([]string, error) {
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, &GlobError{Pattern: p, Err: doublestar.ErrBadPattern}
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if p != root && (skipDirs[d.Name()] || matchAny(exclude, rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".resx") {
			return nil
		}
		if matchAny(include, rel) && !matchAny(exclude, rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// GlobError reports a malformed include or exclude pattern.
type GlobError struct {
	Pattern string
	Err     error
}

func (e *GlobError) Error() string {
	return fmt.Sprintf("invalid glob %q: %v", e.Pattern, e.Err)
}

func (e *GlobError) Unwrap() error { return e.Err }

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if MatchGlob(p, rel) {
			return true
		}
	}
	return false
}

// MatchGlob reports whether the slash-separated path name matches pattern.
// "**" matches zero or more whole segments and "{a,b}" alternates.
// A malformed pattern matches nothing.
func MatchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// DetectLanguages returns the locales of existing target catalogs next to
// the given source catalogs ("Foo.fr.resx" beside "Foo.en.resx"), sorted.
func DetectLanguages(sources []string, sourceLang string) []string {
	seen := make(map[string]bool)
	var langs []string

	for _, src := range sources {
		dir := filepath.Dir(src)
		base := filepath.Base(src)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		i := strings.LastIndex(stem, ".")
		if i < 0 {
			continue
		}
		prefix := stem[:i+1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.EqualFold(filepath.Ext(name), ".resx") {
				continue
			}
			lang := strings.TrimSuffix(strings.TrimPrefix(name, prefix), filepath.Ext(name))
			if strings.Contains(lang, ".") || locale.Matches(lang, sourceLang) {
				continue
			}
			code, err := locale.Normalize(lang)
			if err != nil || seen[code] {
				continue
			}
			seen[code] = true
			langs = append(langs, code)
		}
	}
	locale.Sort(langs)
	return langs
}
