package translate

import (
	"fmt"
	"sort"
	"strings"
)

// Summary aggregates the outcome of a run.
type Summary struct {
	SourceLocale  string
	TargetLocales []string
	Files         int

	NewFileCount            int
	NewFileTranslations     int
	UpdatedFileCount        int
	UpdatedFileTranslations int

	Skipped int      // files with nothing to translate or already up to date
	Planned int      // files with requests planned by a dry run
	Failed  []string // source paths abandoned after an error
}

func (s *Summary) add(r *FileResult) {
	switch r.Status {
	case StatusNothingToTranslate, StatusUpToDate:
		s.Skipped++
	case StatusPlanned:
		s.Planned++
	}
	for _, t := range r.Targets {
		if !t.Written {
			continue
		}
		if t.New {
			s.NewFileCount++
			s.NewFileTranslations += t.Applied
		} else {
			s.UpdatedFileCount++
			s.UpdatedFileTranslations += t.Applied
		}
	}
}

// HasNewTranslations reports whether any target catalog was written.
func (s *Summary) HasNewTranslations() bool {
	return s.NewFileCount > 0 || s.UpdatedFileCount > 0
}

// TotalFileCount is the number of target catalogs written.
func (s *Summary) TotalFileCount() int {
	return s.NewFileCount + s.UpdatedFileCount
}

// TotalTranslations is the number of entries translated.
func (s *Summary) TotalTranslations() int {
	return s.NewFileTranslations + s.UpdatedFileTranslations
}

// Title is a one-line description suitable for a pull request title.
func (s *Summary) Title() string {
	if !s.HasNewTranslations() {
		return "No new translations"
	}
	return fmt.Sprintf("Machine-translated %s, a total of %s",
		plural(s.TotalFileCount(), "file", "files"),
		plural(s.TotalTranslations(), "translation", "translations"))
}

// Details is a Markdown description of the run suitable for a pull request
// body.
func (s *Summary) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Machine translation summary\n\n")
	fmt.Fprintf(&b, "Source locale: `%s`\n\n", s.SourceLocale)
	if len(s.TargetLocales) > 0 {
		codes := make([]string, len(s.TargetLocales))
		for i, l := range s.TargetLocales {
			codes[i] = "`" + l + "`"
		}
		fmt.Fprintf(&b, "Target locales (%d): %s\n\n", len(codes), strings.Join(codes, ", "))
	}

	b.WriteString("| Action | Files | Translations |\n")
	b.WriteString("|---|---:|---:|\n")
	fmt.Fprintf(&b, "| New | %d | %d |\n", s.NewFileCount, s.NewFileTranslations)
	fmt.Fprintf(&b, "| Updated | %d | %d |\n", s.UpdatedFileCount, s.UpdatedFileTranslations)
	fmt.Fprintf(&b, "| **Total** | **%d** | **%d** |\n", s.TotalFileCount(), s.TotalTranslations())

	if s.Skipped > 0 {
		fmt.Fprintf(&b, "\n%s skipped (empty or up to date).\n", plural(s.Skipped, "source file", "source files"))
	}
	if len(s.Failed) > 0 {
		fmt.Fprintf(&b, "\n%s failed:\n\n", plural(len(s.Failed), "source file", "source files"))
		for _, f := range s.Failed {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func sortPaths(paths []string) {
	sort.Strings(paths)
}
