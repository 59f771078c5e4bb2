// Package config handles the .resxkit.yaml project file and the discovery
// of source catalogs.
//
// When a .resxkit.yaml file exists in the project root its values are used
// as defaults; command-line flags override them. Without one, built-in
// defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/resxkit/locale"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .resxkit.yaml structure.
type File struct {
	// SourceLang is the locale segment of source catalogs (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Endpoint is the translator service base URL.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Region is the translator resource region, for regional resources.
	Region string `yaml:"region,omitempty"`
	// Languages are the target locales. Empty means every locale the
	// service supports.
	Languages []string `yaml:"languages,omitempty"`
	// ExcludeLanguages are removed from the target locales.
	ExcludeLanguages []string `yaml:"exclude_languages,omitempty"`
	// Include are globs of source catalogs relative to the project root
	// (default "**/*.<source_lang>.resx"). "**" matches any number of
	// directories.
	Include []string `yaml:"include,omitempty"`
	// Exclude are globs of paths to skip.
	Exclude []string `yaml:"exclude,omitempty"`
	// CharBudget is the character budget of one request (default 10000).
	CharBudget int `yaml:"char_budget,omitempty"`
	// CharsPerMinute throttles requests client-side (0 = unlimited).
	CharsPerMinute int `yaml:"chars_per_minute,omitempty"`
	// MaxConcurrent is the number of catalogs translated at once (default 3).
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
	// Timeout bounds each request attempt (default 60s).
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// MaxRetries is the retry count for throttled or failed requests
	// (default 3).
	MaxRetries *int `yaml:"max_retries,omitempty"`
	// Proxy is an HTTP proxy URL.
	Proxy string `yaml:"proxy,omitempty"`

	path string `yaml:"-"`
}

// Defaults.
const (
	DefaultSourceLang    = "en"
	DefaultEndpoint      = "https://api.cognitive.microsofttranslator.com/"
	DefaultCharBudget    = 10000
	DefaultMaxConcurrent = 3
	DefaultTimeout       = 60 * time.Second
	DefaultMaxRetries    = 3
)

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".resxkit.yaml"

// Load loads and validates .resxkit.yaml from the given directory.
// A missing file yields the defaults.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	f := &File{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		f.path = path
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := f.applyDefaults(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Path returns the file the configuration was read from, or "" when the
// defaults are in use.
func (f *File) Path() string {
	return f.path
}

func (f *File) applyDefaults() error {
	if f.SourceLang == "" {
		f.SourceLang = DefaultSourceLang
	}
	src, err := locale.Normalize(f.SourceLang)
	if err != nil {
		return fmt.Errorf("source_lang: %w", err)
	}
	f.SourceLang = src

	if f.Endpoint == "" {
		f.Endpoint = DefaultEndpoint
	}
	if !strings.HasPrefix(f.Endpoint, "https://") && !strings.HasPrefix(f.Endpoint, "http://") {
		return fmt.Errorf("endpoint %q must be an http(s) URL", f.Endpoint)
	}

	if f.Languages, err = normalizeAll(f.Languages); err != nil {
		return fmt.Errorf("languages: %w", err)
	}
	if f.ExcludeLanguages, err = normalizeAll(f.ExcludeLanguages); err != nil {
		return fmt.Errorf("exclude_languages: %w", err)
	}

	if len(f.Include) == 0 {
		f.Include = []string{DefaultInclude(f.SourceLang)}
	}

	switch {
	case f.CharBudget < 0:
		return fmt.Errorf("char_budget must not be negative")
	case f.CharBudget == 0:
		f.CharBudget = DefaultCharBudget
	}
	if f.CharsPerMinute < 0 {
		return fmt.Errorf("chars_per_minute must not be negative")
	}
	switch {
	case f.MaxConcurrent < 0:
		return fmt.Errorf("max_concurrent must not be negative")
	case f.MaxConcurrent == 0:
		f.MaxConcurrent = DefaultMaxConcurrent
	}
	switch {
	case f.Timeout < 0:
		return fmt.Errorf("timeout must not be negative")
	case f.Timeout == 0:
		f.Timeout = DefaultTimeout
	}
	if f.MaxRetries == nil {
		n := DefaultMaxRetries
		f.MaxRetries = &n
	} else if *f.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	return nil
}

// Retries returns the configured retry count.
func (f *File) Retries() int {
	if f.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *f.MaxRetries
}

// DefaultInclude is the source catalog glob for a source locale.
func DefaultInclude(sourceLang string) string {
	return "**/*." + sourceLang + ".resx"
}

func normalizeAll(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		n, err := locale.Normalize(c)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
