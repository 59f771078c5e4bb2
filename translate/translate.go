// Package translate drives machine translation of .resx catalogs.
//
// For every source catalog the pipeline extracts its text, plans requests
// that fit the translator's character budget, submits them through a
// Translator, regroups the answers per locale and merges them into a
// per-locale copy of the source catalog, written next to it.
package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/minios-linux/resxkit/extract"
	"github.com/minios-linux/resxkit/locale"
	"github.com/minios-linux/resxkit/lockfile"
	"github.com/minios-linux/resxkit/merge"
	"github.com/minios-linux/resxkit/resx"
)

// Translator submits texts once per locale group. *Client implements it.
type Translator interface {
	Translate(ctx context.Context, texts []string, groups [][]string) ([]Result, error)
}

// Options configures a translation run.
type Options struct {
	// Translator performs the requests.
	Translator Translator
	// SourceLocale is the locale segment of source file names (e.g. "en").
	SourceLocale string
	// TargetLocales are the locales to produce, in output order.
	TargetLocales []string
	// CharBudget is the per-request character budget (0 = DefaultCharBudget).
	CharBudget int
	// MaxConcurrent is the number of files processed at once (0 = 1).
	MaxConcurrent int
	// Force re-translates every entry, ignoring the lock file.
	Force bool
	// DryRun plans requests without calling the translator or writing files.
	DryRun bool
	// Lock tracks translated source checksums. Nil disables incremental runs.
	Lock *lockfile.LockFile
	// OnLog emits progress messages.
	OnLog func(format string, args ...any)
	// OnError emits error messages.
	OnError func(format string, args ...any)
	// OnDebug emits detailed traces.
	OnDebug func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) debug(format string, args ...any) {
	if o.OnDebug != nil {
		o.OnDebug(format, args...)
	}
}

// FileStatus is the outcome of one source catalog.
type FileStatus int

const (
	// StatusTranslated means at least one target catalog was written.
	StatusTranslated FileStatus = iota
	// StatusNothingToTranslate means the source catalog has no entries.
	StatusNothingToTranslate
	// StatusUpToDate means every target is current according to the lock.
	StatusUpToDate
	// StatusNoTranslations means requests succeeded but nothing was applied.
	StatusNoTranslations
	// StatusPlanned means a dry run planned requests for the file.
	StatusPlanned
	// StatusFailed means the file was abandoned after an error.
	StatusFailed
)

func (s FileStatus) String() string {
	switch s {
	case StatusTranslated:
		return "translated"
	case StatusNothingToTranslate:
		return "nothing to translate"
	case StatusUpToDate:
		return "up to date"
	case StatusNoTranslations:
		return "no translations"
	case StatusPlanned:
		return "planned"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("FileStatus(%d)", int(s))
}

// TargetResult describes one target catalog of a source file.
type TargetResult struct {
	Locale  string
	Path    string
	New     bool // target file did not exist before
	Applied int  // entries set from translations
	Written bool
}

// FileResult is the outcome of TranslateFile.
type FileResult struct {
	Path      string
	Status    FileStatus
	Keys      int // entries in the source catalog
	Requested int // texts submitted, summed over request jobs
	Batches   int // requests issued or planned
	Targets   []TargetResult
}

// job is one set of texts submitted for a set of locales.
type job struct {
	tm      *extract.TextMap
	locales []string
}

type target struct {
	locale   string
	path     string
	lockKey  string
	existing *resx.File
}

// TranslateFile translates the source catalog at path into every target
// locale of opts.
//
// Locales without a target file, without lock entries, or when opts.Force
// is set get every entry. Other locales only get entries whose source text
// changed since the lock was written, or that their target catalog lacks;
// their other values are carried over from the existing target. A target is
// written only when at least one translation was applied.
//
// A translator failure abandons the whole file: nothing is written and the
// error is returned with a StatusFailed result.
func TranslateFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	res := &FileResult{Path: path}
	fail := func(err error) (*FileResult, error) {
		res.Status = StatusFailed
		return res, err
	}

	src, err := resx.ParseFile(path)
	if err != nil {
		return fail(err)
	}
	tm := extract.Extract(src)
	res.Keys = tm.Len()
	if tm.Empty() {
		res.Status = StatusNothingToTranslate
		return res, nil
	}

	targets := make([]*target, 0, len(opts.TargetLocales))
	for _, loc := range opts.TargetLocales {
		tpath := locale.TargetPath(path, opts.SourceLocale, loc)
		if tpath == "" {
			return fail(fmt.Errorf("%s: %w", path, ErrNoSourceSegment))
		}
		t := &target{locale: loc, path: tpath}
		if opts.Lock != nil {
			t.lockKey = opts.Lock.TargetKey(tpath)
		}
		if _, err := os.Stat(tpath); err == nil {
			if t.existing, err = resx.ParseFile(tpath); err != nil {
				return fail(err)
			}
		} else if !os.IsNotExist(err) {
			return fail(err)
		}
		targets = append(targets, t)
	}

	fresh, stale := planJobs(tm, targets, opts)
	jobs := make([]job, 0, 2)
	if len(fresh.locales) > 0 {
		jobs = append(jobs, fresh)
	}
	if len(stale.locales) > 0 && !stale.tm.Empty() {
		jobs = append(jobs, stale)
	}
	if len(jobs) == 0 {
		res.Status = StatusUpToDate
		return res, nil
	}

	budget := opts.CharBudget
	if budget <= 0 {
		budget = DefaultCharBudget
	}

	byLocale := make(map[string]*target, len(targets))
	for _, t := range targets {
		byLocale[t.locale] = t
	}

	for _, j := range jobs {
		texts := j.tm.Texts()
		chars := PayloadSize(texts)
		groups := PlanBatches(j.locales, chars, budget)
		res.Requested += len(texts)
		res.Batches += len(groups)
		opts.debug("%s: %d entries, %d chars, %d locales in %d request(s)",
			path, len(texts), chars, len(j.locales), len(groups))

		if opts.DryRun {
			for _, loc := range j.locales {
				t := byLocale[loc]
				res.Targets = append(res.Targets, TargetResult{Locale: loc, Path: t.path, New: t.existing == nil})
			}
			continue
		}

		results, err := opts.Translator.Translate(ctx, texts, groups)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", path, err))
		}
		set := Reassemble(j.tm, results, j.locales)

		for _, loc := range j.locales {
			tr, err := writeTarget(src, tm, j.tm, byLocale[loc], set[loc], opts)
			if err != nil {
				return fail(err)
			}
			res.Targets = append(res.Targets, tr)
		}
	}

	switch {
	case opts.DryRun:
		res.Status = StatusPlanned
	case res.written() > 0:
		res.Status = StatusTranslated
	default:
		res.Status = StatusNoTranslations
	}
	return res, nil
}

// planJobs splits targets into those needing every entry and those needing
// only changed entries.
func planJobs(tm *extract.TextMap, targets []*target, opts Options) (fresh, stale job) {
	fresh.tm = tm
	changed := make(map[string]bool)
	for _, t := range targets {
		if opts.Force || opts.Lock == nil || t.existing == nil || !opts.Lock.Has(t.lockKey) {
			fresh.locales = append(fresh.locales, t.locale)
			continue
		}
		dirty := false
		for _, key := range tm.Keys {
			if _, ok := t.existing.Get(key); !ok ||
				opts.Lock.IsChanged(t.lockKey, key, lockfile.EntryContent(key, tm.Text[key])) {
				changed[key] = true
				dirty = true
			}
		}
		if dirty {
			stale.locales = append(stale.locales, t.locale)
		}
	}
	stale.tm = tm.Subset(func(key, _ string) bool { return changed[key] })
	return fresh, stale
}

// writeTarget merges one locale's translations onto a clone of src and
// writes it when anything was applied.
func writeTarget(src *resx.File, full, requested *extract.TextMap, t *target, translations map[string]string, opts Options) (TargetResult, error) {
	tr := TargetResult{Locale: t.locale, Path: t.path, New: t.existing == nil}

	out := src.Clone()
	if t.existing != nil && requested.Len() < full.Len() {
		var keep []string
		for _, key := range full.Keys {
			if _, ok := requested.Text[key]; !ok {
				keep = append(keep, key)
			}
		}
		merge.Carry(out, t.existing, keep)
	}

	tr.Applied = merge.Apply(out, translations, requested)
	if tr.Applied == 0 {
		opts.log("%s: no translations for %s", t.path, t.locale)
		return tr, nil
	}

	if err := out.WriteFile(t.path); err != nil {
		return tr, err
	}
	tr.Written = true
	opts.debug("%s: wrote %d translation(s)", t.path, tr.Applied)

	if opts.Lock != nil {
		entries := make(map[string]string, len(translations))
		for key := range translations {
			if text, ok := requested.Text[key]; ok {
				entries[key] = lockfile.EntryContent(key, text)
			}
		}
		opts.Lock.UpdateBatch(t.lockKey, entries)
		opts.Lock.Clean(t.lockKey, full.Keys)
	}
	return tr, nil
}

func (r *FileResult) written() int {
	n := 0
	for _, t := range r.Targets {
		if t.Written {
			n++
		}
	}
	return n
}

// TranslateAll translates every source catalog in paths, up to
// opts.MaxConcurrent at a time, and returns the summary once all of them
// have finished.
//
// A failing file is logged and does not stop the others. If any file
// failed, the summary is returned together with an error naming them.
// Cancellation of ctx is returned as is.
func TranslateAll(ctx context.Context, paths []string, opts Options) (*Summary, error) {
	if opts.Translator == nil && !opts.DryRun {
		return nil, errors.New("no translator configured")
	}

	sum := &Summary{
		SourceLocale:  opts.SourceLocale,
		TargetLocales: opts.TargetLocales,
		Files:         len(paths),
	}
	if len(opts.TargetLocales) == 0 {
		opts.log("No target languages")
		return sum, nil
	}

	limit := opts.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			opts.log("Translating %s", path)
			res, err := TranslateFile(gctx, path, opts)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				opts.logError("%s: %s", path, Describe(err))
				mu.Lock()
				sum.Failed = append(sum.Failed, path)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			sum.add(res)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	if len(sum.Failed) > 0 {
		sortPaths(sum.Failed)
		return sum, fmt.Errorf("%d file(s) failed: %s", len(sum.Failed), strings.Join(sum.Failed, ", "))
	}
	return sum, nil
}
