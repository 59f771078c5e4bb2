// resxkit machine-translates .resx resource catalogs with the Azure AI
// Translator service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/minios-linux/resxkit/config"
	"github.com/minios-linux/resxkit/i18n"
	"github.com/minios-linux/resxkit/locale"
	"github.com/minios-linux/resxkit/lockfile"
	"github.com/minios-linux/resxkit/resx"
	"github.com/minios-linux/resxkit/settings"
	"github.com/minios-linux/resxkit/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

var (
	logOut  io.Writer = color.Error
	verbose bool

	infoTag  = color.New(color.FgBlue).SprintFunc()
	okTag    = color.New(color.FgGreen).SprintFunc()
	warnTag  = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorTag = color.New(color.FgRed).SprintFunc()
	debugTag = color.New(color.FgHiBlack).SprintFunc()
	heading  = color.New(color.FgBlue, color.Bold).SprintFunc()
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(logOut, infoTag("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(logOut, okTag("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(logOut, warnTag("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(logOut, errorTag("[ERROR]")+" "+format+"\n", args...)
}

func logDebug(format string, args ...any) {
	if verbose {
		fmt.Fprintf(logOut, debugTag("[DEBUG]")+" "+format+"\n", args...)
	}
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	profile string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resxkit",
		Short: i18n.T("Machine-translate .resx resource catalogs"),
		Long: `resxkit machine-translates .resx resource catalogs with Azure AI Translator.

Source catalogs carry the source locale in their file name (Index.en.resx);
translations are written next to them (Index.fr.resx, Index.de.resx, ...).

Commands:
  translate   Translate source catalogs into every target locale
  languages   List the locales the translator supports
  status      Show discovered catalogs and their translations
  auth        Manage the stored subscription key`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&profile, "profile", settings.DefaultProfile, "Credential profile")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging")

	root.AddCommand(
		newTranslateCmd(),
		newLanguagesCmd(),
		newStatusCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logWarning(i18n.T("Interrupted"))
		} else {
			logError("%v", err)
		}
		stop()
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "resxkit version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Locale list flag
// ---------------------------------------------------------------------------

// localeList is a comma-separated, repeatable list of locale codes,
// normalized as they are parsed.
type localeList []string

var _ pflag.Value = (*localeList)(nil)

func (l *localeList) String() string { return strings.Join(*l, ",") }

func (l *localeList) Type() string { return "locales" }

func (l *localeList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, err := locale.Normalize(part)
		if err != nil {
			return err
		}
		*l = append(*l, code)
	}
	return nil
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateArgs struct {
	langs, excludeLangs localeList
	sourceLang          string
	include             []string
	exclude             []string

	endpoint, region, subscriptionKey string

	charBudget, charsPerMinute, maxConcurrent int
	force, dryRun, githubOutput               bool

	timeout    time.Duration
	proxy      string
	maxRetries int
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate source catalogs",
		Long: `Translate every source catalog into the target locales.

Source catalogs are found by the include globs (default **/*.<source>.resx).
Target locales default to every locale the translator supports, minus the
source locale. Unchanged entries are not sent again: resxkit.lock records
what was translated.

Examples:
  # Translate into every supported locale
  resxkit translate --subscription-key $KEY --region westeurope

  # Only French and German, re-translating everything
  resxkit translate --lang fr,de --force

  # Show the planned requests without calling the service
  resxkit translate --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), cmd.Flags(), a)
		},
	}

	f := cmd.Flags()
	f.Var(&a.langs, "lang", "Target locales (comma-separated, default: all supported)")
	f.Var(&a.excludeLangs, "exclude-lang", "Locales to skip (comma-separated)")
	f.StringVar(&a.sourceLang, "source-lang", "", "Source locale (default from config, en)")
	f.StringSliceVar(&a.include, "include", nil, "Source catalog globs (default **/*.<source>.resx)")
	f.StringSliceVar(&a.exclude, "exclude", nil, "Globs of paths to skip")

	f.StringVar(&a.endpoint, "endpoint", "", "Translator endpoint URL")
	f.StringVar(&a.region, "region", "", "Translator resource region (or "+settings.EnvRegion+")")
	f.StringVar(&a.subscriptionKey, "subscription-key", "", "Translator subscription key (or "+settings.EnvSubscriptionKey+")")

	f.IntVar(&a.charBudget, "char-budget", translate.DefaultCharBudget, "Characters per request (source characters x locales)")
	f.IntVar(&a.charsPerMinute, "chars-per-minute", 0, "Client-side throughput limit (0 = unlimited)")
	f.IntVar(&a.maxConcurrent, "max-concurrent", config.DefaultMaxConcurrent, "Catalogs translated at once")
	f.BoolVar(&a.force, "force", false, "Re-translate every entry, ignoring resxkit.lock")
	f.BoolVar(&a.dryRun, "dry-run", false, "Plan requests without calling the translator or writing files")
	f.BoolVar(&a.githubOutput, "github-output", false, "Write step outputs to $GITHUB_OUTPUT (automatic under GitHub Actions)")

	f.DurationVar(&a.timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	f.StringVar(&a.proxy, "proxy", "", "HTTP/HTTPS proxy URL")
	f.IntVar(&a.maxRetries, "max-retries", config.DefaultMaxRetries, "Retries on throttling and server errors")

	return cmd
}

// resolvedRun is the effective configuration of a translate run: config
// file values overridden by flags.
type resolvedRun struct {
	cfg    *config.File
	key    string
	keySrc string
}

func resolveTranslateConfig(flags *pflag.FlagSet, a translateArgs) (*resolvedRun, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}

	if flags.Changed("source-lang") {
		src, err := locale.Normalize(a.sourceLang)
		if err != nil {
			return nil, fmt.Errorf("--source-lang: %w", err)
		}
		defaultInclude := len(cfg.Include) == 1 && cfg.Include[0] == config.DefaultInclude(cfg.SourceLang)
		cfg.SourceLang = src
		if defaultInclude {
			cfg.Include = []string{config.DefaultInclude(src)}
		}
	}
	if flags.Changed("lang") {
		cfg.Languages = a.langs
	}
	if flags.Changed("exclude-lang") {
		cfg.ExcludeLanguages = append(cfg.ExcludeLanguages, a.excludeLangs...)
	}
	if flags.Changed("include") {
		cfg.Include = a.include
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, a.exclude...)
	}

	stored := settings.Get(profile)
	switch {
	case flags.Changed("endpoint"):
		cfg.Endpoint = a.endpoint
	case cfg.Endpoint == config.DefaultEndpoint && stored != nil && stored.Endpoint != "":
		cfg.Endpoint = stored.Endpoint
	}
	cfg.Region = settings.ResolveRegion(a.region, cfg.Region, profile)

	if flags.Changed("char-budget") {
		cfg.CharBudget = a.charBudget
	}
	if flags.Changed("chars-per-minute") {
		cfg.CharsPerMinute = a.charsPerMinute
	}
	if flags.Changed("max-concurrent") {
		cfg.MaxConcurrent = a.maxConcurrent
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("max-retries") {
		n := a.maxRetries
		cfg.MaxRetries = &n
	}
	if flags.Changed("proxy") {
		cfg.Proxy = a.proxy
	}

	switch {
	case cfg.CharBudget <= 0:
		return nil, fmt.Errorf("--char-budget must be positive")
	case cfg.MaxConcurrent <= 0:
		return nil, fmt.Errorf("--max-concurrent must be positive")
	case cfg.Retries() < 0:
		return nil, fmt.Errorf("--max-retries must not be negative")
	case cfg.CharsPerMinute < 0:
		return nil, fmt.Errorf("--chars-per-minute must not be negative")
	}

	key, src := settings.ResolveKey(a.subscriptionKey, profile)
	if key == "" && !a.dryRun {
		return nil, errors.New(i18n.T("no subscription key: use --subscription-key, RESXKIT_SUBSCRIPTION_KEY or 'resxkit auth login'"))
	}
	return &resolvedRun{cfg: cfg, key: key, keySrc: src}, nil
}

func runTranslate(ctx context.Context, flags *pflag.FlagSet, a translateArgs) error {
	run, err := resolveTranslateConfig(flags, a)
	if err != nil {
		return err
	}
	cfg := run.cfg
	if cfg.Path() != "" {
		logDebug("Using %s", cfg.Path())
	}
	if run.keySrc != "" {
		logDebug("Subscription key from %s", run.keySrc)
	}

	client, err := translate.NewClient(translate.Config{
		Endpoint:        cfg.Endpoint,
		SubscriptionKey: run.key,
		Region:          cfg.Region,
		SourceLocale:    cfg.SourceLang,
		CharsPerMinute:  cfg.CharsPerMinute,
		Proxy:           cfg.Proxy,
		Timeout:         cfg.Timeout,
		MaxRetries:      cfg.Retries(),
		OnDebug:         logDebug,
	})
	if err != nil {
		return err
	}

	sources, err := config.FindSourceFiles(rootDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return discoveryFailed(a.githubOutput, cfg,
			fmt.Errorf(i18n.T("no source catalogs match %s"), strings.Join(cfg.Include, ", ")))
	}
	logInfo(i18n.N("Found %d source catalog", "Found %d source catalogs", len(sources)), len(sources))

	targets, err := resolveTargets(ctx, client, cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return discoveryFailed(a.githubOutput, cfg, errors.New(i18n.T("no target languages")))
	}
	logInfo(i18n.T("Translating from %s into %d locale(s): %s"), cfg.SourceLang, len(targets), strings.Join(targets, ", "))

	lock, err := lockfile.Load(rootDir)
	if err != nil {
		return err
	}

	opts := translate.Options{
		Translator:    client,
		SourceLocale:  cfg.SourceLang,
		TargetLocales: targets,
		CharBudget:    cfg.CharBudget,
		MaxConcurrent: cfg.MaxConcurrent,
		Force:         a.force,
		DryRun:        a.dryRun,
		Lock:          lock,
		OnLog:         logInfo,
		OnError:       logError,
		OnDebug:       logDebug,
	}

	start := time.Now()
	sum, runErr := translate.TranslateAll(ctx, sources, opts)

	if !a.dryRun {
		if err := lock.Save(); err != nil {
			logError(i18n.T("Failed to save lock file: %v"), err)
		}
	}
	if sum == nil {
		return runErr
	}
	if errors.Is(runErr, context.Canceled) {
		return runErr
	}

	printSummary(sum, a.dryRun, time.Since(start))
	if err := writeOutputs(a.githubOutput, sum); err != nil {
		return err
	}
	return runErr
}

// discoveryFailed publishes an empty summary and returns err, ending the run.
func discoveryFailed(githubOutput bool, cfg *config.File, err error) error {
	if werr := writeOutputs(githubOutput, &translate.Summary{SourceLocale: cfg.SourceLang}); werr != nil {
		logError("%v", werr)
	}
	return err
}

// resolveTargets returns the configured target locales, or every locale the
// service supports when none are configured.
func resolveTargets(ctx context.Context, client *translate.Client, cfg *config.File) ([]string, error) {
	var available []string
	if len(cfg.Languages) == 0 {
		langs, err := client.Languages(ctx)
		if err != nil {
			return nil, err
		}
		for code := range langs {
			available = append(available, code)
		}
		logDebug("Service supports %d locales", len(available))
	}
	return locale.Targets(available, cfg.SourceLang, cfg.Languages, cfg.ExcludeLanguages), nil
}

func printSummary(sum *translate.Summary, dryRun bool, elapsed time.Duration) {
	if dryRun {
		logInfo(i18n.T("Dry run: %d catalog(s) would be translated"), sum.Planned)
		return
	}
	if !sum.HasNewTranslations() {
		logInfo(i18n.T("No new translations"))
		return
	}
	logSuccess("%s (%s)", sum.Title(), elapsed.Round(time.Millisecond))
	logDebug("new: %d file(s), %d translation(s); updated: %d file(s), %d translation(s)",
		sum.NewFileCount, sum.NewFileTranslations, sum.UpdatedFileCount, sum.UpdatedFileTranslations)
}

// writeOutputs publishes the run summary as step outputs when requested or
// when running under GitHub Actions.
func writeOutputs(requested bool, sum *translate.Summary) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if !requested && os.Getenv("GITHUB_ACTIONS") != "true" {
		return nil
	}
	if path == "" {
		if requested {
			logWarning(i18n.T("GITHUB_OUTPUT is not set; skipping step outputs"))
		}
		return nil
	}
	return appendOutputs(path, []output{
		{"has-new-translations", fmt.Sprintf("%t", sum.HasNewTranslations())},
		{"summary-title", sum.Title()},
		{"summary-details", sum.Details()},
	})
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the locales the translator supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			if endpoint != "" {
				cfg.Endpoint = endpoint
			}
			client, err := translate.NewClient(translate.Config{
				Endpoint:   cfg.Endpoint,
				Proxy:      cfg.Proxy,
				Timeout:    cfg.Timeout,
				MaxRetries: cfg.Retries(),
				OnDebug:    logDebug,
			})
			if err != nil {
				return err
			}
			langs, err := client.Languages(cmd.Context())
			if err != nil {
				return err
			}
			printLanguages(cmd.OutOrStdout(), langs)
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Translator endpoint URL")
	return cmd
}

func printLanguages(w io.Writer, langs map[string]translate.Language) {
	codes := make([]string, 0, len(langs))
	width := 0
	for code := range langs {
		codes = append(codes, code)
		width = max(width, len(code))
	}
	locale.Sort(codes)
	for _, code := range codes {
		l := langs[code]
		fmt.Fprintf(w, "%-*s  %s (%s)\n", width, code, l.Name, l.NativeName)
	}
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var pruneLock bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show discovered catalogs and their translations",
		Long: `Show the source catalogs resxkit would translate, their entry counts,
and which target catalogs already exist. Does not call the translator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), pruneLock)
		},
	}
	cmd.Flags().BoolVar(&pruneLock, "prune-lock", false, "Drop lock entries of target catalogs that no longer exist")
	return cmd
}

func runStatus(w io.Writer, pruneLock bool) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	sources, err := config.FindSourceFiles(rootDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}

	absRoot, _ := filepath.Abs(rootDir)
	fmt.Fprintf(w, "\n%s\n", heading(i18n.T("Project")))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  Root:       %s\n", absRoot)
	if cfg.Path() != "" {
		fmt.Fprintf(w, "  Config:     %s\n", cfg.Path())
	}
	fmt.Fprintf(w, "  Source:     %s\n", cfg.SourceLang)
	fmt.Fprintf(w, "  Include:    %s\n", strings.Join(cfg.Include, ", "))
	if len(cfg.Languages) > 0 {
		fmt.Fprintf(w, "  Languages:  %s\n", strings.Join(cfg.Languages, ", "))
	} else {
		fmt.Fprintf(w, "  Languages:  %s\n", i18n.T("all supported by the service"))
	}

	fmt.Fprintf(w, "\n%s\n", heading(i18n.T("Catalogs")))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if len(sources) == 0 {
		fmt.Fprintf(w, "  %s\n", i18n.T("No source catalogs found"))
	}
	for _, src := range sources {
		rel, err := filepath.Rel(rootDir, src)
		if err != nil {
			rel = src
		}
		f, err := resx.ParseFile(src)
		if err != nil {
			fmt.Fprintf(w, "  %s  %s\n", rel, errorTag(err.Error()))
			continue
		}
		existing := config.DetectLanguages([]string{src}, cfg.SourceLang)
		fmt.Fprintf(w, "  %s  %s, %s\n", rel,
			fmt.Sprintf(i18n.N("%d entry", "%d entries", f.Len()), f.Len()),
			formatExisting(existing))
	}

	lock, err := lockfile.Load(rootDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s\n", heading(i18n.T("Lock file")))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  %s\n", lock.Summary())
	if pruneLock {
		removed := lock.Prune()
		if len(removed) > 0 {
			if err := lock.Save(); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "  %s\n", fmt.Sprintf(i18n.T("Pruned %d target(s)"), len(removed)))
	}
	fmt.Fprintln(w)
	return nil
}

func formatExisting(langs []string) string {
	if len(langs) == 0 {
		return i18n.T("no translations yet")
	}
	return fmt.Sprintf(i18n.T("translated: %s"), strings.Join(langs, ", "))
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored subscription key",
		Long: `Manage the translator subscription key stored in
$XDG_DATA_HOME/resxkit/auth.json.

The key is looked up in this order: --subscription-key flag,
RESXKIT_SUBSCRIPTION_KEY environment variable, the stored profile.

Examples:
  resxkit auth login                         Prompt for the key
  resxkit auth login --key $KEY --region westeurope
  resxkit auth logout                        Remove the default profile
  resxkit auth logout --all                  Remove all credentials
  resxkit auth list                          Show stored credentials`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthListCmd(),
	)
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var key, region, endpoint string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a subscription key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				existing := settings.Get(profile)
				var err error
				key, err = promptKey(os.Stdin, logOut, existing)
				if err != nil {
					return err
				}
				if key == "" {
					logInfo(i18n.T("Keeping existing key"))
					return nil
				}
			}
			if err := settings.SetAPIKey(profile, key, region, endpoint); err != nil {
				return fmt.Errorf("saving key: %w", err)
			}
			logSuccess(i18n.T("Subscription key saved to %s"), settings.FilePath())
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Subscription key (prompted when omitted)")
	cmd.Flags().StringVar(&region, "region", "", "Translator resource region")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Translator endpoint URL")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				if err := settings.RemoveAll(); err != nil {
					return err
				}
				logSuccess(i18n.T("All credentials removed"))
				return nil
			}
			if settings.Get(profile) == nil {
				logInfo(i18n.T("No credentials stored for %s"), profile)
				return nil
			}
			if err := settings.Remove(profile); err != nil {
				return err
			}
			logSuccess(i18n.T("Credentials for %s removed"), profile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Remove every profile")
	return cmd
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show stored credentials",
		Run: func(cmd *cobra.Command, args []string) {
			printCredentials(cmd.OutOrStdout(), settings.Load())
		},
	}
}

func printCredentials(w io.Writer, store settings.Store) {
	fmt.Fprintf(w, "\n%s\n", heading(i18n.T("Stored Credentials")))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(store) == 0 {
		fmt.Fprintf(w, "  %s\n", i18n.T("none"))
	}
	for _, id := range store.Profiles() {
		info := store[id]
		line := fmt.Sprintf("  %-14s key: %s", id, settings.MaskKey(info.Key))
		if info.Region != "" {
			line += ", region: " + info.Region
		}
		if info.Endpoint != "" {
			line += ", endpoint: " + info.Endpoint
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "\n  %s\n", heading(i18n.T("Environment Variables")))
	for _, env := range []string{settings.EnvSubscriptionKey, settings.EnvRegion} {
		v := os.Getenv(env)
		switch {
		case v == "":
			fmt.Fprintf(w, "  %s: %s\n", env, i18n.T("not set"))
		case env == settings.EnvSubscriptionKey:
			fmt.Fprintf(w, "  %s: %s\n", env, settings.MaskKey(v))
		default:
			fmt.Fprintf(w, "  %s: %s\n", env, v)
		}
	}
	fmt.Fprintln(w)
}
