// Command crosscheck cross-checks Android and iOS translations that share English text.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/minios-linux/crosscheck/android"
	"github.com/minios-linux/crosscheck/config"
	"github.com/minios-linux/crosscheck/i18n"
	"github.com/minios-linux/crosscheck/langmeta"
	"github.com/minios-linux/crosscheck/reconcile"
	"github.com/minios-linux/crosscheck/report"
	"github.com/minios-linux/crosscheck/xliff"
	"github.com/spf13/cobra"
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

// logOutput receives log lines; the report itself goes to the command's
// stdout.
var logOutput io.Writer = os.Stderr

var (
	tagInfo    = color.New(color.FgBlue).SprintFunc()
	tagSuccess = color.New(color.FgGreen).SprintFunc()
	tagWarning = color.New(color.FgYellow, color.Bold).SprintFunc()
	tagError   = color.New(color.FgRed).SprintFunc()
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(logOutput, tagInfo("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(logOutput, tagSuccess("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(logOutput, tagWarning("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(logOutput, tagError("[ERROR]")+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir    string
	configPath string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crosscheck",
		Short: "Cross-check Android and iOS translations that share English text",
		Long: `crosscheck compares the translations of an Android resource file
(strings.xml) with those of an iOS XLIFF export.

Entries are matched on their English text. For every language, translations
of the same English text that differ (after stripping ignored characters)
are printed as English/Android/iOS blocks.

Translated files live next to the English ones, with the language code
inserted before the extension:
  Android/strings V2.xml  ->  Android/strings V2_de.xml
  iOS/en V1.xliff         ->  iOS/en V1_de.xliff

Commands:
  compare     Report translation discrepancies per language
  languages   Show configured languages and their files
  init        Write a default .crosscheck.yaml
  version     Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <root>/"+config.FileName+")")

	root.AddCommand(
		newCompareCmd(),
		newLanguagesCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
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
			fmt.Fprintf(out, "crosscheck version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// overrides are command-line values replacing config file options.
type overrides struct {
	langs     string
	android   string
	ios       string
	ignore    string
	ignoreSet bool
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(rootDir, config.FileName)
}

func loadConfig(o overrides) (*config.Config, error) {
	f, err := config.LoadOrDefault(resolvedConfigPath())
	if err != nil {
		return nil, err
	}
	if o.langs != "" {
		f.Languages = config.SplitList(o.langs)
	}
	if o.android != "" {
		f.AndroidSource = o.android
	}
	if o.ios != "" {
		f.IOSSource = o.ios
	}
	if o.ignoreSet {
		f.IgnoredCharacters = config.SplitChars(o.ignore)
	}
	return f.Resolve(rootDir)
}

func addOverrideFlags(cmd *cobra.Command, o *overrides) {
	cmd.Flags().StringVar(&o.langs, "lang", "", "Languages to process (comma-separated, default: from config)")
	cmd.Flags().StringVar(&o.android, "android", "", "English Android resource file")
	cmd.Flags().StringVar(&o.ios, "ios", "", "English iOS XLIFF file")
}

// ---------------------------------------------------------------------------
// compare
// ---------------------------------------------------------------------------

// errLanguagesFailed is returned when at least one language could not be
// compared; the report for the others is complete.
var errLanguagesFailed = errors.New("some languages could not be compared")

func newCompareCmd() *cobra.Command {
	var (
		o      overrides
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Report translation discrepancies per language",
		Long: `Compare translated Android and iOS files language by language.

For each language a header is printed, then every English text whose Android
and iOS translations differ, then a separator line. Translations missing on
either side are not reported.

By default a language whose translated file is missing is skipped with a
warning, and a language whose file cannot be parsed is reported as failed
while the remaining languages are still compared. With --strict the run
stops at the first such language.

Examples:
  # Compare every configured language
  crosscheck compare

  # Only German and French, ignoring backslashes and apostrophes
  crosscheck compare --lang de,fr --ignore "\\'"

  # Explicit source files
  crosscheck compare --android res/strings.xml --ios Localizations/en.xliff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.ignoreSet = cmd.Flags().Changed("ignore")
			return runCompare(cmd.OutOrStdout(), o, strict)
		},
	}

	addOverrideFlags(cmd, &o)
	cmd.Flags().StringVar(&o.ignore, "ignore", "", "Characters to strip before comparing (each character is one entry)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first language that is missing or cannot be parsed")

	return cmd
}

func runCompare(out io.Writer, o overrides, strict bool) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	n := len(cfg.Languages)
	logInfo(i18n.N("Comparing %d language: %s", "Comparing %d languages: %s", n), n, strings.Join(cfg.Languages, ", "))

	w := report.NewWriter(out)
	var sum report.Summary
	collisionsLogged := false

	err = reconcile.Run(cfg, reconcile.Options{Strict: strict}, func(r *reconcile.LanguageResult) error {
		sum.Add(r)
		if r.Comparison != nil && !collisionsLogged {
			for _, c := range r.Comparison.Collisions {
				logWarning(i18n.T("%s: English text %q is used by %q and %q; comparing %q"),
					c.Path, c.English, c.Dropped, c.Kept, c.Kept)
			}
			collisionsLogged = true
		}
		if err := w.Result(r); err != nil {
			return err
		}
		if r.Err != nil && !strict {
			if r.Missing() {
				logWarning(i18n.T("Skipping %s: %v"), r.Language, r.Err)
			} else {
				logError(i18n.T("Language %s failed: %v"), r.Language, r.Err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logInfo(i18n.T("Compared %d of %d languages, %d shared English texts"), sum.Compared, sum.Languages, sum.Matched)
	if sum.Discrepancies == 0 {
		logSuccess("%s", i18n.T("No discrepancies found"))
	} else {
		logInfo(i18n.N("Found %d discrepancy", "Found %d discrepancies", sum.Discrepancies), sum.Discrepancies)
	}
	if sum.Missing > 0 {
		logWarning(i18n.N("%d language skipped (translated file missing)", "%d languages skipped (translated file missing)", sum.Missing), sum.Missing)
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errLanguagesFailed, sum.Failed, sum.Languages)
	}
	return nil
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Show configured languages and their files",
		Long: `List the configured languages with their native names and the translated
files that compare would read, with the number of translated entries in
each file. Does not compare anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			return showLanguages(cmd.OutOrStdout(), cfg)
		},
	}

	addOverrideFlags(cmd, &o)
	return cmd
}

func showLanguages(out io.Writer, cfg *config.Config) error {
	fmt.Fprintf(out, "Android: %s\n", cfg.AndroidSource)
	fmt.Fprintf(out, "iOS:     %s\n", cfg.IOSSource)
	if len(cfg.IgnoredCharacters) > 0 {
		fmt.Fprintf(out, "Ignored: %q\n", strings.Join(cfg.IgnoredCharacters, ""))
	}
	fmt.Fprintln(out)

	width := langColumnWidth(cfg.Languages)
	for _, lang := range cfg.Languages {
		meta := langmeta.Resolve(lang)
		paths := reconcile.PathsFor(cfg, lang)
		fmt.Fprintf(out, "%s  %s\n", langCell(lang, meta, width), meta.Name)
		fmt.Fprintf(out, "    android: %s  %s\n", paths.TranslatedAndroid, androidStatus(paths.TranslatedAndroid))
		fmt.Fprintf(out, "    ios:     %s  %s\n", paths.TranslatedIOS, xliffStatus(paths.TranslatedIOS))
	}
	return nil
}

func langColumnWidth(langs []string) int {
	w := 0
	for _, l := range langs {
		if len(l) > w {
			w = len(l)
		}
	}
	return w
}

func langCell(lang string, meta langmeta.Meta, width int) string {
	flag := meta.Flag
	if flag == "" {
		flag = "  "
	}
	return fmt.Sprintf("%s %-*s", flag, width, lang)
}

func androidStatus(path string) string {
	if !fileExists(path) {
		return "(" + i18n.T("missing") + ")"
	}
	f, err := android.ParseFile(path)
	if err != nil {
		return "(" + i18n.T("unreadable") + ")"
	}
	total, translated, _ := f.Stats()
	return fmt.Sprintf("(%d/%d)", translated, total)
}

func xliffStatus(path string) string {
	if !fileExists(path) {
		return "(" + i18n.T("missing") + ")"
	}
	d, err := xliff.ParseFile(path)
	if err != nil {
		return "(" + i18n.T("unreadable") + ")"
	}
	total, translated, _ := d.Stats()
	return fmt.Sprintf("(%d/%d)", translated, total)
}

// ---------------------------------------------------------------------------
// init
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Long: `Write a configuration file with the built-in defaults: the language list,
the English Android and iOS source paths and the ignored characters.
Edit it to match the project layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func runInit(force bool) error {
	path := resolvedConfigPath()
	if fileExists(path) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Defaults().Save(path); err != nil {
		return err
	}
	logSuccess(i18n.T("Wrote %s"), path)
	return nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
