// Package main provides the CLI entrypoint for tukai.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tukai/internal/archive"
	"github.com/verte-zerg/tukai/internal/config"
	"github.com/verte-zerg/tukai/internal/generator"
	"github.com/verte-zerg/tukai/internal/model"
	"github.com/verte-zerg/tukai/internal/stats"
	"github.com/verte-zerg/tukai/internal/storage"
	"github.com/verte-zerg/tukai/internal/tui"
	"github.com/verte-zerg/tukai/internal/wordlist"
)

const (
	defaultCaps        = 0.0
	defaultPunct       = 0.0
	defaultCurveWindow = 5
	defaultStatsRows   = 10
	debugEnv           = "TUKAI_DEBUG"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceLang        string
	practiceDuration    string
	practiceCaps        float64
	practicePunct       float64
	practicePunctSet    string
	practiceWordListDir string
	practiceDebug       bool

	recordPath string

	statsDuration    string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsRows        int
	statsDB          string

	exportDB string

	wordlistLang  string
	wordlistForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tukai",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&recordPath, "record", config.DefaultRecordPath(), "path of the history and settings file")

	rootCmd.Flags().StringVar(&practiceLang, "lang", "", "language to practice (default: last used)")
	rootCmd.Flags().StringVar(&practiceDuration, "duration", "", "session length: 15s, 30s, 60s or 180s (default: last used)")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().StringVar(&practiceWordListDir, "wordlist-dir", config.DefaultWordListDir(), "directory with extra <lang>.txt word lists")
	rootCmd.Flags().BoolVar(&practiceDebug, "debug", false, "write diagnostics to the debug log (also "+debugEnv+"=1)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyStringConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyStringConfig(cmd, "wordlist-dir", &practiceWordListDir, fileCfg.Practice.WordListDir)

	cfg := model.Config{
		Lang:        practiceLang,
		CapsPct:     practiceCaps,
		PunctPct:    practicePunct,
		PunctSet:    practicePunctSet,
		WordListDir: practiceWordListDir,
		RecordPath:  recordPath,
		Debug:       practiceDebug || os.Getenv(debugEnv) != "",
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	var duration model.TypingDuration
	if practiceDuration != "" {
		duration, err = model.ParseTypingDuration(practiceDuration)
		if err != nil {
			return fmt.Errorf("invalid --duration value: %w", err)
		}
	}

	catalog, err := wordlist.NewCatalog(cfg.WordListDir)
	if err != nil {
		return err
	}
	if catalog.Len() == 0 {
		return fmt.Errorf("no word lists available")
	}

	st, err := storage.Load(cfg.RecordPath)
	if st == nil {
		return err
	}
	if err != nil {
		logErrf("warning: %v; results will not be saved until this is fixed\n", err)
	}

	if cfg.Lang != "" {
		idx, ok := catalog.Index(cfg.Lang)
		if !ok {
			return unknownLangError(cfg.Lang, catalog)
		}
		if err := st.SetLanguageIndex(idx); err != nil {
			logErrf("failed to save language: %v\n", err)
		}
	}
	if duration != 0 {
		if err := st.SetTypingDuration(duration); err != nil {
			logErrf("failed to save duration: %v\n", err)
		}
	}

	logger, closeLog, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting practice",
		"record", st.Path(),
		"lang", catalog.Name(st.LanguageIndex()),
		"duration", st.TypingDuration().String(),
		"sessions", st.StatCount(),
	)

	m := tui.NewModel(st, catalog, tui.Options{
		Generator: generator.New(),
		Text: generator.Options{
			CapsPct:  cfg.CapsPct,
			PunctPct: cfg.PunctPct,
			PunctSet: []rune(cfg.PunctSet),
		},
		Logger: logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := st.Flush(); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// newLogger returns a discarding logger unless debug output is enabled.
func newLogger(debug bool) (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	path := config.DefaultDebugLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := tea.LogToFile(path, "tukai")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close of the debug log.
			_ = cerr
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List available languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
	cmd.Flags().StringVar(&practiceWordListDir, "wordlist-dir", config.DefaultWordListDir(), "directory with extra <lang>.txt word lists")
	return cmd
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	catalog, err := wordlist.NewCatalog(practiceWordListDir)
	if err != nil {
		return err
	}
	active := -1
	if st, err := storage.Load(recordPath); err == nil {
		active = catalog.Normalize(st.LanguageIndex())
	} else {
		logErrf("failed to read record: %v\n", err)
	}
	return writeLangs(cmd.OutOrStdout(), catalog, active)
}

func writeLangs(w io.Writer, catalog *wordlist.Catalog, active int) error {
	for i, lang := range catalog.Languages() {
		marker := " "
		if i == active {
			marker = "*"
		}
		source := "built-in"
		if !lang.Embedded() {
			source = lang.Path
		}
		if _, err := fmt.Fprintf(w, "%s %-6s %s\n", marker, lang.Name, source); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDuration, "duration", "", "only sessions of this length (15s, 30s, 60s, 180s)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsRows, "rows", defaultStatsRows, "rows per history table (0 for all)")
	cmd.Flags().StringVar(&statsDB, "db", "", "read history from an exported SQLite database instead of the record")
	return cmd
}

func parseStatsConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: statsLast, CurveWindow: statsCurveWindow}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if statsDuration != "" {
		d, err := model.ParseTypingDuration(statsDuration)
		if err != nil {
			return cfg, fmt.Errorf("invalid --duration value: %w", err)
		}
		cfg.Duration = d
	}
	if cfg.Last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow < 1 {
		return cfg, fmt.Errorf("--curve-window must be >= 1")
	}
	return cfg, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)
	applyIntConfig(cmd, "rows", &statsRows, fileCfg.Stats.Rows)

	cfg, err := parseStatsConfig()
	if err != nil {
		return err
	}
	all, err := loadHistory(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return writeStatsReport(cmd.OutOrStdout(), all, cfg, statsRows)
}

// loadHistory reads stats from the --db archive when set, otherwise from the record.
func loadHistory(ctx context.Context, cfg model.StatsConfig) ([]model.Stat, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if statsDB != "" {
		if _, err := os.Stat(statsDB); err != nil {
			return nil, fmt.Errorf("failed to open archive: %w", err)
		}
		a, err := archive.Open(statsDB)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		all, err := a.ListSessions(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to read archive: %w", err)
		}
		return all, nil
	}
	st, err := storage.Load(recordPath)
	if st == nil {
		return nil, err
	}
	if err != nil {
		logErrf("warning: %v\n", err)
	}
	return st.Stats(), nil
}

func writeStatsReport(w io.Writer, all []model.Stat, cfg model.StatsConfig, rows int) error {
	selected := stats.Select(all, cfg)
	if err := stats.RenderSummary(w, selected); err != nil {
		return err
	}
	if len(selected) == 0 {
		return nil
	}
	if err := stats.RenderHistory(w, "Best runs", stats.Best(selected), rows); err != nil {
		return err
	}
	if err := stats.RenderHistory(w, "Recent runs", stats.Recent(selected), rows); err != nil {
		return err
	}
	return stats.RenderCurves(w, selected, cfg.CurveWindow, 0, 0)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history to a SQLite database",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDB, "db", config.DefaultExportPath(), "SQLite database path")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	st, err := storage.Load(recordPath)
	if st == nil {
		return err
	}
	if err != nil {
		logErrf("warning: %v\n", err)
	}
	a, err := archive.Open(exportDB)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	record := st.Record()
	if err := a.Export(context.Background(), record); err != nil {
		return fmt.Errorf("failed to export history: %w", err)
	}
	id, err := a.Setting(context.Background(), archive.ExportIDKey)
	if err != nil {
		return fmt.Errorf("failed to read export id: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s (export %s)\n", len(record.Stats), exportDB, id); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist <file>",
		Short: "Import a word list (one word per line)",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "", "language name for the list (default: file name)")
	cmd.Flags().StringVar(&practiceWordListDir, "wordlist-dir", config.DefaultWordListDir(), "directory with extra <lang>.txt word lists")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(_ *cobra.Command, args []string) error {
	src := args[0]
	lang := strings.ToLower(strings.TrimSpace(wordlistLang))
	if lang == "" {
		lang = strings.ToLower(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))
	}
	if lang == "" || strings.ContainsAny(lang, `/\ `) {
		return fmt.Errorf("invalid language name %q", lang)
	}

	words, err := wordlist.LoadWords(src)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	kept := wordlist.Filter(words, wordlist.FilterForLang(lang))
	if len(kept) == 0 {
		return fmt.Errorf("no usable words in %s", src)
	}

	outPath := filepath.Join(practiceWordListDir, lang+".txt")
	if !wordlistForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	if err := wordlist.WriteWords(outPath, kept); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if dropped := len(words) - len(kept); dropped > 0 {
		logErrf("Skipped %d words not valid for %s\n", dropped, lang)
	}
	logErrf("Wrote %s (%d words)\n", outPath, len(kept))
	return nil
}

func unknownLangError(lang string, catalog *wordlist.Catalog) error {
	names := make([]string, 0, catalog.Len())
	for _, l := range catalog.Languages() {
		names = append(names, l.Name)
	}
	lines := []string{
		fmt.Sprintf("language %q not found", lang),
		fmt.Sprintf("available: %s", strings.Join(names, ", ")),
		fmt.Sprintf("Import one: tukai wordlist <file> --lang %s", lang),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tukai configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = "en"               # Language to practice (default: last used)
# duration = "60s"          # 15s, 30s, 60s or 180s (default: last used)
# caps = %.2f               # Probability of capitalized first letter (0-1)
# punct = %.2f              # Punctuation probability per word (0-1)
# punct-set = %q        # Punctuation set
# wordlist-dir = %q

[stats]
# curve-window = %d          # Moving average window for the WPM chart
# rows = %d                 # Rows per history table (0 for all)
`,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		config.DefaultWordListDir(),
		defaultCurveWindow,
		defaultStatsRows,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
