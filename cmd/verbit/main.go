// Package main provides the CLI entrypoint for verbit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/config"
	"github.com/teepaa516/italian-verbit/internal/drill"
	"github.com/teepaa516/italian-verbit/internal/generator"
	"github.com/teepaa516/italian-verbit/internal/lexicon"
	"github.com/teepaa516/italian-verbit/internal/model"
	"github.com/teepaa516/italian-verbit/internal/progress"
	"github.com/teepaa516/italian-verbit/internal/stats"
	"github.com/teepaa516/italian-verbit/internal/store"
	"github.com/teepaa516/italian-verbit/internal/tui"
)

const (
	defaultSize        = 10
	defaultMode        = model.ModeWrite
	defaultBackend     = model.BackendJSON
	defaultCurveWindow = 5
)

var defaultTenses = lexicon.TenseNames(lexicon.AllTenses)

var (
	practiceTenses []string
	practiceSize   int
	practiceMode   string

	verbsPath    string
	backendName  string
	progressPath string

	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "verbit",
		Short:         "Italian irregular verb drills",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringSliceVar(&practiceTenses, "tenses", defaultTenses, "tenses to practice (comma separated)")
	rootCmd.Flags().IntVar(&practiceSize, "size", defaultSize, "cards per round (1-50)")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "answer mode: write or choice")

	rootCmd.PersistentFlags().StringVar(&verbsPath, "verbs", "", "verb lexicon JSON file (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", defaultBackend, "progress backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&progressPath, "progress", "", "progress file or database path")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newVerbsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	settings, err := buildSettings(cfg)
	if err != nil {
		return err
	}

	verbs, err := loadVerbs(cfg.VerbsPath)
	if err != nil {
		return err
	}

	backend, st, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	tracker, err := progress.Load(ctx, backend)
	if err != nil {
		logErrf("%v; starting fresh\n", err)
	}

	engine, err := drill.NewEngine(verbs, tracker, generator.New(), settings)
	if err != nil {
		return fmt.Errorf("failed to start drill: %w", err)
	}
	if st != nil {
		engine.SetRecorder(st)
	}

	program := tea.NewProgram(tui.NewModel(engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress by tense and round history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit history to last N rounds")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateBackend(cfg); err != nil {
		return err
	}
	verbs, err := loadVerbs(cfg.VerbsPath)
	if err != nil {
		return err
	}
	backend, st, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	tracker, err := progress.Load(ctx, backend)
	if err != nil {
		logErrf("%v\n", err)
	}

	var rounds stats.RoundLister
	if st != nil {
		rounds = st
	}
	report, err := stats.BuildReport(ctx, card.Enumerate(verbs, lexicon.AllTenses), tracker, rounds, statsLast)
	if err != nil {
		return fmt.Errorf("failed to load round history: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderBoxTable(out, report.Boxes); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderWeakest(out, report.Weakest); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if st == nil {
		logErrln("Round history is recorded with --backend sqlite.")
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	width := stats.CurveWidth(stats.TerminalWidth())
	if err := stats.RenderRounds(out, report.Rounds, statsCurveWindow, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget all progress",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateBackend(cfg); err != nil {
		return err
	}
	backend, st, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	tracker, err := progress.Load(ctx, backend)
	if err != nil {
		logErrf("%v\n", err)
	}
	if err := tracker.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	logErrln("Progress reset.")
	return nil
}

func newVerbsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verbs",
		Short: "List the loaded verbs",
		Args:  cobra.NoArgs,
		RunE:  runVerbsCmd,
	}
}

func runVerbsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	verbs, err := loadVerbs(cfg.VerbsPath)
	if err != nil {
		return err
	}
	for _, line := range formatVerbs(verbs) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func formatVerbs(verbs []lexicon.Verb) []string {
	infWidth := runewidth.StringWidth("Verb")
	trWidth := runewidth.StringWidth("Translation")
	for _, v := range verbs {
		infWidth = max(infWidth, runewidth.StringWidth(v.Infinitive))
		trWidth = max(trWidth, runewidth.StringWidth(v.Translation))
	}
	lines := make([]string, 0, len(verbs)+1)
	row := func(inf, tr, aux string) string {
		line := runewidth.FillRight(inf, infWidth) + "  " + runewidth.FillRight(tr, trWidth) + "  " + aux
		return strings.TrimRight(line, " ")
	}
	lines = append(lines, row("Verb", "Translation", "Auxiliary"))
	for _, v := range verbs {
		lines = append(lines, row(v.Infinitive, v.Translation, v.Auxiliary.String()))
	}
	return lines
}

func loadConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringSliceConfig(cmd, "tenses", &practiceTenses, fileCfg.Practice.Tenses)
	applyIntConfig(cmd, "size", &practiceSize, fileCfg.Practice.Size)
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "verbs", &verbsPath, fileCfg.Practice.Verbs)
	applyStringConfig(cmd, "backend", &backendName, fileCfg.Practice.Backend)
	applyStringConfig(cmd, "progress", &progressPath, fileCfg.Practice.Progress)

	return model.Config{
		Tenses:       practiceTenses,
		Size:         practiceSize,
		Mode:         practiceMode,
		VerbsPath:    verbsPath,
		Backend:      backendName,
		ProgressPath: progressPath,
	}, nil
}

func loadVerbs(path string) ([]lexicon.Verb, error) {
	if path == "" {
		verbs, err := lexicon.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in verbs: %w", err)
		}
		return verbs, nil
	}
	verbs, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load verbs from %s: %w", path, err)
	}
	return verbs, nil
}

// openBackend returns the progress backend for cfg. The store is non-nil for
// the sqlite backend and must be closed by the caller.
func openBackend(cfg model.Config) (progress.Backend, *store.Store, error) {
	path := resolveProgressPath(cfg)
	switch cfg.Backend {
	case model.BackendSQLite:
		st, err := store.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db: %w", err)
		}
		return st, st, nil
	default:
		return progress.FileBackend{Path: path}, nil, nil
	}
}

func resolveProgressPath(cfg model.Config) string {
	if cfg.ProgressPath != "" {
		return cfg.ProgressPath
	}
	if cfg.Backend == model.BackendSQLite {
		return config.DefaultDBPath()
	}
	return config.DefaultProgressPath()
}

func closeStore(st *store.Store) {
	if st == nil {
		return
	}
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func buildSettings(cfg model.Config) (drill.Settings, error) {
	tenses, err := lexicon.ParseTenses(cfg.Tenses)
	if err != nil {
		return drill.Settings{}, fmt.Errorf("invalid --tenses value: %w", err)
	}
	mode, err := drill.ParseMode(cfg.Mode)
	if err != nil {
		return drill.Settings{}, fmt.Errorf("invalid --mode value: %w", err)
	}
	settings := drill.Settings{Tenses: tenses, Size: cfg.Size, Mode: mode}
	if err := settings.Validate(); err != nil {
		return drill.Settings{}, err
	}
	return settings, nil
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# verbit configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# tenses = [%s]
# size = %d                 # Cards per round (%d-%d)
# mode = %q            # "write" or "choice"
# verbs = ""                # Verb lexicon JSON file (default: built-in)
# backend = %q           # "json" or "sqlite"
# progress = ""             # Progress file or database path
`,
		quoteAll(defaultTenses),
		defaultSize,
		drill.MinSize,
		drill.MaxSize,
		defaultMode,
		defaultBackend,
	)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

func validateConfig(cfg model.Config) error {
	if cfg.Size < drill.MinSize || cfg.Size > drill.MaxSize {
		return fmt.Errorf("--size must be between %d and %d", drill.MinSize, drill.MaxSize)
	}
	if len(cfg.Tenses) == 0 {
		return fmt.Errorf("--tenses must not be empty")
	}
	if cfg.Mode != model.ModeWrite && cfg.Mode != model.ModeChoice {
		return fmt.Errorf("--mode must be %q or %q", model.ModeWrite, model.ModeChoice)
	}
	return validateBackend(cfg)
}

func validateBackend(cfg model.Config) error {
	if cfg.Backend != model.BackendJSON && cfg.Backend != model.BackendSQLite {
		return fmt.Errorf("--backend must be %q or %q", model.BackendJSON, model.BackendSQLite)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
