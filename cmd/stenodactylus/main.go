// Package main provides the CLI entrypoint for stenodactylus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dewtone/stenodactylus/internal/config"
	"github.com/dewtone/stenodactylus/internal/dict"
	"github.com/dewtone/stenodactylus/internal/model"
	"github.com/dewtone/stenodactylus/internal/stats"
	"github.com/dewtone/stenodactylus/internal/statsui"
	"github.com/dewtone/stenodactylus/internal/steno"
	"github.com/dewtone/stenodactylus/internal/store"
	"github.com/dewtone/stenodactylus/internal/tui"
)

const (
	defaultMaxLevel    = 10
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
)

var (
	practiceDict       string
	practicePhrases    string
	practicePhrasing   string
	practiceMaxLevel   int
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsStrokes     string
	statsBrowse      bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stenodactylus",
		Short:         "TUI steno chord trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceDict, "dict", "", "word dictionary path (default: XDG config dir)")
	rootCmd.Flags().StringVar(&practicePhrases, "phrases", "", "phrase file path")
	rootCmd.Flags().StringVar(&practicePhrasing, "phrasing", "", "phrasing dictionary path")
	rootCmd.Flags().IntVar(&practiceMaxLevel, "max-level", defaultMaxLevel, "streak level where rewards saturate")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak strokes")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak strokes to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak strokes")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent drills to compute weak strokes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDictCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &practiceDict, fileCfg.Practice.Dict)
	applyStringConfig(cmd, "phrases", &practicePhrases, fileCfg.Practice.Phrases)
	applyStringConfig(cmd, "phrasing", &practicePhrasing, fileCfg.Practice.Phrasing)
	applyIntConfig(cmd, "max-level", &practiceMaxLevel, fileCfg.Practice.MaxLevel)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	cfg := model.Config{
		DictPath:     practiceDict,
		PhrasePath:   practicePhrases,
		PhrasingPath: practicePhrasing,
		MaxLevel:     practiceMaxLevel,
		FocusWeak:    practiceFocusWeak,
		WeakTop:      practiceWeakTop,
		WeakFactor:   practiceWeakFactor,
		WeakWindow:   practiceWeakWindow,
	}
	if cfg.DictPath == "" {
		cfg.DictPath = config.DefaultDictPath()
	}
	if cfg.PhrasePath == "" {
		cfg.PhrasePath = config.DefaultPhrasePath()
	}
	if cfg.PhrasingPath == "" {
		cfg.PhrasingPath = config.DefaultPhrasingPath()
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	entries, err := dict.LoadAll(cfg.DictPath, cfg.PhrasePath, cfg.PhrasingPath)
	if err != nil {
		return dictLoadError(cfg.DictPath, err)
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	weakSet := map[string]struct{}{}
	weakNoticePrinted := false
	if cfg.FocusWeak {
		aggs, err := st.GetWeakStrokes(context.Background(), cfg.WeakWindow)
		if err != nil {
			logErrf("failed to load weak strokes: %v\n", err)
		} else {
			weakSet = stats.SelectWeakStrokes(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-stroke focus yet; using uniform selection")
				weakNoticePrinted = true
			}
		}
	}

	sel := dict.NewSelector()
	practiceModel := tui.NewModel(cfg, st, sel, entries, weakSet, weakNoticePrinted)
	program := tea.NewProgram(practiceModel, tea.WithAltScreen())
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
		Short: "Show drill stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N drills")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsStrokes, "stroke", "", "comma-separated strokes for per-stroke curves")
	cmd.Flags().BoolVar(&statsBrowse, "browse", false, "open the interactive stats browser")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Strokes:     statsStrokes,
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsBrowse {
		browseModel := statsui.NewModel(st, cfg)
		program := tea.NewProgram(browseModel, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	return printStats(cmd, st, cfg)
}

func printStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Drills); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderCurves(out, report.Drills, cfg.CurveWindow); err != nil {
		return fmt.Errorf("failed to render curves: %w", err)
	}
	if err := stats.RenderStrokeTable(out, report.StrokeAggsWindow); err != nil {
		return fmt.Errorf("failed to render stroke table: %w", err)
	}

	strokes := parseStrokes(cfg.Strokes)
	if len(strokes) == 0 {
		strokes = stats.TopStrokesByFrequency(report.StrokeAggsAll, 5)
	}
	if err := stats.RenderStrokeCurves(out, report.Drills, report.StrokesByDrill, strokes, cfg.CurveWindow); err != nil {
		return fmt.Errorf("failed to render stroke curves: %w", err)
	}
	return nil
}

func parseStrokes(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Inspect training dictionaries",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Parse a dictionary and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDictCheckCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list [path]",
		Short: "List entries with their stroke notation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDictListCmd,
	})
	return cmd
}

func dictPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultDictPath()
}

func runDictCheckCmd(cmd *cobra.Command, args []string) error {
	path := dictPathFromArgs(args)
	entries, err := dict.LoadEntries(path)
	if err != nil {
		return fmt.Errorf("dictionary check failed: %w", err)
	}
	strokes := 0
	for _, e := range entries {
		strokes += len(e.Alternatives)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %d stroke alternatives\n", path, len(entries), strokes); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runDictListCmd(cmd *cobra.Command, args []string) error {
	path := dictPathFromArgs(args)
	entries, err := dict.LoadEntries(path)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, e := range entries {
		hints := make([]string, 0, len(e.Alternatives))
		for _, alt := range e.Alternatives {
			hints = append(hints, steno.FormatSequence(alt))
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", e.Word, strings.Join(hints, " | ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# stenodactylus configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# dict = ""               # Word dictionary path (default: XDG config dir)
# phrases = ""            # Phrase file path
# phrasing = ""           # Phrasing dictionary path
# max-level = %d          # Streak level where rewards saturate
# focus-weak = false      # Bias practice toward weak strokes
# weak-top = %d           # Number of weak strokes to focus on
# weak-factor = %.1f      # Weight factor for weak strokes
# weak-window = %d        # Number of recent drills to compute weak strokes
`,
		defaultMaxLevel,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.MaxLevel <= 0 {
		return fmt.Errorf("--max-level must be > 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func dictLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load dictionary: %v", err),
		fmt.Sprintf("expected dictionary at: %s", path),
		"The dictionary is a tab-separated file: word<TAB>stroke",
		"Multi-stroke entries use \"/\": permanent<TAB>PER/PHA/TPHENT",
		"Check a dictionary with: stenodactylus dict check <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
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
