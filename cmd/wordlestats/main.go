// Package main provides the CLI entrypoint for wordlestats.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jinnic/wordle-analysis/internal/config"
	"github.com/jinnic/wordle-analysis/internal/corpus"
	"github.com/jinnic/wordle-analysis/internal/dashui"
	"github.com/jinnic/wordle-analysis/internal/model"
	"github.com/jinnic/wordle-analysis/internal/report"
	"github.com/jinnic/wordle-analysis/internal/scrape"
	"github.com/jinnic/wordle-analysis/internal/store"
	"github.com/jinnic/wordle-analysis/internal/wordfreq"
)

const (
	defaultTopN       = 10
	defaultPlotHeight = 10
	defaultWindow     = 5

	answersDelimiter = "|"

	sourceScrape = "scrape"
	sourceCache  = "cache"
)

var (
	analyzeTopN       int
	analyzeAnswersURL string
	analyzePlotHeight int
	analyzeDataDir    string
	analyzeRefresh    bool
	analyzeNoSave     bool

	fetchAnswersURL   string
	fetchDataDir      string
	fetchForce        bool
	fetchEnglishLimit int

	dashTopN       int
	dashAnswersURL string
	dashPlotHeight int
	dashDataDir    string

	historySince   string
	historyLast    int
	historyWindow  int
	historyDataDir string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordlestats",
		Short:         "Letter statistics for Wordle answers",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.Flags().IntVar(&analyzeTopN, "top-n", defaultTopN, "number of letters to rank")
	rootCmd.Flags().StringVar(&analyzeAnswersURL, "answers-url", scrape.DefaultAnswersURL, "past answers page URL")
	rootCmd.Flags().IntVar(&analyzePlotHeight, "plot-height", defaultPlotHeight, "plot height in rows")
	rootCmd.Flags().StringVar(&analyzeDataDir, "data-dir", "", "data directory (default: XDG data dir)")
	rootCmd.Flags().BoolVar(&analyzeRefresh, "refresh", false, "re-fetch corpora before analyzing")
	rootCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "skip recording the run")

	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newDashCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top-n", &analyzeTopN, fileCfg.Analysis.TopN)
	applyStringConfig(cmd, "answers-url", &analyzeAnswersURL, fileCfg.Analysis.AnswersURL)
	applyIntConfig(cmd, "plot-height", &analyzePlotHeight, fileCfg.Analysis.PlotHeight)
	applyStringConfig(cmd, "data-dir", &analyzeDataDir, fileCfg.Analysis.DataDir)

	cfg := model.Config{
		TopN:       analyzeTopN,
		AnswersURL: analyzeAnswersURL,
		PlotHeight: analyzePlotHeight,
		Refresh:    analyzeRefresh,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	dataDir := resolveDataDir(analyzeDataDir)

	ctx := context.Background()
	wordle, source, err := ensureWordleCorpus(ctx, dataDir, cfg.AnswersURL, cfg.Refresh)
	if err != nil {
		return err
	}
	english, err := ensureEnglishCorpus(ctx, dataDir, cfg.Refresh, 0)
	if err != nil {
		return err
	}

	rep, err := report.Build(wordle, english)
	if err != nil {
		return fmt.Errorf("failed to analyze corpora: %w", err)
	}
	if err := report.RenderAll(cmd.OutOrStdout(), rep, cfg.TopN); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if !analyzeNoSave {
		recordRun(ctx, dataDir, rep, source)
	}
	return nil
}

// recordRun persists the run best-effort. Analysis output is already
// printed, so storage failures only warn.
func recordRun(ctx context.Context, dataDir string, rep report.Report, source string) {
	st, err := store.Open(config.DBPath(dataDir))
	if err != nil {
		logErrf("failed to open run db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close run db: %v\n", cerr)
		}
	}()
	run := model.RunRecord{
		RanAt:        time.Now(),
		WordleWords:  len(rep.Wordle.Words),
		EnglishWords: len(rep.English.Words),
		TVD:          rep.TVD,
		TopLetter:    rep.TopLetter(),
		Source:       source,
	}
	if _, err := st.InsertRun(ctx, run); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the answer list and English corpus",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchAnswersURL, "answers-url", scrape.DefaultAnswersURL, "past answers page URL")
	cmd.Flags().StringVar(&fetchDataDir, "data-dir", "", "data directory (default: XDG data dir)")
	cmd.Flags().BoolVar(&fetchForce, "force", false, "overwrite existing corpora")
	cmd.Flags().IntVar(&fetchEnglishLimit, "english-limit", 0, "cap the English corpus size (0 = all)")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "answers-url", &fetchAnswersURL, fileCfg.Analysis.AnswersURL)
	applyStringConfig(cmd, "data-dir", &fetchDataDir, fileCfg.Analysis.DataDir)
	dataDir := resolveDataDir(fetchDataDir)

	ctx := context.Background()
	wordle, _, err := ensureWordleCorpus(ctx, dataDir, fetchAnswersURL, fetchForce)
	if err != nil {
		return err
	}
	logErrf("Wordle answers: %d words (%s)\n", len(wordle.Words), config.AnswersPath(dataDir))

	english, err := ensureEnglishCorpus(ctx, dataDir, fetchForce, fetchEnglishLimit)
	if err != nil {
		return err
	}
	logErrf("English words: %d words (%s)\n", len(english.Words), config.CorpusPath(dataDir))
	return nil
}

func newDashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Interactive analysis dashboard",
		Args:  cobra.NoArgs,
		RunE:  runDashCmd,
	}
	cmd.Flags().IntVar(&dashTopN, "top-n", defaultTopN, "number of letters to rank")
	cmd.Flags().StringVar(&dashAnswersURL, "answers-url", scrape.DefaultAnswersURL, "past answers page URL")
	cmd.Flags().IntVar(&dashPlotHeight, "plot-height", defaultPlotHeight, "plot height in rows")
	cmd.Flags().StringVar(&dashDataDir, "data-dir", "", "data directory (default: XDG data dir)")
	return cmd
}

func runDashCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top-n", &dashTopN, fileCfg.Analysis.TopN)
	applyStringConfig(cmd, "answers-url", &dashAnswersURL, fileCfg.Analysis.AnswersURL)
	applyIntConfig(cmd, "plot-height", &dashPlotHeight, fileCfg.Analysis.PlotHeight)
	applyStringConfig(cmd, "data-dir", &dashDataDir, fileCfg.Analysis.DataDir)

	cfg := model.Config{
		TopN:       dashTopN,
		AnswersURL: dashAnswersURL,
		PlotHeight: dashPlotHeight,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	dataDir := resolveDataDir(dashDataDir)

	var st *store.Store
	st, err = store.Open(config.DBPath(dataDir))
	if err != nil {
		logErrf("failed to open run db: %v\n", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close run db: %v\n", cerr)
			}
		}()
	}

	cache := corpus.NewCache()
	loadWordle := func() (*corpus.Corpus, error) {
		c, _, err := ensureWordleCorpus(context.Background(), dataDir, cfg.AnswersURL, false)
		return c, err
	}
	loadEnglish := func() (*corpus.Corpus, error) {
		return ensureEnglishCorpus(context.Background(), dataDir, false, 0)
	}

	ui := dashui.NewModel(cache, loadWordle, loadEnglish, st, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past analysis runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&historyWindow, "window", defaultWindow, "moving average window")
	cmd.Flags().StringVar(&historyDataDir, "data-dir", "", "data directory (default: XDG data dir)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &historyDataDir, fileCfg.Analysis.DataDir)
	dataDir := resolveDataDir(historyDataDir)

	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}

	st, err := store.Open(config.DBPath(dataDir))
	if err != nil {
		return fmt.Errorf("failed to open run db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close run db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), model.HistoryConfig{
		Since:  sinceTime,
		Last:   historyLast,
		Window: historyWindow,
	})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return report.RenderHistory(cmd.OutOrStdout(), runs, historyWindow)
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

// ensureWordleCorpus returns the past answers, scraping and persisting
// them when the local copy is missing or a refresh is requested.
func ensureWordleCorpus(ctx context.Context, dataDir, url string, refresh bool) (*corpus.Corpus, string, error) {
	path := config.AnswersPath(dataDir)
	if !refresh {
		if _, err := os.Stat(path); err == nil {
			c, err := corpus.LoadDelimited("wordle", path, answersDelimiter)
			if err != nil {
				return nil, "", fmt.Errorf("failed to load answers from %s: %w", path, err)
			}
			return c, sourceCache, nil
		} else if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("failed to stat answers: %w", err)
		}
	}

	logErrln("Fetching past Wordle answers...")
	blob, err := scrape.FetchAnswers(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch answers: %w", err)
	}
	c, err := corpus.New("wordle", corpus.Split(blob, answersDelimiter))
	if err != nil {
		return nil, "", fmt.Errorf("unexpected answer list: %w", err)
	}
	if err := writeDelimited(path, c.Words, answersDelimiter); err != nil {
		return nil, "", fmt.Errorf("failed to write answers: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return c, sourceScrape, nil
}

// ensureEnglishCorpus returns the general English five-letter corpus,
// extracting it from the wordfreq wheel when missing or refreshing.
func ensureEnglishCorpus(ctx context.Context, dataDir string, refresh bool, limit int) (*corpus.Corpus, error) {
	path := config.CorpusPath(dataDir)
	if !refresh {
		if _, err := os.Stat(path); err == nil {
			c, err := corpus.LoadLines("english", path)
			if err != nil {
				return nil, fmt.Errorf("failed to load English corpus from %s: %w", path, err)
			}
			return c, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat English corpus: %w", err)
		}
	}

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(ctx, config.WheelCacheDir(dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}

	words, err := wordfreq.ExtractFiveLetterWords(wheel.Path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to extract English words: %w", err)
	}
	if err := writeLines(path, words); err != nil {
		return nil, fmt.Errorf("failed to write English corpus: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return corpus.New("english", words)
}

func resolveDataDir(dir string) string {
	if dir != "" {
		return dir
	}
	return config.DefaultDataDir()
}

func writeLines(path string, words []string) error {
	return writeWordFile(path, func(w *bufio.Writer) error {
		for _, word := range words {
			if _, err := fmt.Fprintln(w, word); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeDelimited(path string, words []string, delimiter string) error {
	return writeWordFile(path, func(w *bufio.Writer) error {
		_, err := w.WriteString(strings.Join(words, " "+delimiter+" ") + "\n")
		return err
	})
}

func writeWordFile(path string, fill func(*bufio.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "corpus-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := fill(writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordlestats configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# top-n = %d                # Number of letters to rank
# answers-url = %q
#                           # Past answers page URL
# plot-height = %d          # Plot height in rows
# data-dir = ""             # Data directory (default: XDG data dir)
`,
		defaultTopN,
		scrape.DefaultAnswersURL,
		defaultPlotHeight,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.TopN < 1 {
		return fmt.Errorf("--top-n must be >= 1")
	}
	if cfg.AnswersURL == "" {
		return fmt.Errorf("--answers-url must not be empty")
	}
	if cfg.PlotHeight < 1 {
		return fmt.Errorf("--plot-height must be >= 1")
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
