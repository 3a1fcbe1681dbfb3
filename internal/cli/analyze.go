package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"termex/config"
	"termex/internal/adapter/analyzer"
	"termex/internal/adapter/fs"
	"termex/internal/adapter/store"
	"termex/internal/metrics"
	"termex/internal/usecase"
)

var analyzeMetricsFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a corpus and store its term indexes",
	Long: `Tokenize and analyze every matching file in the specified directory.
Results are stored in .termex/index.db within the target directory. Files
unchanged since the last run are skipped. Ctrl-C stops the run between
documents; everything analyzed so far is kept.

Examples:
  termex analyze .
  termex analyze ./corpus --metrics-file termex.prom`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeMetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	an, err := analyzer.NewAnalyzer(cfg.Analysis)
	if err != nil {
		return err
	}
	tokenizer, err := analyzer.NewTokenizer(cfg.Corpus.Format)
	if err != nil {
		return err
	}

	if err := config.EnsureDataDir(path); err != nil {
		return fmt.Errorf("failed to create .termex directory: %w", err)
	}

	dbPath := config.IndexDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index store: %w", err)
	}
	defer st.Close()

	migrationResult, err := st.Prepare(cfg)
	if err != nil {
		return err
	}
	if migrationResult.NeedsRebuild {
		fmt.Printf("Index rebuilt: %s\n", migrationResult.Reason)
	} else if migrationResult.NeedsMigration {
		fmt.Printf("Schema migrated: %s\n", migrationResult.Reason)
	}

	m := metrics.New()
	walker := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	indexUC := usecase.NewIndexUseCase(st, walker, tokenizer, usecase.NewAnalyzeUseCase(an, m), cfg.Corpus.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Scanning %s...\n", path)
	fmt.Printf("Analyzer: %s\n", an.Name())

	result, err := indexUC.Index(ctx, path, newProgress())
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeMetricsFile != "" {
		if err := m.WriteTextfile(analyzeMetricsFile); err != nil {
			fmt.Printf("\nWarning: failed to write metrics: %v\n", err)
		}
	}

	printSummary(result)
	fmt.Printf("\nIndex stored at: %s\n", dbPath)
	return nil
}

func printSummary(result *usecase.IndexResult) {
	if result.Cancelled {
		fmt.Printf("\nAnalysis cancelled:\n")
	} else {
		fmt.Printf("\nAnalysis complete:\n")
	}
	fmt.Printf("  Files analyzed:  %d\n", result.FilesAnalyzed)
	fmt.Printf("  Files skipped:   %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Files deleted:   %d (removed)\n", result.FilesDeleted)
	if result.Cancelled {
		fmt.Printf("  Files pending:   %d\n", result.FilesPending)
	}
	fmt.Printf("  Term instances:  %d (this run)\n", result.TermInstances)
	fmt.Printf("  Distinct terms:  %d (corpus)\n", result.DistinctTerms)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}

// newProgress returns a progress callback that draws a bar once the total
// is known.
func newProgress() usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	return func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Analyzing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Analyzing[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

// openIndex opens the analysis store of the root directory for reading.
func openIndex() (*store.BoltStore, error) {
	dbPath := config.IndexDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no index found. Run 'termex analyze' first")
	}
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return st, nil
}

// resolveDocPath turns a --doc argument into the absolute path documents are
// stored under.
func resolveDocPath(doc string) (string, error) {
	if filepath.IsAbs(doc) {
		return filepath.Clean(doc), nil
	}
	return filepath.Abs(filepath.Join(GetRootDir(), doc))
}
