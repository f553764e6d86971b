package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mx-llm/vuechunk/pkg/indexer"
	"github.com/mx-llm/vuechunk/pkg/scanner"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Extract once, then re-extract whenever components change",
	Long: `Write the snapshot, then watch the root for .vue changes and rewrite it
after each burst of changes. Unchanged files are served from an in-memory
cache. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchRoot     string
	watchOut      string
	watchConfig   string
	watchDebounce int
	watchCacheMax int
)

func init() {
	watchCmd.Flags().StringVar(&watchRoot, "root", "", "Directory to watch (default \".\")")
	watchCmd.Flags().StringVar(&watchOut, "out", "", "Snapshot file to write (default \"vue_chunks_ast.json\")")
	watchCmd.Flags().StringVar(&watchConfig, "config", "", "Config file (default \".vuechunk.yaml\" if present)")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", indexer.DefaultWatchOptions().DebounceMs, "Debounce delay in milliseconds")
	watchCmd.Flags().IntVar(&watchCacheMax, "cache-size", indexer.DefaultOutcomeCacheConfig().MaxEntries, "Maximum cached per-file outcomes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(watchConfig)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cfg, watchRoot, watchOut)
	if err != nil {
		return err
	}

	logger := newLogger(false)
	s := scanner.NewScanner(settings.Options, logger)
	defer s.Close()

	cache := indexer.NewOutcomeCache(indexer.OutcomeCacheConfig{MaxEntries: watchCacheMax}, logger)
	ix := indexer.NewIndexer(s, settings.Root, settings.Out, cache, logger)

	out := cmd.OutOrStdout()
	report, err := ix.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Extracted %d components → %s\n", len(report.Descriptors()), settings.Out)
	fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", settings.Root)

	err = ix.Watch(cmd.Context(), indexer.WatchOptions{DebounceMs: watchDebounce},
		func(changed []string, report *scanner.Report, err error) {
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Refresh failed: %v\n", err)
				return
			}
			fmt.Fprintf(out, "%d changed, extracted %d components → %s\n",
				len(changed), len(report.Descriptors()), settings.Out)
		})
	if err != nil {
		return err
	}

	stats := ix.Stats()
	logger.Info("watch stopped", "refreshes", stats.Refreshes, "cache_hit_rate", stats.Cache.HitRate())
	return nil
}
