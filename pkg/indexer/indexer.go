package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mx-llm/vuechunk/pkg/scanner"
)

// RefreshFunc is called after every refresh triggered by Watch.
type RefreshFunc func(changed []string, report *scanner.Report, err error)

// Indexer keeps the snapshot at Output in sync with the components under Root.
//
// **Usage:**
//
//	ix := NewIndexer(s, "./src", "vue_chunks_ast.json", NewOutcomeCache(DefaultOutcomeCacheConfig(), logger), logger)
//	if _, err := ix.Refresh(ctx); err != nil {
//	    return err
//	}
//	err := ix.Watch(ctx, DefaultWatchOptions(), nil) // blocks until ctx is done
type Indexer struct {
	scanner *scanner.Scanner
	cache   *OutcomeCache
	root    string
	output  string
	logger  *slog.Logger

	// refreshMu serializes runs; the scanner processes one file at a time.
	refreshMu sync.Mutex
	refreshes atomic.Int64
}

// NewIndexer creates an indexer. A non-nil cache is installed on the scanner.
func NewIndexer(s *scanner.Scanner, root, output string, cache *OutcomeCache, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	if cache != nil {
		s.SetCache(cache)
	}
	return &Indexer{
		scanner: s,
		cache:   cache,
		root:    root,
		output:  output,
		logger:  logger,
	}
}

// Refresh runs a full extraction and rewrites the snapshot.
//
// The report is returned even when writing the snapshot fails; the error
// then wraps scanner.ErrOutputWrite.
func (ix *Indexer) Refresh(ctx context.Context) (*scanner.Report, error) {
	ix.refreshMu.Lock()
	defer ix.refreshMu.Unlock()

	report, err := ix.scanner.Run(ctx, ix.root, nil)
	if err != nil {
		return nil, err
	}
	ix.refreshes.Add(1)

	descriptors := report.Descriptors()
	if err := scanner.WriteJSON(ix.output, descriptors); err != nil {
		return report, err
	}

	ix.logger.Info("snapshot written", "components", len(descriptors), "path", ix.output)
	return report, nil
}

// Watch refreshes the snapshot whenever component files change, until ctx
// is done. It does not perform an initial refresh.
//
// Changes that arrive while a refresh is running are coalesced into a
// single follow-up refresh. Refresh errors are logged and passed to
// onRefresh; they do not stop watching.
func (ix *Indexer) Watch(ctx context.Context, options WatchOptions, onRefresh RefreshFunc) error {
	changes := make(chan []string, 1)
	var pendingMu sync.Mutex
	var pending []string

	notify := func(paths []string) {
		pendingMu.Lock()
		pending = append(pending, paths...)
		pendingMu.Unlock()

		select {
		case changes <- nil:
		default:
		}
	}

	fw, err := NewFileWatcher(ix.scanner.Config(), options, notify, ix.logger)
	if err != nil {
		return err
	}
	if err := fw.Start(ix.root); err != nil {
		fw.Stop()
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fw.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-changes:
			pendingMu.Lock()
			changed := pending
			pending = nil
			pendingMu.Unlock()

			ix.logger.Info("changes detected, refreshing", "files", len(changed))

			report, err := ix.Refresh(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if err != nil {
				ix.logger.Error("refresh failed", "error", err)
			}
			if onRefresh != nil {
				onRefresh(changed, report, err)
			}
		}
	}
}

// Stats returns indexer statistics.
func (ix *Indexer) Stats() IndexerStats {
	stats := IndexerStats{Refreshes: ix.refreshes.Load()}
	if ix.cache != nil {
		stats.Cache = ix.cache.Stats()
	}
	return stats
}
