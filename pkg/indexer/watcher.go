package indexer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mx-llm/vuechunk/pkg/scanner"
)

// ChangeFunc receives the root-relative paths that changed during one
// debounce window, sorted.
type ChangeFunc func(paths []string)

// FileWatcher watches a component tree and reports changes in batches.
//
// **Features:**
//   - Debouncing - Bursts of events (editor saves, git checkouts) produce one callback
//   - Recursive - Directories created after Start are watched too
//   - Filtered - Excluded directories are never watched; only included files count
//
// **Usage:**
//
//	watcher, err := NewFileWatcher(scanner.DefaultScanConfig(), DefaultWatchOptions(), onChange, logger)
//	if err != nil {
//	    return err
//	}
//	if err := watcher.Start("/path/to/app"); err != nil {
//	    return err
//	}
//	defer watcher.Stop()
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	cfg      scanner.ScanConfig
	onChange ChangeFunc
	logger   *slog.Logger
	options  WatchOptions
	root     string

	// Debouncing
	debounceTimer *time.Timer
	pending       map[string]struct{}
	debounceMu    sync.Mutex

	// Lifecycle
	watched  map[string]bool
	stopChan chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(cfg scanner.ScanConfig, options WatchOptions, onChange ChangeFunc, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := scanner.ValidatePatterns(cfg); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.DebounceMs <= 0 {
		options.DebounceMs = DefaultWatchOptions().DebounceMs
	}

	return &FileWatcher{
		watcher:  watcher,
		cfg:      cfg,
		onChange: onChange,
		logger:   logger,
		options:  options,
		pending:  make(map[string]struct{}),
		watched:  make(map[string]bool),
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and every non-excluded subdirectory.
//
// **Thread Safety:** Safe to call once. Later calls return an error.
//
// **Performance:** Runs in background goroutine.
func (fw *FileWatcher) Start(rootPath string) error {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}

	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	if fw.started {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already started")
	}
	fw.started = true
	fw.root = absRoot
	fw.mu.Unlock()

	if err := fw.watcher.Add(absRoot); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absRoot, err)
	}
	fw.markWatched(absRoot)

	if err := fw.addTree(absRoot); err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	fw.logger.Info("File watcher started", "root", absRoot, "dirs", fw.GetStats().WatchedDirs)

	go fw.eventLoop()

	return nil
}

// Stop stops the file watcher. Pending changes are dropped.
//
// **Thread Safety:** Safe to call multiple times (idempotent).
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.stopped {
		return nil
	}

	fw.stopped = true
	close(fw.stopChan)

	fw.debounceMu.Lock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
		fw.debounceTimer = nil
	}
	fw.pending = make(map[string]struct{})
	fw.debounceMu.Unlock()

	err := fw.watcher.Close()
	fw.logger.Info("File watcher stopped")
	return err
}

// addTree watches dir's subdirectories, skipping excluded ones.
func (fw *FileWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on error
		}
		if !d.IsDir() || fw.isWatched(path) {
			return nil
		}

		if scanner.Excluded(fw.cfg, fw.relPath(path)) {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("Failed to watch directory", "path", path, "error", err)
			return nil
		}
		fw.markWatched(path)
		return nil
	})
}

// eventLoop is the main event processing loop.
func (fw *FileWatcher) eventLoop() {
	for {
		select {
		case <-fw.stopChan:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("File watcher error", "error", err)
		}
	}
}

// handleEvent processes a file system event.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	relPath := fw.relPath(event.Name)
	if scanner.Excluded(fw.cfg, relPath) {
		return
	}

	fw.logger.Debug("File event", "op", event.Op.String(), "file", relPath)

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.addTree(event.Name); err != nil {
				fw.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			// Files moved in with the directory produce no events of their own.
			fw.schedule(relPath)
			return
		}

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if fw.forget(event.Name) {
			fw.schedule(relPath)
			return
		}
	}

	if scanner.Included(fw.cfg, relPath) {
		fw.schedule(relPath)
	}
}

// schedule records a change and restarts the debounce window.
//
// The callback fires once per quiet period of DebounceMs, with every path
// recorded since the previous callback.
func (fw *FileWatcher) schedule(relPath string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	fw.pending[relPath] = struct{}{}

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(
		time.Duration(fw.options.DebounceMs)*time.Millisecond,
		fw.flush,
	)
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	stopped := fw.stopped
	fw.mu.Unlock()
	if stopped {
		return
	}

	fw.debounceMu.Lock()
	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	fw.pending = make(map[string]struct{})
	fw.debounceTimer = nil
	fw.debounceMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	fw.logger.Debug("Changes detected", "files", len(paths))
	if fw.onChange != nil {
		fw.onChange(paths)
	}
}

func (fw *FileWatcher) relPath(path string) string {
	fw.mu.Lock()
	root := fw.root
	fw.mu.Unlock()
	return scanner.RelativePath(root, path)
}

func (fw *FileWatcher) markWatched(dir string) {
	fw.mu.Lock()
	fw.watched[dir] = true
	fw.mu.Unlock()
}

func (fw *FileWatcher) isWatched(dir string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.watched[dir]
}

// forget drops path and everything below it from the watched set and
// reports whether path was a watched directory.
func (fw *FileWatcher) forget(path string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.watched[path] {
		return false
	}
	prefix := path + string(filepath.Separator)
	for dir := range fw.watched {
		if dir == path || len(dir) > len(prefix) && dir[:len(prefix)] == prefix {
			delete(fw.watched, dir)
		}
	}
	return true
}

// GetStats returns file watcher statistics.
func (fw *FileWatcher) GetStats() FileWatcherStats {
	fw.debounceMu.Lock()
	pending := len(fw.pending)
	fw.debounceMu.Unlock()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	return FileWatcherStats{
		PendingChanges: pending,
		WatchedDirs:    len(fw.watched),
		IsRunning:      fw.started && !fw.stopped,
	}
}
