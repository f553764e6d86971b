package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrRootUnavailable marks a root that is missing, unreadable or not a
// directory. Scanner.Run treats it as an empty discovery.
var ErrRootUnavailable = errors.New("root directory unavailable")

// DiscoverFiles walks rootDir applying include/exclude globs from cfg.
// Returns a sorted slice of absolute file paths for deterministic output.
//
// Patterns are matched against slash-separated paths relative to rootDir.
// Unreadable subdirectories are skipped; a missing or unreadable root
// returns an error wrapping ErrRootUnavailable.
func DiscoverFiles(rootDir string, cfg ScanConfig) ([]string, error) {
	if err := ValidatePatterns(cfg); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootUnavailable, absRoot)
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return fmt.Errorf("%w: %w", ErrRootUnavailable, err)
			}
			return nil // Continue walking on errors.
		}
		if path == absRoot {
			return nil
		}

		relPath := RelativePath(absRoot, path)

		if Excluded(cfg, relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !Included(cfg, relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	sort.Strings(files)
	return files, nil
}

// ValidatePatterns checks every include and exclude glob.
func ValidatePatterns(cfg ScanConfig) error {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	return nil
}

// Excluded reports whether a root-relative slash path matches an exclude pattern.
func Excluded(cfg ScanConfig, relPath string) bool {
	for _, pattern := range cfg.Exclude {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

// Included reports whether a root-relative slash path matches an include
// pattern. An empty include list matches everything.
func Included(cfg ScanConfig, relPath string) bool {
	if len(cfg.Include) == 0 {
		return true
	}
	for _, pattern := range cfg.Include {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

// RelativePath returns path relative to absRoot with forward slashes.
// Paths outside the root are returned unchanged.
func RelativePath(absRoot, path string) string {
	relPath, err := filepath.Rel(absRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}
