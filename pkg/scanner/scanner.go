package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/mx-llm/vuechunk/pkg/extractor"
	"github.com/mx-llm/vuechunk/pkg/parser"
	"github.com/mx-llm/vuechunk/pkg/parser/queries"
	"github.com/mx-llm/vuechunk/pkg/util"
)

// Options configures a Scanner.
type Options struct {
	Scan    ScanConfig
	Markers extractor.MarkerSet

	// ParserPoolSize caps parsers per grammar; 0 selects the CPU default.
	ParserPoolSize int
}

// DefaultOptions returns the default scan configuration and markers.
func DefaultOptions() Options {
	return Options{
		Scan:    DefaultScanConfig(),
		Markers: extractor.DefaultMarkers(),
	}
}

// Scanner runs discovery and extraction over a directory tree.
//
// A Scanner owns its parser and query managers and must be closed.
type Scanner struct {
	pm     *parser.ParserManager
	qm     *queries.QueryManager
	reader *util.SourceReader
	ext    *extractor.Extractor
	cfg    ScanConfig
	log    *slog.Logger
}

// NewScanner creates a scanner with all required dependencies.
func NewScanner(opts Options, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	pm := parser.NewParserManagerWithPoolSize(logger, opts.ParserPoolSize)
	qm := queries.NewQueryManager(pm, logger)
	reader := util.NewSourceReader(logger)
	ext := extractor.NewExtractor(pm, qm, reader, opts.Markers, logger)

	return &Scanner{pm: pm, qm: qm, reader: reader, ext: ext, cfg: opts.Scan, log: logger}
}

// Config returns the discovery configuration.
func (s *Scanner) Config() ScanConfig {
	return s.cfg
}

// ReaderStats returns source reader metrics accumulated across runs.
func (s *Scanner) ReaderStats() util.SourceReaderStats {
	return s.reader.Stats()
}

// SetCache installs an outcome cache for subsequent runs.
func (s *Scanner) SetCache(c extractor.Cache) {
	s.ext.SetCache(c)
}

// Close releases the parser and query managers.
func (s *Scanner) Close() error {
	s.qm.Close()
	return s.pm.Close()
}

// Run discovers files under rootDir and extracts them one at a time, in
// sorted path order.
//
// Per-file failures are logged as warnings and recorded in the report;
// they never fail the run. A missing or unreadable root is logged and
// yields an empty report. Run returns an error only for invalid patterns
// or when ctx is cancelled, which is checked between files.
func (s *Scanner) Run(ctx context.Context, rootDir string, progress ProgressCallback) (*Report, error) {
	totalStart := time.Now()

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	// Phase 1: File Discovery
	discoveryStart := time.Now()
	files, err := DiscoverFiles(absRoot, s.cfg)
	if errors.Is(err, ErrRootUnavailable) {
		s.log.Warn("root not scanned, treating as empty", "root", absRoot, "error", err)
		files, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	report := newReport(absRoot)
	report.Stats.FilesDiscovered = len(files)
	report.Stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	s.log.Info("discovery complete", "root", absRoot, "files", len(files), "ms", report.Stats.DiscoveryTimeMs)

	// Phase 2: Extraction
	extractionStart := time.Now()
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		relPath := RelativePath(absRoot, path)
		outcome := s.ext.ExtractFile(path, relPath)

		switch outcome.Status {
		case extractor.StatusExtracted:
			report.Stats.FilesExtracted++
		case extractor.StatusSkipped:
			report.Stats.FilesSkipped++
			s.log.Debug("skipped file", "file", relPath, "reason", outcome.Reason)
		case extractor.StatusFailed:
			report.Stats.FilesFailed++
			s.log.Warn("extraction failed", "file", relPath, "error", outcome.Err)
		}
		report.add(outcome)

		if progress != nil {
			progress(i+1, len(files), relPath)
		}
	}
	report.Stats.ExtractionTimeMs = time.Since(extractionStart).Milliseconds()
	report.Stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	s.log.Info("extraction complete",
		"extracted", report.Stats.FilesExtracted,
		"skipped", report.Stats.FilesSkipped,
		"failed", report.Stats.FilesFailed,
		"ms", report.Stats.ExtractionTimeMs)

	return report, nil
}
