package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// SourceReaderStats tracks reader metrics.
type SourceReaderStats struct {
	// FilesRead is the number of successful reads (cumulative).
	FilesRead int64

	// BytesRead is the total number of bytes returned (cumulative).
	BytesRead int64

	// MmapFailures is the number of reads that fell back to os.ReadFile.
	MmapFailures int64
}

// SourceReader reads component source files through read-only memory maps.
// Safe for concurrent use.
//
// Each Read maps the file, copies the bytes out and unmaps immediately, so
// no mapping outlives the call and files can be rewritten by editors while
// a watch session is running. When mmap fails (special files, exotic file
// systems) the reader falls back to os.ReadFile.
type SourceReader struct {
	logger *slog.Logger

	mu    sync.Mutex
	stats SourceReaderStats
}

// NewSourceReader creates a reader. Logger can be nil.
func NewSourceReader(logger *slog.Logger) *SourceReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceReader{logger: logger}
}

// Read returns the full contents of filePath.
//
// The returned slice is owned by the caller. Empty files return an empty,
// non-nil slice.
func (r *SourceReader) Read(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%q is a directory", filePath)
	}

	// Can't mmap zero bytes
	if stat.Size() == 0 {
		r.record(0, false)
		return []byte{}, nil
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		r.logger.Debug("mmap failed, using fallback",
			"file", filePath,
			"size", stat.Size(),
			"error", err)

		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				filePath, err, readErr)
		}
		r.record(len(data), true)
		return data, nil
	}

	data := make([]byte, len(mapped))
	copy(data, mapped)

	if err := mapped.Unmap(); err != nil {
		r.logger.Warn("failed to unmap file", "file", filePath, "error", err)
	}

	r.record(len(data), false)
	return data, nil
}

// Stats returns a snapshot of the reader metrics.
func (r *SourceReader) Stats() SourceReaderStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *SourceReader) record(n int, mmapFailed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.FilesRead++
	r.stats.BytesRead += int64(n)
	if mmapFailed {
		r.stats.MmapFailures++
	}
}
