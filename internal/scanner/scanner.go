// Package scanner walks a tree, filters text files and reports every line
// that contains one of the requested keywords.
package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/keyscan/internal/apperr"
	"github.com/starford/keyscan/internal/models"
	"github.com/starford/keyscan/internal/storage"
)

// Sink receives scan events in traversal order.
type Sink interface {
	Match(m models.Match) error
	FileError(e models.FileError) error
}

// Scanner runs keyword scans over a storage.Provider. It is single-threaded:
// one file is open at a time.
type Scanner struct {
	store  storage.Provider
	logger *slog.Logger
}

// New creates a Scanner. A nil logger falls back to slog.Default().
func New(store storage.Provider, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{store: store, logger: logger}
}

// Scan walks req.Root (relative to the provider root) and reports matches
// and recoverable file failures to sink. Decode and permission failures skip
// the file; every other error aborts the scan and is returned.
func (s *Scanner) Scan(ctx context.Context, req models.ScanRequest, sink Sink) (models.Summary, error) {
	var sum models.Summary

	filter, err := NewFilter(req.Exclude)
	if err != nil {
		return sum, err
	}

	s.logger.Info("scan: started",
		slog.String("root", s.store.Root()),
		slog.String("dir", req.Root),
		slog.Int("keywords", len(req.Keywords)))

	err = s.store.Walk(req.Root, func(path string, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			sum.FilesSkipped++
			s.logger.Warn("scan: directory skipped", slog.String("path", path), slog.String("error", walkErr.Error()))
			return sink.FileError(models.FileError{Path: path, Err: walkErr})
		}

		abs, err := s.store.Abs(path)
		if err != nil {
			return err
		}
		if !filter.Eligible(path, abs) {
			return nil
		}

		n, err := s.scanFile(path, req.Keywords, sink)
		if err != nil {
			if !apperr.Recoverable(err) {
				return fmt.Errorf("scanner: %s: %w", path, err)
			}
			sum.FilesSkipped++
			s.logger.Warn("scan: file skipped", slog.String("path", path), slog.String("error", err.Error()))
			return sink.FileError(models.FileError{Path: path, Err: err})
		}
		sum.FilesScanned++
		sum.Matches += n
		s.logger.Debug("scan: file done", slog.String("path", path), slog.Int("matches", n))
		return nil
	})
	if err != nil {
		return sum, err
	}

	s.logger.Info("scan: finished",
		slog.Int("files_scanned", sum.FilesScanned),
		slog.Int("files_skipped", sum.FilesSkipped),
		slog.Int("matches", sum.Matches))
	return sum, nil
}

// EligibleFiles returns every file under dir that Scan would open.
func (s *Scanner) EligibleFiles(ctx context.Context, dir, exclude string) ([]string, error) {
	filter, err := NewFilter(exclude)
	if err != nil {
		return nil, err
	}
	var out []string
	err = s.store.Walk(dir, func(path string, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return nil
		}
		abs, err := s.store.Abs(path)
		if err != nil {
			return err
		}
		if filter.Eligible(path, abs) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
