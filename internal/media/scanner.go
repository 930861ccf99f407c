package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// imageExtensions lists the file types the scanner indexes.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

// IsImagePath reports whether path has an indexed image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Store is what the scanner writes to.
type Store interface {
	Index
	Insert(ctx context.Context, entries []Entry) (int, error)
	Remove(ctx context.Context, paths []string) (int, error)
}

// ScanResult summarises one Scan call.
type ScanResult struct {
	Added   int
	Seen    int
	Skipped []string // roots that could not be walked
	Elapsed time.Duration
}

// Scanner walks media roots and records image files in a Store.
type Scanner struct {
	store       Store
	logger      zerolog.Logger
	concurrency int
}

// NewScanner creates a scanner that walks up to four roots at once.
func NewScanner(store Store, logger zerolog.Logger) *Scanner {
	return &Scanner{
		store:       store,
		logger:      logger.With().Str("component", "scanner").Logger(),
		concurrency: 4,
	}
}

// Scan walks each root and inserts newly found images. Entries keep root
// order, and lexical order within a root, so index order is stable.
func (s *Scanner) Scan(ctx context.Context, roots ...string) (ScanResult, error) {
	start := time.Now()
	found := make([][]Entry, len(roots))
	skipped := make([]bool, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, root := range roots {
		g.Go(func() error {
			entries, err := walkRoot(gctx, root)
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				s.logger.Warn().Err(err).Str("root", root).Msg("skipping media root")
				skipped[i] = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("walk %s: %w", root, err)
			}
			found[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	var all []Entry
	res := ScanResult{}
	for i, entries := range found {
		all = append(all, entries...)
		if skipped[i] {
			res.Skipped = append(res.Skipped, roots[i])
		}
	}
	res.Seen = len(all)

	added, err := s.store.Insert(ctx, all)
	if err != nil {
		return ScanResult{}, err
	}
	res.Added = added
	res.Elapsed = time.Since(start)

	s.logger.Info().
		Int("seen", res.Seen).
		Int("added", res.Added).
		Strs("skipped", res.Skipped).
		Dur("elapsed", res.Elapsed).
		Msg("scan finished")
	return res, nil
}

// Prune removes indexed paths whose files no longer exist.
func (s *Scanner) Prune(ctx context.Context) (int, error) {
	paths, err := s.store.Paths(ctx)
	if err != nil {
		return 0, err
	}

	var gone []string
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			gone = append(gone, p)
		}
	}

	removed, err := s.store.Remove(ctx, gone)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("pruned missing images")
	}
	return removed, nil
}

// walkRoot lists the images under root. A symlinked root is resolved
// before walking, but entries keep the root as given.
func walkRoot(ctx context.Context, root string) ([]Entry, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) && path != resolved {
				return fs.SkipDir
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != resolved && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsImagePath(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Path:      filepath.Join(abs, rel),
			Size:      info.Size(),
			DateAdded: info.ModTime(),
		})
		return nil
	})
	return entries, err
}
