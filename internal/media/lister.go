package media

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Lister produces the ordered list of image paths from an Index.
type Lister struct {
	index  Index
	logger zerolog.Logger
}

// NewLister creates a lister. A nil index behaves as an unavailable one.
func NewLister(index Index, logger zerolog.Logger) *Lister {
	return &Lister{
		index:  index,
		logger: logger.With().Str("component", "lister").Logger(),
	}
}

// List queries the index once and returns every path in index order.
// The result is never nil when err is nil.
func (l *Lister) List(ctx context.Context) ([]string, error) {
	if l.index == nil {
		return []string{}, ErrIndexUnavailable
	}

	paths, err := l.index.Paths(ctx)
	if err != nil {
		return []string{}, err
	}
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

// ListImagePaths is List with failures logged and degraded to an empty
// list.
func (l *Lister) ListImagePaths(ctx context.Context) []string {
	paths, err := l.List(ctx)
	if err != nil {
		ev := l.logger.Error()
		if errors.Is(err, ErrIndexUnavailable) {
			ev = l.logger.Warn()
		}
		ev.Err(err).Msg("listing images failed, continuing with an empty list")
		return []string{}
	}

	l.logger.Debug().Int("count", len(paths)).Msg("listed images")
	return paths
}
