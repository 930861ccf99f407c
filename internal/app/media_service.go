package app

import (
	"context"
	"fmt"

	"github.com/billie-coop/slides/internal/media"
	"github.com/billie-coop/slides/internal/tui/events"
	"github.com/rs/zerolog"
)

// MediaService lists and rescans the image index and reports the results
// on the event broker.
type MediaService struct {
	lister      *media.Lister
	scanner     *media.Scanner
	roots       []string
	eventBroker *events.Broker
	logger      zerolog.Logger
}

// NewMediaService creates a media service scanning roots.
func NewMediaService(lister *media.Lister, scanner *media.Scanner, roots []string, eventBroker *events.Broker, logger zerolog.Logger) *MediaService {
	return &MediaService{
		lister:      lister,
		scanner:     scanner,
		roots:       append([]string(nil), roots...),
		eventBroker: eventBroker,
		logger:      logger.With().Str("component", "media").Logger(),
	}
}

// Roots returns the configured media roots.
func (s *MediaService) Roots() []string {
	return append([]string(nil), s.roots...)
}

// List returns every indexed image path in index order. Failures are
// logged and yield an empty list.
func (s *MediaService) List(ctx context.Context) []string {
	paths := s.lister.ListImagePaths(ctx)
	s.eventBroker.Publish(events.Event{
		Type:    events.IndexListedEvent,
		Payload: events.IndexListedPayload{Count: len(paths)},
	})
	return paths
}

// Rescan walks the media roots, adds new images and drops rows whose file
// is gone.
func (s *MediaService) Rescan(ctx context.Context) (events.IndexScannedPayload, error) {
	res, err := s.scanner.Scan(ctx, s.roots...)
	if err != nil {
		return events.IndexScannedPayload{}, fmt.Errorf("scan failed: %w", err)
	}
	for _, root := range res.Skipped {
		s.logger.Warn().Str("root", root).Msg("media root skipped")
	}

	removed, err := s.scanner.Prune(ctx)
	if err != nil {
		return events.IndexScannedPayload{}, fmt.Errorf("prune failed: %w", err)
	}

	payload := events.IndexScannedPayload{
		Added:   res.Added,
		Removed: removed,
		Elapsed: res.Elapsed,
	}
	s.eventBroker.Publish(events.Event{Type: events.IndexScannedEvent, Payload: payload})
	return payload, nil
}
