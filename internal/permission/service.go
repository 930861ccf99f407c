package permission

import (
	"context"
	"sync"

	"github.com/billie-coop/slides/internal/csync"
	"github.com/billie-coop/slides/internal/tui/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type pendingRequest struct {
	capability Capability
	respCh     chan bool
}

// BrokerService asks for permission over the event broker. The UI answers
// by calling Grant or Deny with the request ID it received.
type BrokerService struct {
	eventBroker *events.Broker
	store       Store
	logger      zerolog.Logger

	granted map[Capability]bool
	mu      sync.RWMutex

	pending *csync.Map[string, pendingRequest]
}

// NewBrokerService creates a permission service. Capabilities in
// preGranted start out granted; store may be nil.
func NewBrokerService(eventBroker *events.Broker, store Store, logger zerolog.Logger, preGranted ...Capability) *BrokerService {
	s := &BrokerService{
		eventBroker: eventBroker,
		store:       store,
		logger:      logger.With().Str("component", "permission").Logger(),
		granted:     make(map[Capability]bool),
		pending:     csync.NewMap[string, pendingRequest](),
	}
	for _, c := range preGranted {
		s.granted[c] = true
	}
	return s
}

// Granted reports whether c is currently granted.
func (s *BrokerService) Granted(c Capability) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.granted[c]
}

// Request asks for c and waits for the answer.
func (s *BrokerService) Request(ctx context.Context, c Capability) (bool, error) {
	if s.Granted(c) {
		return true, nil
	}

	requestID := uuid.NewString()
	respCh := make(chan bool, 1)
	s.pending.Set(requestID, pendingRequest{capability: c, respCh: respCh})

	s.logger.Debug().Str("request", requestID).Str("capability", string(c)).Msg("asking for permission")
	s.eventBroker.Publish(events.Event{
		Type: events.PermissionRequestEvent,
		Payload: events.PermissionRequestPayload{
			ID:         requestID,
			Capability: string(c),
		},
	})

	select {
	case granted := <-respCh:
		return granted, nil
	case <-ctx.Done():
		s.pending.Delete(requestID)
		return false, ctx.Err()
	}
}

// RequestAsync asks for c on a goroutine.
func (s *BrokerService) RequestAsync(ctx context.Context, c Capability) <-chan bool {
	ch := make(chan bool, 1)
	go func() {
		granted, err := s.Request(ctx, c)
		if err != nil {
			s.logger.Debug().Err(err).Str("capability", string(c)).Msg("permission request abandoned")
		}
		ch <- granted
		close(ch)
	}()
	return ch
}

// Grant answers a pending request with yes. Unknown IDs are ignored.
func (s *BrokerService) Grant(requestID string, remember bool) {
	req, ok := s.pending.Take(requestID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.granted[req.capability] = true
	s.mu.Unlock()

	if remember && s.store != nil {
		if err := s.store.Grant(string(req.capability)); err != nil {
			s.logger.Error().Err(err).Str("capability", string(req.capability)).Msg("failed to remember grant")
		}
	}

	s.logger.Info().Str("capability", string(req.capability)).Bool("remember", remember).Msg("permission granted")
	s.respond(requestID, req, true)
}

// Deny answers a pending request with no. Unknown IDs are ignored.
func (s *BrokerService) Deny(requestID string) {
	req, ok := s.pending.Take(requestID)
	if !ok {
		return
	}

	s.logger.Info().Str("capability", string(req.capability)).Msg("permission denied")
	s.respond(requestID, req, false)
}

// Revoke withdraws a grant for the rest of the session.
func (s *BrokerService) Revoke(c Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.granted, c)
}

func (s *BrokerService) respond(requestID string, req pendingRequest, granted bool) {
	req.respCh <- granted
	s.eventBroker.Publish(events.Event{
		Type: events.PermissionResponseEvent,
		Payload: events.PermissionResponsePayload{
			ID:         requestID,
			Capability: string(req.capability),
			Granted:    granted,
		},
	})
}
