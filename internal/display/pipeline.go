package display

import (
	"context"
	"errors"
	"time"

	"github.com/billie-coop/slides/internal/tui/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultDelay is the pause before each frame.
const DefaultDelay = time.Second

// ErrRunActive is returned by Start under RunReject while a run is active.
var ErrRunActive = errors.New("a display run is already active")

// Renderer turns a frame into view content. It is only ever called on the
// Looper's goroutine. A returned error marks the frame as skipped.
type Renderer interface {
	Render(frame Frame) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(frame Frame) error

// Render calls f(frame).
func (f RendererFunc) Render(frame Frame) error { return f(frame) }

// Options configure a Pipeline.
type Options struct {
	Delay         time.Duration
	FailurePolicy FailurePolicy
	RunPolicy     RunPolicy
	Logger        zerolog.Logger
	Broker        *events.Broker // optional
}

// Pipeline starts and cancels display runs.
type Pipeline struct {
	looper   Looper
	renderer Renderer
	registry *Registry
	opts     Options
	logger   zerolog.Logger
}

// New creates a pipeline. A negative delay is treated as zero.
func New(looper Looper, renderer Renderer, registry *Registry, opts Options) *Pipeline {
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Pipeline{
		looper:   looper,
		renderer: renderer,
		registry: registry,
		opts:     opts,
		logger:   opts.Logger.With().Str("component", "display").Logger(),
	}
}

// Registry returns the registry tracking this pipeline's runs.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// Start launches a run over a copy of paths. Cancelling ctx cancels the
// run. What happens to already active runs depends on the RunPolicy.
func (p *Pipeline) Start(ctx context.Context, paths []string) (*Handle, error) {
	switch p.opts.RunPolicy {
	case RunReject:
		if len(p.registry.Active()) > 0 {
			return nil, ErrRunActive
		}
	case RunReplace:
		if n := p.registry.CancelAll(); n > 0 {
			p.logger.Debug().Int("cancelled", n).Msg("replaced active runs")
		}
	}

	list := make([]string, len(paths))
	copy(list, paths)

	runCtx, cancel := context.WithCancel(ctx)
	h := newHandle(uuid.NewString(), len(list), cancel, p.stopped)
	h.start()
	p.registry.Add(h)

	p.logger.Info().Str("run", h.ID()).Int("total", h.Total()).Dur("delay", p.opts.Delay).Msg("display run started")
	p.publish(events.DisplayStartedEvent, events.DisplayPayload{RunID: h.ID(), Total: h.Total()})

	go p.produce(runCtx, h, list)
	return h, nil
}

// Cancel stops one run. Nil, finished or already cancelled handles are
// ignored.
func (p *Pipeline) Cancel(h *Handle) {
	h.Cancel()
}

// CancelAll stops every registered run and returns how many were stopped.
func (p *Pipeline) CancelAll() int {
	return p.registry.CancelAll()
}

// produce runs on its own goroutine. It only waits and posts; all state
// that the view can observe changes on the looper.
func (p *Pipeline) produce(ctx context.Context, h *Handle, paths []string) {
	defer close(h.done)

	for i, path := range paths {
		if !sleep(ctx, p.opts.Delay) {
			p.logger.Debug().Str("run", h.ID()).Int("index", i).Msg("delay interrupted")
			h.stop(Cancelled)
			return
		}
		frame := Frame{RunID: h.ID(), Index: i, Total: len(paths), Path: path}
		p.looper.Post(func() { p.deliver(h, frame) })
	}

	p.looper.Post(func() { h.stop(Completed) })
}

// deliver runs on the looper.
func (p *Pipeline) deliver(h *Handle, frame Frame) {
	if h.State() != Running {
		return
	}

	if err := p.renderer.Render(frame); err != nil {
		h.skipped.Add(1)
		p.logger.Warn().Err(err).Str("run", h.ID()).Int("index", frame.Index).Str("path", frame.Path).Msg("frame not rendered")
		p.publish(events.DisplaySkippedEvent, events.DisplayPayload{
			RunID: h.ID(), Index: frame.Index, Total: frame.Total, Path: frame.Path, Err: err,
		})
		if p.opts.FailurePolicy == FailAbort {
			h.stop(Aborted)
		}
		return
	}

	h.rendered.Add(1)
	p.publish(events.DisplayFrameEvent, events.DisplayPayload{
		RunID: h.ID(), Index: frame.Index, Total: frame.Total, Path: frame.Path,
	})
}

// stopped is called exactly once per handle, by whichever goroutine won
// the transition out of Running.
func (p *Pipeline) stopped(h *Handle, to State) {
	p.registry.Remove(h)

	ev := p.logger.Info()
	if to == Aborted {
		ev = p.logger.Warn()
	}
	ev.Str("run", h.ID()).
		Str("state", to.String()).
		Int("rendered", h.Rendered()).
		Int("skipped", h.Skipped()).
		Msg("display run stopped")

	var typ events.EventType
	switch to {
	case Completed:
		typ = events.DisplayCompletedEvent
	case Cancelled:
		typ = events.DisplayCancelledEvent
	case Aborted:
		typ = events.DisplayAbortedEvent
	default:
		return
	}
	p.publish(typ, events.DisplayPayload{
		RunID: h.ID(), Total: h.Total(), Rendered: h.Rendered(), Skipped: h.Skipped(),
	})
}

func (p *Pipeline) publish(typ events.EventType, payload events.DisplayPayload) {
	if p.opts.Broker == nil {
		return
	}
	p.opts.Broker.Publish(events.Event{Type: typ, Payload: payload})
}

// sleep waits d or until ctx is done, and reports whether the run may go on.
func sleep(ctx context.Context, d time.Duration) bool {
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}
	return ctx.Err() == nil
}
