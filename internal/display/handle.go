package display

import (
	"context"
	"sync/atomic"
)

// State is the lifecycle state of one run.
type State int32

const (
	Idle State = iota
	Running
	Completed
	Cancelled
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Aborted
}

// Frame is one produced element of a run.
type Frame struct {
	RunID string
	Index int
	Total int
	Path  string
}

// Handle is one run of the pipeline. It is safe to use from any goroutine.
type Handle struct {
	id    string
	total int

	state    atomic.Int32
	rendered atomic.Int32
	skipped  atomic.Int32

	cancel context.CancelFunc
	done   chan struct{}
	onStop func(*Handle, State)
}

func newHandle(id string, total int, cancel context.CancelFunc, onStop func(*Handle, State)) *Handle {
	return &Handle{
		id:     id,
		total:  total,
		cancel: cancel,
		done:   make(chan struct{}),
		onStop: onStop,
	}
}

// ID returns the run identifier.
func (h *Handle) ID() string { return h.id }

// Total returns how many paths the run was started with.
func (h *Handle) Total() int { return h.total }

// State returns the current lifecycle state.
func (h *Handle) State() State { return State(h.state.Load()) }

// Rendered returns how many frames reached the view.
func (h *Handle) Rendered() int { return int(h.rendered.Load()) }

// Skipped returns how many frames failed to decode.
func (h *Handle) Skipped() int { return int(h.skipped.Load()) }

// Done is closed once the background producer has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel stops a running run. It is a no-op in any other state and
// reports whether this call performed the transition.
func (h *Handle) Cancel() bool {
	if h == nil {
		return false
	}
	return h.stop(Cancelled)
}

func (h *Handle) start() {
	h.state.Store(int32(Running))
}

func (h *Handle) stop(to State) bool {
	if !h.state.CompareAndSwap(int32(Running), int32(to)) {
		return false
	}
	h.cancel()
	if h.onStop != nil {
		h.onStop(h, to)
	}
	return true
}
