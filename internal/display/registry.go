package display

import (
	"github.com/billie-coop/slides/internal/csync"
)

// Registry tracks the runs started for one screen.
type Registry struct {
	handles *csync.Map[string, *Handle]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: csync.NewMap[string, *Handle]()}
}

// Add registers a handle.
func (r *Registry) Add(h *Handle) {
	r.handles.Set(h.ID(), h)
}

// Remove forgets a handle without cancelling it.
func (r *Registry) Remove(h *Handle) {
	r.handles.Delete(h.ID())
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	return r.handles.Len()
}

// Active returns the registered handles that are still running.
func (r *Registry) Active() []*Handle {
	var out []*Handle
	for _, h := range r.handles.Values() {
		if h.State() == Running {
			out = append(out, h)
		}
	}
	return out
}

// CancelAll clears the registry and cancels every handle it held. It
// returns how many runs were actually stopped by this call.
func (r *Registry) CancelAll() int {
	n := 0
	for _, h := range r.handles.Drain() {
		if h.Cancel() {
			n++
		}
	}
	return n
}
