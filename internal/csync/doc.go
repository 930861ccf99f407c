// Package csync provides thread-safe concurrent data structures.
//
// Map is a generic map guarded by a read-write mutex. It backs the display
// handle registry and the pending permission requests, both of which are
// touched from the UI loop and from background goroutines.
//
// Example usage:
//
//	handles := csync.NewMap[string, *display.Handle]()
//	handles.Set(h.ID(), h)
//	for _, h := range handles.Drain() {
//		h.Cancel()
//	}
package csync
