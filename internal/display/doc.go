// Package display runs the throttled display pipeline.
//
// A run walks an ordered list of image paths on a background goroutine,
// waits a fixed delay before each one, and posts each frame to a Looper.
// The Looper executes the posted step on the UI goroutine, which is the
// only place a Renderer is ever called.
//
// Lifecycle of one run (a Handle):
//
//	Idle ──Start──▶ Running ──last frame──▶ Completed
//	                   │
//	                   ├──Cancel / CancelAll──▶ Cancelled
//	                   └──decode error (FailAbort)──▶ Aborted
//
// Cancellation abandons the pending delay immediately. Because the
// running-state check happens on the UI goroutine right before Render, a
// Cancel issued from the UI goroutine guarantees that no further frame of
// that run is rendered. A Cancel from any other goroutine may let at most
// one frame that was already being rendered finish.
//
// Every Handle lives in a Registry until it stops. Clearing the registry
// (screen teardown, or the cancel trigger) cancels every run at once.
package display
