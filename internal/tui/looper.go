package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Looper posts pipeline work onto the Bubble Tea update loop. It
// implements display.Looper.
type Looper struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []func()
}

// NewLooper creates a looper that queues posts until Bind is called.
func NewLooper() *Looper {
	return &Looper{}
}

// Bind routes posts to send, usually (*tea.Program).Send. Posts queued
// before Bind are delivered first.
func (l *Looper) Bind(send func(tea.Msg)) {
	l.mu.Lock()
	l.send = send
	pending := l.pending
	l.pending = nil
	if len(pending) == 0 {
		l.mu.Unlock()
		return
	}

	// Program.Send blocks until the program runs, so flush without
	// blocking the caller. The lock is held until the backlog is out.
	go func() {
		defer l.mu.Unlock()
		for _, fn := range pending {
			send(uiTaskMsg{fn: fn})
		}
	}()
}

// Post implements display.Looper. Sends are serialised so posts from
// different goroutines keep the order they were made in.
func (l *Looper) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.send == nil {
		l.pending = append(l.pending, fn)
		return
	}
	l.send(uiTaskMsg{fn: fn})
}
