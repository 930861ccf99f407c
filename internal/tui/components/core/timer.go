package core

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// TickMsg is sent periodically while a timer runs.
type TickMsg struct {
	Time time.Time
	ID   string
}

// Timer measures how long something has been running and ticks so the
// view can show it.
type Timer struct {
	id           string
	startTime    time.Time
	isRunning    bool
	tickInterval time.Duration
	elapsed      time.Duration
}

// NewTimer creates a new timer with the specified tick interval.
func NewTimer(id string, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{
		id:           id,
		tickInterval: interval,
	}
}

// Start begins the timer.
func (t *Timer) Start() tea.Cmd {
	t.startTime = time.Now()
	t.isRunning = true
	t.elapsed = 0
	return t.tick()
}

// Stop halts the timer and preserves elapsed time.
func (t *Timer) Stop() {
	if t.isRunning {
		t.elapsed = time.Since(t.startTime)
		t.isRunning = false
	}
}

// IsRunning returns whether the timer is currently running.
func (t *Timer) IsRunning() bool {
	return t.isRunning
}

// Elapsed returns the elapsed duration.
func (t *Timer) Elapsed() time.Duration {
	if t.isRunning {
		return time.Since(t.startTime)
	}
	return t.elapsed
}

// Update handles tick messages and continues the timer.
func (t *Timer) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(TickMsg); ok && tick.ID == t.id && t.isRunning {
		return t.tick()
	}
	return nil
}

// tick must not read timer state from the command goroutine.
func (t *Timer) tick() tea.Cmd {
	id := t.id
	return tea.Tick(t.tickInterval, func(tm time.Time) tea.Msg {
		return TickMsg{Time: tm, ID: id}
	})
}

// FormatMinutesSeconds formats duration as "01:23".
func FormatMinutesSeconds(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
