package display

import "sync"

// Looper runs posted functions one at a time, in post order, on the
// goroutine that owns the view.
type Looper interface {
	Post(fn func())
}

// SerialLooper is a Looper backed by its own goroutine. It stands in for
// a UI loop in headless mode and in tests.
type SerialLooper struct {
	queue chan func()
	stop  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewSerialLooper starts the loop goroutine.
func NewSerialLooper() *SerialLooper {
	l := &SerialLooper{
		queue: make(chan func(), 64),
		stop:  make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

// Post enqueues fn. After Close it is dropped.
func (l *SerialLooper) Post(fn func()) {
	select {
	case <-l.stop:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.stop:
	}
}

// Sync runs fn on the loop goroutine and waits for it to finish.
func (l *SerialLooper) Sync(fn func()) {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
	case <-l.stop:
	}
}

// Close stops the loop after the function currently running returns.
func (l *SerialLooper) Close() {
	l.once.Do(func() { close(l.stop) })
	l.wg.Wait()
}

func (l *SerialLooper) run() {
	defer l.wg.Done()
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-l.stop:
			return
		}
	}
}
