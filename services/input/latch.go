// services/input/latch.go
package input

import (
	"sync/atomic"
	"time"
)

// Event is one debounced press handed to the main loop.
type Event struct {
	Button ButtonID
	At     uint32 // µs timestamp of the accepted edge
}

// Latch is a single-producer / single-consumer press flag with the time of
// the last accepted edge. Trigger runs in interrupt context; TryConsume runs
// in the main loop. All fields are atomics.
type Latch struct {
	id      ButtonID
	window  uint32 // µs
	pending atomic.Bool
	armed   atomic.Bool // an edge has been accepted at least once
	last    atomic.Uint32
	dropped atomic.Uint32
}

// NewLatch returns a latch that accepts at most one edge per window.
func NewLatch(id ButtonID, window time.Duration) *Latch {
	return &Latch{id: id, window: uint32(window.Microseconds())}
}

// Trigger records a falling edge seen at nowUs. Edges no more than one window
// after the last accepted edge are dropped. The comparison uses unsigned
// subtraction so it survives the 32-bit clock wrapping. It never blocks.
func (l *Latch) Trigger(nowUs uint32) bool {
	if l.armed.Load() && nowUs-l.last.Load() <= l.window {
		l.dropped.Add(1)
		return false
	}
	// Timestamp before the flag: a consumer that sees pending also sees At.
	l.last.Store(nowUs)
	l.armed.Store(true)
	l.pending.Store(true)
	return true
}

// TryConsume clears the latch and reports the pending press, if any.
func (l *Latch) TryConsume() (Event, bool) {
	if !l.pending.Swap(false) {
		return Event{}, false
	}
	return Event{Button: l.id, At: l.last.Load()}, true
}

// Pending reports whether a press is waiting, without consuming it.
func (l *Latch) Pending() bool { return l.pending.Load() }

// Dropped counts edges discarded inside the debounce window.
func (l *Latch) Dropped() uint32 { return l.dropped.Load() }
