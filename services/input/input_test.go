package input

import (
	"sync"
	"testing"
	"time"

	"joydisplay-go/services/hal"
)

const window = 250 * time.Millisecond

func TestLatchDebounce(t *testing.T) {
	cases := []struct {
		name  string
		edges []uint32 // µs
		want  int      // events consumed after all edges, consuming after each
	}{
		{"single", []uint32{1_000_000}, 1},
		{"bounce within window", []uint32{1_000_000, 1_000_500, 1_100_000}, 1},
		{"exactly one window apart is dropped", []uint32{1_000_000, 1_250_000}, 1},
		{"spaced beyond window", []uint32{1_000_000, 1_250_001}, 2},
		{"first edge right after boot", []uint32{10}, 1},
		{"clock wrap", []uint32{0xFFFF_FF00, 0x0004_0000}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLatch(ButtonA, window)
			got := 0
			for _, ts := range c.edges {
				l.Trigger(ts)
				if _, ok := l.TryConsume(); ok {
					got++
				}
			}
			if got != c.want {
				t.Fatalf("got %d events, want %d", got, c.want)
			}
		})
	}
}

func TestLatchHoldsOneOutstandingEvent(t *testing.T) {
	l := NewLatch(ButtonJoystick, window)

	if !l.Trigger(1_000_000) {
		t.Fatal("first edge rejected")
	}
	// Accepted edge while the first is still unconsumed collapses into it.
	if !l.Trigger(2_000_000) {
		t.Fatal("edge after window rejected")
	}
	ev, ok := l.TryConsume()
	if !ok || ev.Button != ButtonJoystick || ev.At != 2_000_000 {
		t.Fatalf("unexpected event %+v ok=%v", ev, ok)
	}
	if _, ok := l.TryConsume(); ok {
		t.Fatal("latch must clear on consume")
	}
	if l.Trigger(2_100_000) {
		t.Fatal("bounce accepted")
	}
	if l.Dropped() != 1 {
		t.Fatalf("dropped = %d", l.Dropped())
	}
}

func TestButtonsRouteByPin(t *testing.T) {
	irq := &hal.FakeIRQ{}
	b := NewButtons(22, 5, window)
	if err := b.Attach(irq); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	irq.Fire(5, 1_000_000)
	irq.Fire(13, 1_000_000) // not a button

	if _, ok := b.TryConsume(ButtonJoystick); ok {
		t.Fatal("joystick latch set by button A edge")
	}
	ev, ok := b.TryConsume(ButtonA)
	if !ok || ev.Button != ButtonA {
		t.Fatalf("button A event missing: %+v", ev)
	}

	irq.Fire(22, 1_000_100)
	irq.Fire(22, 1_000_200) // bounce
	if _, ok := b.TryConsume(ButtonJoystick); !ok {
		t.Fatal("joystick event missing")
	}
	if b.Dropped() != 1 {
		t.Fatalf("dropped = %d", b.Dropped())
	}
	if _, ok := b.TryConsume(ButtonID(9)); ok {
		t.Fatal("unknown button returned an event")
	}
}

func TestAttachReportsBadPin(t *testing.T) {
	b := NewButtons(99, 5, window)
	if err := b.Attach(&hal.FakeIRQ{}); err == nil {
		t.Fatal("expected error for invalid pin")
	}
}

// Edges from an "interrupt" goroutine race the consuming loop; every accepted
// edge must be observed at most once and none of them twice.
func TestLatchConcurrentProducerConsumer(t *testing.T) {
	l := NewLatch(ButtonA, time.Millisecond)

	const edges = 2000
	var accepted int
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= edges; i++ {
			if l.Trigger(uint32(i) * 2000) { // 2 ms apart: all accepted
				accepted++
			}
		}
	}()

	consumed := 0
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	for {
		if _, ok := l.TryConsume(); ok {
			consumed++
		}
		select {
		case <-done:
			if _, ok := l.TryConsume(); ok {
				consumed++
			}
			if accepted != edges {
				t.Fatalf("accepted %d of %d", accepted, edges)
			}
			if consumed < 1 || consumed > accepted {
				t.Fatalf("consumed %d of %d accepted", consumed, accepted)
			}
			return
		default:
		}
	}
}
