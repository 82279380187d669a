// services/input/buttons.go
package input

import (
	"time"

	"joydisplay-go/services/hal"
)

// ButtonID names one of the two push-buttons.
type ButtonID uint8

const (
	ButtonJoystick ButtonID = iota // joystick click
	ButtonA
	numButtons
)

func (b ButtonID) String() string {
	switch b {
	case ButtonJoystick:
		return "joystick"
	case ButtonA:
		return "a"
	default:
		return "unknown"
	}
}

// Buttons routes pin interrupts to per-button latches.
type Buttons struct {
	latches [numButtons]*Latch
	pins    [numButtons]int
}

// NewButtons binds the joystick button and button A to their pins.
func NewButtons(joystickPin, aPin int, window time.Duration) *Buttons {
	b := &Buttons{pins: [numButtons]int{joystickPin, aPin}}
	for i := range b.latches {
		b.latches[i] = NewLatch(ButtonID(i), window)
	}
	return b
}

// Attach registers HandleEdge for both pins.
func (b *Buttons) Attach(irq hal.IRQ) error {
	for _, pin := range b.pins {
		if err := irq.OnFallingEdge(pin, b.HandleEdge); err != nil {
			return err
		}
	}
	return nil
}

// HandleEdge is the interrupt entry point. Unknown pins are ignored.
func (b *Buttons) HandleEdge(pin int, nowUs uint32) {
	for i, p := range b.pins {
		if p == pin {
			b.latches[i].Trigger(nowUs)
			return
		}
	}
}

// TryConsume clears and returns the pending press for id, if any.
func (b *Buttons) TryConsume(id ButtonID) (Event, bool) {
	if id >= numButtons {
		return Event{}, false
	}
	return b.latches[id].TryConsume()
}

// Latch exposes the latch for id.
func (b *Buttons) Latch(id ButtonID) *Latch { return b.latches[id] }

// Dropped sums debounce drops across both buttons.
func (b *Buttons) Dropped() uint32 {
	var n uint32
	for _, l := range b.latches {
		n += l.Dropped()
	}
	return n
}
