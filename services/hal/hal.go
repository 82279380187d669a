// Package hal defines the fixed hardware capabilities the firmware core calls
// into, plus the rp2040 and host implementations selected by build tags.
package hal

import (
	"image/color"
	"io"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"

	"joydisplay-go/errcode"
)

// ---- Analogue input ----

// ADC is a multiplexed 12-bit converter: select a channel, then read it.
type ADC interface {
	SelectChannel(ch int) error
	Read() uint16 // 0..4095
}

// ---- PWM ----

// Channel identifies one PWM output registered with the platform.
type Channel uint8

const (
	LEDRed Channel = iota
	LEDGreen
	LEDBlue
)

// PWM writes logical duty values in [0, types.DutyMax].
type PWM interface {
	SetDuty(ch Channel, value uint16) error
}

// ---- Digital input + interrupt ----

// EdgeHandler runs in interrupt context. It must not block or allocate.
type EdgeHandler func(pin int, nowUs uint32)

// IRQ registers falling-edge handlers on pulled-up input pins.
type IRQ interface {
	OnFallingEdge(pin int, h EdgeHandler) error
}

// ---- Display ----

// Display is the draw-primitive surface of a monochrome panel. Drawing
// happens in a local buffer; Flush sends it to the device.
type Display interface {
	Clear()
	FillRect(x, y, w, h int16) error
	StrokeRect(x, y, w, h int16) error
	Flush() error
}

// FrameBuffer is a buffered pixel device such as *ssd1306.Device.
type FrameBuffer interface {
	drivers.Displayer
	ClearBuffer()
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type display struct {
	fb FrameBuffer
}

// NewDisplay draws onto fb with tinydraw.
func NewDisplay(fb FrameBuffer) Display { return &display{fb: fb} }

func (d *display) Clear() { d.fb.ClearBuffer() }

func (d *display) FillRect(x, y, w, h int16) error {
	return errcode.Wrap(errcode.DisplayWrite, "fill", tinydraw.FilledRectangle(d.fb, x, y, w, h, white))
}

func (d *display) StrokeRect(x, y, w, h int16) error {
	return errcode.Wrap(errcode.DisplayWrite, "stroke", tinydraw.Rectangle(d.fb, x, y, w, h, white))
}

func (d *display) Flush() error {
	return errcode.Wrap(errcode.DisplayWrite, "flush", d.fb.Display())
}

// ---- Platform ----

// Platform bundles the capabilities opened for one board.
type Platform struct {
	ADC     ADC
	PWM     PWM
	IRQ     IRQ
	Display Display
	// Log receives the debug log stream.
	Log io.Writer
}
