// services/hal/platform_host.go
//go:build !rp2040

package hal

import (
	"errors"
	"image/color"
	"os"
	"sync"

	"joydisplay-go/errcode"
	"joydisplay-go/types"
)

// Open returns inert host capabilities for cfg. Host builds exist for tests
// and for running the loop without hardware.
func Open(cfg types.Config) (*Platform, error) {
	h := NewHost(cfg)
	return h.Platform(), nil
}

// Host exposes the fakes behind a host Platform so tests can drive them.
type Host struct {
	ADC *FakeADC
	PWM *FakePWM
	IRQ *FakeIRQ
	FB  *Framebuffer
}

func NewHost(cfg types.Config) *Host {
	return &Host{
		ADC: &FakeADC{},
		PWM: &FakePWM{},
		IRQ: &FakeIRQ{},
		FB:  NewFramebuffer(cfg.Display.Width, cfg.Display.Height),
	}
}

func (h *Host) Platform() *Platform {
	return &Platform{
		ADC:     h.ADC,
		PWM:     h.PWM,
		IRQ:     h.IRQ,
		Display: NewDisplay(h.FB),
		Log:     os.Stderr,
	}
}

// ----------------------------- ADC (host) ------------------------------------

// FakeADC holds one settable 12-bit value per channel.
type FakeADC struct {
	mu  sync.Mutex
	val [4]uint16
	sel int
}

// Set stores a raw value for ch; values above 4095 are truncated to 12 bits.
func (a *FakeADC) Set(ch int, v uint16) {
	a.mu.Lock()
	a.val[ch] = v & types.RawMax
	a.mu.Unlock()
}

func (a *FakeADC) SelectChannel(ch int) error {
	if ch < 0 || ch >= len(a.val) {
		return errcode.UnknownChannel
	}
	a.mu.Lock()
	a.sel = ch
	a.mu.Unlock()
	return nil
}

func (a *FakeADC) Read() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.val[a.sel]
}

// ----------------------------- PWM (host) ------------------------------------

// FakePWM records the last duty written per channel.
type FakePWM struct {
	mu     sync.Mutex
	duty   map[Channel]uint16
	writes int
	// Fail, when set, is returned by SetDuty for Fail's channel.
	Fail   error
	FailCh Channel
}

func (p *FakePWM) SetDuty(ch Channel, value uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail != nil && ch == p.FailCh {
		return errcode.Wrap(errcode.PWMWrite, "set", p.Fail)
	}
	if p.duty == nil {
		p.duty = make(map[Channel]uint16)
	}
	p.duty[ch] = value
	p.writes++
	return nil
}

func (p *FakePWM) Duty(ch Channel) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty[ch]
}

func (p *FakePWM) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// ----------------------------- IRQ (host) ------------------------------------

// FakeIRQ stores handlers; Fire invokes one as an interrupt would.
type FakeIRQ struct {
	mu       sync.Mutex
	handlers map[int]EdgeHandler
}

func (f *FakeIRQ) OnFallingEdge(pin int, h EdgeHandler) error {
	if pin < 0 || pin > 28 {
		return errcode.UnknownPin
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handlers == nil {
		f.handlers = make(map[int]EdgeHandler)
	}
	f.handlers[pin] = h
	return nil
}

// Fire delivers a falling edge on pin at nowUs. It reports whether a
// handler was registered.
func (f *FakeIRQ) Fire(pin int, nowUs uint32) bool {
	f.mu.Lock()
	h := f.handlers[pin]
	f.mu.Unlock()
	if h == nil {
		return false
	}
	h(pin, nowUs)
	return true
}

// --------------------------- Display (host) ----------------------------------

// ErrFlush is a ready-made transport failure for tests.
var ErrFlush = errors.New("i2c nack")

// Framebuffer is an in-memory 1-bit panel implementing FrameBuffer.
type Framebuffer struct {
	mu      sync.Mutex
	w, h    int16
	pix     []bool
	shown   []bool
	flushes int
	// FailFlush, when set, is returned by Display.
	FailFlush error
}

func NewFramebuffer(w, h int16) *Framebuffer {
	n := int(w) * int(h)
	return &Framebuffer{w: w, h: h, pix: make([]bool, n), shown: make([]bool, n)}
}

func (f *Framebuffer) Size() (x, y int16) { return f.w, f.h }

// SetPixel ignores out-of-range coordinates, like the SSD1306 driver.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.mu.Lock()
	f.pix[int(y)*int(f.w)+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
	f.mu.Unlock()
}

func (f *Framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailFlush != nil {
		return f.FailFlush
	}
	copy(f.shown, f.pix)
	f.flushes++
	return nil
}

func (f *Framebuffer) ClearBuffer() {
	f.mu.Lock()
	clear(f.pix)
	f.mu.Unlock()
}

// Lit reports whether pixel (x, y) was on at the last successful flush.
func (f *Framebuffer) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shown[int(y)*int(f.w)+int(x)]
}

// LitCount counts lit pixels at the last successful flush.
func (f *Framebuffer) LitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, on := range f.shown {
		if on {
			n++
		}
	}
	return n
}

func (f *Framebuffer) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}
