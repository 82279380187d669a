// services/hal/platform_rp2040.go
//go:build rp2040

package hal

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ssd1306"

	"joydisplay-go/errcode"
	"joydisplay-go/types"
	"joydisplay-go/x/timex"
)

// RP2040 ADC inputs 0..3 sit on GP26..GP29.
const adcFirstPin = 26

// Open brings up the board described by cfg: debug UART, ADC inputs, PWM
// slices for the LEDs and the OLED on its I²C bus. Button pins are
// configured when a handler is registered through IRQ.
func Open(cfg types.Config) (*Platform, error) {
	p := &Platform{}

	// Debug UART first so later failures can be reported.
	log := uartx.UART0
	switch cfg.Log.TX {
	case 4, 8, 20, 24:
		log = uartx.UART1
	}
	_ = log.Configure(uartx.UARTConfig{
		BaudRate: cfg.Log.Baud,
		TX:       machine.Pin(cfg.Log.TX),
		RX:       machine.Pin(cfg.Log.RX),
	})
	p.Log = log

	adc, err := openADC(cfg.Joystick.XPin, cfg.Joystick.YPin)
	if err != nil {
		return nil, err
	}
	p.ADC = adc

	pwm := &rp2PWM{freqHz: cfg.LEDs.FreqHz}
	// Registration order defines LEDRed, LEDGreen, LEDBlue.
	for _, pin := range []int{cfg.LEDs.Red, cfg.LEDs.Green, cfg.LEDs.Blue} {
		if err := pwm.add(pin); err != nil {
			return nil, err
		}
	}
	p.PWM = pwm
	p.IRQ = rp2IRQ{}

	disp, err := openDisplay(cfg.Display)
	if err != nil {
		return nil, err
	}
	p.Display = disp
	return p, nil
}

// -----------------------------------------------------------------------------
// ADC
// -----------------------------------------------------------------------------

type rp2ADC struct {
	ch  [4]machine.ADC
	sel int
}

func openADC(pins ...int) (*rp2ADC, error) {
	machine.InitADC()
	a := &rp2ADC{}
	for i := range a.ch {
		a.ch[i] = machine.ADC{Pin: machine.Pin(adcFirstPin + i)}
	}
	for _, pin := range pins {
		n := pin - adcFirstPin
		if n < 0 || n >= len(a.ch) {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "adc", Msg: "not an ADC pin"}
		}
		a.ch[n].Configure(machine.ADCConfig{})
	}
	return a, nil
}

func (a *rp2ADC) SelectChannel(ch int) error {
	if ch < 0 || ch >= len(a.ch) {
		return errcode.UnknownChannel
	}
	a.sel = ch
	return nil
}

// Read returns the 12-bit conversion. machine.ADC.Get scales to 16 bits.
func (a *rp2ADC) Read() uint16 { return a.ch[a.sel].Get() >> 4 }

// -----------------------------------------------------------------------------
// PWM
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2Chan struct {
	ctrl  pwmCtrl
	chIdx uint8 // 0 => A, 1 => B
}

type rp2PWM struct {
	freqHz uint64
	slices uint8 // bitmask of configured slices
	chans  []rp2Chan
}

func (p *rp2PWM) add(pin int) error {
	slice, err := machine.PWMPeripheral(machine.Pin(pin))
	if err != nil {
		return errcode.Wrap(errcode.UnknownPin, "pwm", err)
	}
	ctrl := pwmGroupBySlice(slice)
	// Red and blue share a slice on this board; the first user sets the period.
	if p.slices&(1<<slice) == 0 {
		if err := ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(p.freqHz)}); err != nil {
			return errcode.Wrap(errcode.PWMWrite, "pwm-configure", err)
		}
		p.slices |= 1 << slice
	}
	idx, err := ctrl.Channel(machine.Pin(pin))
	if err != nil {
		return errcode.Wrap(errcode.UnknownPin, "pwm-channel", err)
	}
	ctrl.Set(idx, 0)
	p.chans = append(p.chans, rp2Chan{ctrl: ctrl, chIdx: idx})
	return nil
}

// SetDuty scales the logical duty [0..DutyMax] to the slice's counter top.
func (p *rp2PWM) SetDuty(ch Channel, value uint16) error {
	if int(ch) >= len(p.chans) {
		return errcode.UnknownChannel
	}
	c := p.chans[ch]
	c.ctrl.Set(c.chIdx, uint32(value)*c.ctrl.Top()/types.DutyMax)
	return nil
}

// -----------------------------------------------------------------------------
// GPIO interrupts
// -----------------------------------------------------------------------------

type rp2IRQ struct{}

func (rp2IRQ) OnFallingEdge(pin int, h EdgeHandler) error {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if pin < 0 || pin > 28 {
		return errcode.UnknownPin
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	err := p.SetInterrupt(machine.PinFalling, func(p machine.Pin) {
		h(int(p), timex.NowUs())
	})
	return errcode.Wrap(errcode.IRQRegister, "irq", err)
}

// -----------------------------------------------------------------------------
// Display
// -----------------------------------------------------------------------------

// i2cForPins picks the controller that owns an SDA pin (pairs alternate).
func i2cForPins(sda int) *machine.I2C {
	if (sda/2)%2 == 0 {
		return machine.I2C0
	}
	return machine.I2C1
}

func openDisplay(c types.DisplayConfig) (Display, error) {
	bus := i2cForPins(c.SDA)
	err := bus.Configure(machine.I2CConfig{
		Frequency: c.Hz,
		SDA:       machine.Pin(c.SDA),
		SCL:       machine.Pin(c.SCL),
	})
	if err != nil {
		return nil, errcode.Wrap(errcode.DisplayWrite, "i2c-configure", err)
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: c.Address,
		Width:   c.Width,
		Height:  c.Height,
	})
	return NewDisplay(dev), nil
}
