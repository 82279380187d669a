// services/output/driver.go
package output

import (
	"errors"

	"joydisplay-go/services/hal"
	"joydisplay-go/types"
	"joydisplay-go/x/mathx"
)

// Deflection converts an axis reading into an LED duty proportional to its
// distance from RawCenter: 0 at the centre, DutyMax at either end stop. The
// upper half is one count shorter than the lower, so it is scaled on its own
// span to reach DutyMax at RawMax.
func Deflection(raw uint16) uint16 {
	raw = mathx.Min(raw, types.RawMax)
	if raw <= types.RawCenter {
		return mathx.MapU16(types.RawCenter-raw, 0, types.RawCenter, 0, types.DutyMax)
	}
	return mathx.MapU16(raw-types.RawCenter, 0, types.RawMax-types.RawCenter, 0, types.DutyMax)
}

// Toggle is the binary duty of an on/off LED.
func Toggle(on bool) uint16 {
	if on {
		return types.DutyMax
	}
	return 0
}

// Compute derives the three LED duties. With PWM disabled the deflection
// LEDs are forced fully off; the toggle LED follows GreenOn regardless.
func Compute(s types.InputSample, m types.DeviceMode) types.LedDuty {
	d := types.LedDuty{Green: Toggle(m.GreenOn)}
	if m.PWMEnabled {
		d.Red = Deflection(s.X)
		d.Blue = Deflection(s.Y)
	}
	return d
}

// Driver writes LED duties to the PWM capability.
type Driver struct {
	pwm              hal.PWM
	red, green, blue hal.Channel
}

func NewDriver(pwm hal.PWM, red, green, blue hal.Channel) *Driver {
	return &Driver{pwm: pwm, red: red, green: green, blue: blue}
}

// Apply writes every channel even when an earlier write fails and returns
// the joined failures.
func (d *Driver) Apply(duty types.LedDuty) error {
	return errors.Join(
		d.pwm.SetDuty(d.red, duty.Red),
		d.pwm.SetDuty(d.green, duty.Green),
		d.pwm.SetDuty(d.blue, duty.Blue),
	)
}
