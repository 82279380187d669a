package output

import (
	"errors"
	"testing"

	"joydisplay-go/errcode"
	"joydisplay-go/services/hal"
	"joydisplay-go/types"
)

func TestDeflectionEndpoints(t *testing.T) {
	cases := []struct {
		raw  uint16
		want uint16
	}{
		{2048, 0},
		{0, types.DutyMax},
		{4095, types.DutyMax},
		{1024, 32767},
		{0xFFFF, types.DutyMax}, // out-of-range reading treated as end stop
	}
	for _, c := range cases {
		if got := Deflection(c.raw); got != c.want {
			t.Fatalf("Deflection(%d) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestDeflectionMonotonicInDistance(t *testing.T) {
	// Walk outward from the centre on both sides at once; duty must never
	// drop as distance grows, whichever side is further.
	prevLo, prevHi := Deflection(types.RawCenter), Deflection(types.RawCenter)
	for d := 1; d <= types.RawCenter; d++ {
		lo := Deflection(uint16(types.RawCenter - d))
		if lo < prevLo {
			t.Fatalf("lower side not monotonic at distance %d", d)
		}
		prevLo = lo
		if d <= types.RawMax-types.RawCenter {
			hi := Deflection(uint16(types.RawCenter + d))
			if hi < prevHi {
				t.Fatalf("upper side not monotonic at distance %d", d)
			}
			prevHi = hi
			// A reading further out on the lower side is never dimmer.
			if Deflection(uint16(types.RawCenter-d-1)) < hi && d+1 <= types.RawCenter {
				t.Fatalf("distance %d (low) dimmer than distance %d (high)", d+1, d)
			}
		}
	}
}

func TestComputePWMDisabledOverride(t *testing.T) {
	for _, raw := range []uint16{0, 2048, 4095} {
		for _, green := range []bool{false, true} {
			m := types.DeviceMode{PWMEnabled: false, GreenOn: green}
			d := Compute(types.InputSample{X: raw, Y: raw}, m)
			if d.Red != 0 || d.Blue != 0 {
				t.Fatalf("raw=%d: deflection LEDs on while disabled: %+v", raw, d)
			}
			if d.Green != Toggle(green) {
				t.Fatalf("raw=%d green=%v: toggle LED affected by PWM flag: %+v", raw, green, d)
			}
		}
	}
}

func TestComputeEnabled(t *testing.T) {
	d := Compute(types.InputSample{X: 0, Y: 2048}, types.DeviceMode{PWMEnabled: true})
	want := types.LedDuty{Red: types.DutyMax, Green: 0, Blue: 0}
	if d != want {
		t.Fatalf("got %+v, want %+v", d, want)
	}
}

func TestApplyWritesAllChannels(t *testing.T) {
	pwm := &hal.FakePWM{}
	drv := NewDriver(pwm, hal.LEDRed, hal.LEDGreen, hal.LEDBlue)

	if err := drv.Apply(types.LedDuty{Red: 1, Green: 2, Blue: 3}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if pwm.Duty(hal.LEDRed) != 1 || pwm.Duty(hal.LEDGreen) != 2 || pwm.Duty(hal.LEDBlue) != 3 {
		t.Fatal("duties not written to their channels")
	}

	// A failing channel does not stop the others.
	pwm.Fail, pwm.FailCh = errors.New("stuck"), hal.LEDRed
	err := drv.Apply(types.LedDuty{Red: 9, Green: 8, Blue: 7})
	if errcode.Of(err) != errcode.PWMWrite {
		t.Fatalf("expected pwm_write, got %v", err)
	}
	if pwm.Duty(hal.LEDGreen) != 8 || pwm.Duty(hal.LEDBlue) != 7 {
		t.Fatal("remaining channels not written after failure")
	}
}
