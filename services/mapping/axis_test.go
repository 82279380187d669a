package mapping

import (
	"testing"

	"joydisplay-go/types"
)

const (
	W, H, S = 128, 64, 8
)

var policies = map[string]Policy{
	"linear":             Linear{},
	"piecewise":          Piecewise{},
	"piecewise-deadzone": Piecewise{DeadZone: 120},
}

func TestClampInvariantAllRaw(t *testing.T) {
	for name, p := range policies {
		for _, inv := range []bool{false, true} {
			m := New(p, W, H, S, inv, inv)
			for raw := 0; raw <= types.RawMax; raw++ {
				pos := m.Map(types.InputSample{X: uint16(raw), Y: uint16(raw)})
				if pos.X < 0 || pos.X > W-S || pos.Y < 0 || pos.Y > H-S {
					t.Fatalf("%s invert=%v raw=%d: out of bounds %+v", name, inv, raw, pos)
				}
			}
		}
	}
}

func TestMonotonic(t *testing.T) {
	for name, p := range policies {
		for _, inv := range []bool{false, true} {
			a := Axis{Policy: p, Extent: W, Size: S, Invert: inv}
			prev := a.Map(0)
			for raw := 1; raw <= types.RawMax; raw++ {
				cur := a.Map(uint16(raw))
				if !inv && cur < prev {
					t.Fatalf("%s: pos(%d)=%d < pos(%d)=%d", name, raw, cur, raw-1, prev)
				}
				if inv && cur > prev {
					t.Fatalf("%s inverted: pos(%d)=%d > pos(%d)=%d", name, raw, cur, raw-1, prev)
				}
				prev = cur
			}
		}
	}
}

func TestCornersAndCentre(t *testing.T) {
	for name, p := range policies {
		m := New(p, W, H, S, false, false)

		if got := m.Map(types.InputSample{X: 0, Y: 0}); got != (types.PixelPosition{X: 0, Y: 0}) {
			t.Fatalf("%s: (0,0) -> %+v", name, got)
		}
		if got := m.Map(types.InputSample{X: 4095, Y: 4095}); got != (types.PixelPosition{X: W - S, Y: H - S}) {
			t.Fatalf("%s: (4095,4095) -> %+v", name, got)
		}
		c := m.Map(types.InputSample{X: 2048, Y: 2048})
		if c.X < (W-S)/2-1 || c.X > (W-S)/2+1 || c.Y < (H-S)/2-1 || c.Y > (H-S)/2+1 {
			t.Fatalf("%s: centre -> %+v", name, c)
		}
	}
}

func TestInvertSwapsEnds(t *testing.T) {
	a := Axis{Policy: Linear{}, Extent: H, Size: S, Invert: true}
	if a.Map(0) != H-S || a.Map(4095) != 0 {
		t.Fatalf("inverted ends: %d, %d", a.Map(0), a.Map(4095))
	}
}

func TestPiecewiseDeadZone(t *testing.T) {
	a := Axis{Policy: Piecewise{DeadZone: 100}, Extent: W, Size: S}
	centre := int32((W - S) / 2)
	for _, raw := range []uint16{1948, 2000, 2048, 2100, 2148} {
		if got := a.Map(raw); got != centre {
			t.Fatalf("raw %d in dead zone -> %d, want %d", raw, got, centre)
		}
	}
	if a.Map(1900) >= centre || a.Map(2200) <= centre {
		t.Fatal("readings outside dead zone must leave the centre")
	}
}

func TestDegenerateCanvas(t *testing.T) {
	// Sprite larger than the canvas: the only valid coordinate is 0.
	a := Axis{Policy: Linear{}, Extent: 4, Size: 8}
	for _, raw := range []uint16{0, 2048, 4095, 0xFFFF} {
		if got := a.Map(raw); got != 0 {
			t.Fatalf("raw %d -> %d", raw, got)
		}
	}
}

func TestForConfigSelectsPolicy(t *testing.T) {
	cfg := types.Config{
		Display:    types.DisplayConfig{Width: W, Height: H},
		SpriteSize: S,
		Mapping:    types.MappingPiecewise,
		Joystick:   types.JoystickConfig{DeadZone: 64, InvertY: true},
	}
	m := ForConfig(cfg)
	if _, ok := m.X.Policy.(Piecewise); !ok {
		t.Fatalf("policy %T", m.X.Policy)
	}
	if !m.Y.Invert || m.X.Invert {
		t.Fatal("inversion flags not applied")
	}
	cfg.Mapping = types.MappingLinear
	if _, ok := ForConfig(cfg).X.Policy.(Linear); !ok {
		t.Fatal("expected Linear")
	}
}
