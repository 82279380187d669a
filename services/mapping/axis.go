// Package mapping turns raw joystick readings into sprite coordinates.
//
// A Policy scales a raw reading onto [0, span], where span is the canvas
// extent minus the sprite size. Axis then applies optional inversion and a
// final clamp, so whatever the policy does the sprite stays on the canvas.
package mapping

import (
	"joydisplay-go/types"
	"joydisplay-go/x/mathx"
)

// Policy maps raw in [0, types.RawMax] to a position in [0, span].
// Implementations must be monotonic non-decreasing in raw.
type Policy interface {
	Map(raw uint16, span int32) int32
}

// Linear scales the whole raw range directly: pos = raw * span / RawMax.
type Linear struct{}

func (Linear) Map(raw uint16, span int32) int32 {
	if span <= 0 {
		return 0
	}
	return int32(mathx.MapU16(raw, 0, types.RawMax, 0, uint16(span)))
}

// Piecewise scales the halves below and above RawCenter independently, so
// the raw midpoint always lands on the centre pixel, then pulls readings
// within DeadZone of the midpoint onto that centre.
type Piecewise struct {
	DeadZone uint16
}

func (p Piecewise) Map(raw uint16, span int32) int32 {
	if span <= 0 {
		return 0
	}
	center := uint16(span / 2)
	if mathx.AbsDiff(raw, types.RawCenter) <= p.DeadZone {
		return int32(center)
	}
	if raw <= types.RawCenter {
		return int32(mathx.MapU16(raw, 0, types.RawCenter, 0, center))
	}
	return int32(mathx.MapU16(raw, types.RawCenter, types.RawMax, center, uint16(span)))
}

// Axis maps one joystick axis onto one canvas dimension.
type Axis struct {
	Policy Policy
	Extent int32 // canvas width or height
	Size   int32 // sprite size
	Invert bool  // larger raw => smaller coordinate
}

// Span is the largest valid sprite coordinate on this axis.
func (a Axis) Span() int32 { return mathx.Max(a.Extent-a.Size, 0) }

// Map returns the sprite coordinate for raw, always within [0, Span()].
func (a Axis) Map(raw uint16) int32 {
	span := a.Span()
	pos := a.Policy.Map(mathx.Min(raw, types.RawMax), span)
	if a.Invert {
		pos = span - pos
	}
	return mathx.Clamp(pos, 0, span)
}

// Mapper maps both axes of a sample.
type Mapper struct {
	X, Y Axis
}

// New builds a mapper for a W×H canvas and an S-pixel sprite.
func New(p Policy, w, h, s int32, invertX, invertY bool) Mapper {
	return Mapper{
		X: Axis{Policy: p, Extent: w, Size: s, Invert: invertX},
		Y: Axis{Policy: p, Extent: h, Size: s, Invert: invertY},
	}
}

// ForConfig selects the policy named in cfg.
func ForConfig(cfg types.Config) Mapper {
	var p Policy = Linear{}
	if cfg.Mapping == types.MappingPiecewise {
		p = Piecewise{DeadZone: cfg.Joystick.DeadZone}
	}
	return New(p, int32(cfg.Display.Width), int32(cfg.Display.Height), int32(cfg.SpriteSize),
		cfg.Joystick.InvertX, cfg.Joystick.InvertY)
}

func (m Mapper) Map(s types.InputSample) types.PixelPosition {
	return types.PixelPosition{X: m.X.Map(s.X), Y: m.Y.Map(s.Y)}
}
