// Package render decides what goes on the panel each frame. It produces a
// list of draw commands and replays them onto a hal.Display; it never
// touches pixels itself.
package render

import (
	"joydisplay-go/services/hal"
	"joydisplay-go/types"
)

type Op uint8

const (
	OpClear   Op = iota // blank the buffer
	OpOutline           // rectangle outline
	OpFill              // filled rectangle
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpOutline:
		return "outline"
	case OpFill:
		return "fill"
	default:
		return "?"
	}
}

// Command is one draw step. Geometry is unused for OpClear.
type Command struct {
	Op         Op
	X, Y, W, H int16
}

// BorderPolicy chooses the border outlines for a style selector.
type BorderPolicy interface {
	// Styles is the size of the style space; selectors wrap modulo Styles.
	Styles() uint8
	// Borders appends the outlines for style on a w×h canvas to dst.
	Borders(style uint8, w, h int16, dst []Command) []Command
}

func outline(inset, w, h int16) Command {
	return Command{Op: OpOutline, X: inset, Y: inset, W: w - 2*inset, H: h - 2*inset}
}

// Cycling steps through no border, then a single border at inset 0, 2, 4.
type Cycling struct{}

var cyclingInsets = [...]int16{-1, 0, 2, 4} // -1: no border

func (Cycling) Styles() uint8 { return uint8(len(cyclingInsets)) }

func (c Cycling) Borders(style uint8, w, h int16, dst []Command) []Command {
	inset := cyclingInsets[style%c.Styles()]
	if inset < 0 {
		return dst
	}
	return append(dst, outline(inset, w, h))
}

// FixedDouble always draws two concentric outlines; it has a single style.
type FixedDouble struct{}

func (FixedDouble) Styles() uint8 { return 1 }

func (FixedDouble) Borders(_ uint8, w, h int16, dst []Command) []Command {
	return append(dst, outline(0, w, h), outline(2, w, h))
}

// Composer lays out one frame: clear, borders, then the sprite on top.
type Composer struct {
	Border        BorderPolicy
	Width, Height int16
	Sprite        int16
}

// ForConfig selects the border policy named in cfg.
func ForConfig(cfg types.Config) Composer {
	var b BorderPolicy = Cycling{}
	if cfg.Border == types.BorderFixedDouble {
		b = FixedDouble{}
	}
	return Composer{Border: b, Width: cfg.Display.Width, Height: cfg.Display.Height, Sprite: cfg.SpriteSize}
}

// Compose appends the frame's commands to dst[:0] and returns it, so a
// caller-owned slice can be reused every frame.
func (c Composer) Compose(pos types.PixelPosition, style uint8, dst []Command) []Command {
	dst = append(dst[:0], Command{Op: OpClear})
	dst = c.Border.Borders(style, c.Width, c.Height, dst)
	return append(dst, Command{Op: OpFill, X: int16(pos.X), Y: int16(pos.Y), W: c.Sprite, H: c.Sprite})
}

// Next advances a style selector by one press, wrapping on the policy's
// style space.
func (c Composer) Next(style uint8) uint8 {
	n := c.Border.Styles()
	if n <= 1 {
		return 0
	}
	return (style%n + 1) % n
}

// Execute replays cmds onto d and flushes. The first failure abandons the
// frame and is returned.
func Execute(d hal.Display, cmds []Command) error {
	for _, c := range cmds {
		var err error
		switch c.Op {
		case OpClear:
			d.Clear()
		case OpOutline:
			err = d.StrokeRect(c.X, c.Y, c.W, c.H)
		case OpFill:
			err = d.FillRect(c.X, c.Y, c.W, c.H)
		}
		if err != nil {
			return err
		}
	}
	return d.Flush()
}
