// Package app is the main loop: sample the joystick, drive the LEDs, redraw
// the panel, then act on button presses. It is the only owner of
// types.DeviceMode.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/errcode"
	"joydisplay-go/services/hal"
	"joydisplay-go/services/input"
	"joydisplay-go/services/mapping"
	"joydisplay-go/services/output"
	"joydisplay-go/services/render"
	"joydisplay-go/types"
	"joydisplay-go/x/timex"
)

var (
	TopicMode = bus.T("status", "mode")
	TopicLoop = bus.T("status", "loop")
)

// Options wires an App. Conn and Logger may be nil.
type Options struct {
	Config   types.Config
	Platform *hal.Platform
	Buttons  *input.Buttons
	Logger   *slog.Logger
	Conn     *bus.Connection
}

// Frame reports what one Step did.
type Frame struct {
	Sample types.InputSample
	Pos    types.PixelPosition
	Duty   types.LedDuty
	Mode   types.DeviceMode // after this frame's presses
	Err    error            // joined per-frame hardware failures
}

type App struct {
	cfg      types.Config
	adc      hal.ADC
	display  hal.Display
	leds     *output.Driver
	mapper   mapping.Mapper
	composer render.Composer
	buttons  *input.Buttons
	log      *slog.Logger
	conn     *bus.Connection

	mode  types.DeviceMode
	last  types.InputSample
	stats types.LoopStats
	cmds  []render.Command
}

func New(o Options) *App {
	log := o.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(127),
		}))
	}
	a := &App{
		cfg:      o.Config,
		adc:      o.Platform.ADC,
		display:  o.Platform.Display,
		leds:     output.NewDriver(o.Platform.PWM, hal.LEDRed, hal.LEDGreen, hal.LEDBlue),
		mapper:   mapping.ForConfig(o.Config),
		composer: render.ForConfig(o.Config),
		buttons:  o.Buttons,
		log:      log,
		conn:     o.Conn,
		mode:     types.InitialMode(),
		last:     types.InputSample{X: types.RawCenter, Y: types.RawCenter},
		cmds:     make([]render.Command, 0, 8),
	}
	a.publish(TopicMode, a.mode)
	return a
}

// Mode returns the current device mode.
func (a *App) Mode() types.DeviceMode { return a.mode }

// Stats returns the loop counters.
func (a *App) Stats() types.LoopStats { return a.stats }

// Step runs one loop iteration. Hardware failures abandon only the affected
// output for this frame; the mode update always happens.
func (a *App) Step() Frame {
	var f Frame
	var errs []error

	s, err := a.sample()
	if err != nil {
		errs = append(errs, err)
		a.log.Debug("app:adc-select-failed", slog.String("err", err.Error()))
	}
	f.Sample = s
	f.Pos = a.mapper.Map(s)

	f.Duty = output.Compute(s, a.mode)
	if err := a.leds.Apply(f.Duty); err != nil {
		errs = append(errs, err)
		a.stats.PWMErrors++
		a.log.Debug("app:pwm-write-failed", slog.String("err", err.Error()))
	}

	a.cmds = a.composer.Compose(f.Pos, a.mode.BorderStyle, a.cmds)
	if err := render.Execute(a.display, a.cmds); err != nil {
		errs = append(errs, err)
		a.stats.DisplayErrors++
		a.log.Debug("app:display-write-failed", slog.String("err", err.Error()))
	}

	prev := a.mode
	a.consume()
	f.Mode = a.mode
	if a.mode != prev {
		a.log.Debug("app:mode",
			slog.Bool("pwm", a.mode.PWMEnabled),
			slog.Bool("green", a.mode.GreenOn),
			slog.Int("border", int(a.mode.BorderStyle)))
		a.publish(TopicMode, a.mode)
	}

	a.stats.Frames++
	a.stats.Dropped = a.buttons.Dropped()
	if n := a.cfg.StatsEvery; n > 0 && a.stats.Frames%n == 0 {
		a.publish(TopicLoop, a.stats)
	}

	f.Err = errors.Join(errs...)
	return f
}

// sample reads both axes. A failed channel select keeps that axis's
// previous reading.
func (a *App) sample() (types.InputSample, error) {
	s := a.last
	var errs []error
	if err := a.adc.SelectChannel(a.cfg.Joystick.XChannel); err != nil {
		errs = append(errs, errcode.Wrap(errcode.ADCSelect, "x", err))
	} else {
		s.X = a.adc.Read()
	}
	if err := a.adc.SelectChannel(a.cfg.Joystick.YChannel); err != nil {
		errs = append(errs, errcode.Wrap(errcode.ADCSelect, "y", err))
	} else {
		s.Y = a.adc.Read()
	}
	a.last = s
	return s, errors.Join(errs...)
}

// consume clears each latch at most once per frame.
func (a *App) consume() {
	if _, ok := a.buttons.TryConsume(input.ButtonJoystick); ok {
		a.mode.GreenOn = !a.mode.GreenOn
		a.mode.BorderStyle = a.composer.Next(a.mode.BorderStyle)
	}
	if _, ok := a.buttons.TryConsume(input.ButtonA); ok {
		a.mode.PWMEnabled = !a.mode.PWMEnabled
	}
}

func (a *App) publish(topic bus.Topic, payload any) {
	if a.conn == nil {
		return
	}
	a.conn.Publish(a.conn.NewMessage(topic, payload, true))
}

// Run steps every Period until ctx is done.
func (a *App) Run(ctx context.Context) error {
	period := a.cfg.Period
	if period <= 0 {
		period = 10 * time.Millisecond
	}
	t := time.NewTimer(period)
	defer t.Stop()

	a.log.Info("app:run", slog.Duration("period", period), slog.String("board", a.cfg.Board))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Step()
		timex.ResetTimer(t, period)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
