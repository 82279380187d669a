// cmd/boardtest/main.go
package main

import (
	"context"
	"log/slog"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/errcode"
	"joydisplay-go/services/config"
	"joydisplay-go/services/hal"
	"joydisplay-go/services/input"
	"joydisplay-go/services/render"
	"joydisplay-go/services/status"
	"joydisplay-go/types"
	"joydisplay-go/x/ramp"
)

// ---------- Configuration ----------

const (
	// LED sweep
	rampTime  = 1 * time.Second
	rampSteps = 50
	dwell     = 300 * time.Millisecond

	// Display sweep
	spriteStep  = 4
	framePeriod = 20 * time.Millisecond

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

var ledSeq = []struct {
	name string
	ch   hal.Channel
}{
	{"red", hal.LEDRed},
	{"green", hal.LEDGreen},
	{"blue", hal.LEDBlue},
}

var topicResult = bus.T("boardtest", "result")

type result struct {
	Cycle         int
	PWMErrors     int
	DisplayErrors int
	Presses       [2]int
}

// ---------- Helpers ----------

func sweepLEDs(log *slog.Logger, pwm hal.PWM, res *result) {
	for _, led := range ledSeq {
		set := func(v uint16) error { return pwm.SetDuty(led.ch, v) }
		if err := ramp.Linear(0, types.DutyMax, rampTime, rampSteps, ramp.Sleep, set); err != nil {
			res.PWMErrors++
			log.Error("led up", slog.String("led", led.name), slog.Any("reason", err))
		}
		time.Sleep(dwell)
		if err := ramp.Linear(types.DutyMax, 0, rampTime, rampSteps, ramp.Sleep, set); err != nil {
			res.PWMErrors++
			log.Error("led down", slog.String("led", led.name), slog.Any("reason", err))
		}
		log.Info("led swept", slog.String("led", led.name))
	}
}

// sweepDisplay runs the sprite along the diagonal once per border style.
func sweepDisplay(log *slog.Logger, d hal.Display, c render.Composer, res *result) {
	var cmds []render.Command
	style := uint8(0)
	for n := uint8(0); n < c.Border.Styles(); n++ {
		for x := int16(0); x+c.Sprite <= c.Width; x += spriteStep {
			y := int32(x) * int32(c.Height-c.Sprite) / int32(max(c.Width-c.Sprite, 1))
			cmds = c.Compose(types.PixelPosition{X: int32(x), Y: y}, style, cmds)
			if err := render.Execute(d, cmds); err != nil {
				res.DisplayErrors++
				if errcode.Of(err) == errcode.DisplayWrite && res.DisplayErrors == 1 {
					log.Error("display", slog.Any("reason", err))
				}
			}
			time.Sleep(framePeriod)
		}
		log.Info("border swept", slog.Int("style", int(style)))
		style = c.Next(style)
	}
}

func echoPresses(log *slog.Logger, b *input.Buttons, res *result) {
	for _, id := range []input.ButtonID{input.ButtonJoystick, input.ButtonA} {
		if ev, ok := b.TryConsume(id); ok {
			res.Presses[id]++
			log.Info("press", slog.String("button", id.String()), slog.Uint64("at_us", uint64(ev.At)))
		}
	}
}

// ---------- Main ----------

func main() {
	ctx := context.Background()
	time.Sleep(2 * time.Second)

	cfg := config.Default()
	p, err := hal.Open(cfg)
	if err != nil {
		for {
			println("[boardtest] open:", err.Error())
			time.Sleep(time.Second)
		}
	}
	log := slog.New(slog.NewTextHandler(p.Log, &slog.HandlerOptions{Level: slog.LevelInfo}))

	buttons := input.NewButtons(cfg.Buttons.JoystickPin, cfg.Buttons.APin, cfg.Buttons.Debounce)
	if err := buttons.Attach(p.IRQ); err != nil {
		log.Error("attach buttons", slog.Any("reason", err))
	}

	// Local bus: config for the status monitor, retained per-cycle results.
	b := bus.NewBus(4)
	ui := b.NewConnection("boardtest")
	config.NewConfigService(cfg).Start(ctx, b.NewConnection("config"))
	_ = (&status.Service{Log: log}).Start(ctx, b.NewConnection("status"))

	// Both border policies get exercised.
	composers := []render.Composer{render.ForConfig(cfg)}
	alt := cfg
	alt.Border = (cfg.Border + 1) % 2
	composers = append(composers, render.ForConfig(alt))

	cycle := 0
	for {
		cycle++
		res := result{Cycle: cycle}
		log.Info("=== boardtest ===", slog.Int("cycle", cycle))

		sweepLEDs(log, p.PWM, &res)
		echoPresses(log, buttons, &res)
		for _, c := range composers {
			sweepDisplay(log, p.Display, c, &res)
			echoPresses(log, buttons, &res)
		}

		pass := res.PWMErrors == 0 && res.DisplayErrors == 0
		if pass {
			log.Info("[PASS] leds and display driven without errors",
				slog.Int("joystick_presses", res.Presses[input.ButtonJoystick]),
				slog.Int("a_presses", res.Presses[input.ButtonA]),
				slog.Uint64("dropped", uint64(buttons.Dropped())))
		} else {
			log.Error("[FAIL]", slog.Int("pwm_errors", res.PWMErrors), slog.Int("display_errors", res.DisplayErrors))
		}
		ui.Publish(ui.NewMessage(topicResult, res, true))

		if cyclesToRun > 0 && cycle >= cyclesToRun {
			log.Info("completed; halting", slog.Int("cycles", cycle))
			return
		}
	}
}
