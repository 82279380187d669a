package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/services/app"
	"joydisplay-go/services/config"
	"joydisplay-go/services/hal"
	"joydisplay-go/services/input"
	"joydisplay-go/services/status"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	boot := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load(config.DefaultBoard)
	if err != nil {
		printErrForever(boot, "load config", slog.Any("reason", err))
	}

	p, err := hal.Open(cfg)
	if err != nil {
		printErrForever(boot, "open platform", slog.Any("reason", err))
	}
	logger := slog.New(slog.NewTextHandler(p.Log, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	logger.Info("boot", slog.String("board", cfg.Board))

	// Buttons are optional: a failed registration leaves the loop running
	// without mode changes.
	buttons := input.NewButtons(cfg.Buttons.JoystickPin, cfg.Buttons.APin, cfg.Buttons.Debounce)
	if err := buttons.Attach(p.IRQ); err != nil {
		logger.Error("attach buttons", slog.Any("reason", err))
	}

	// Blank panel before the first frame.
	p.Display.Clear()
	if err := p.Display.Flush(); err != nil {
		logger.Error("clear display", slog.Any("reason", err))
	}

	b := bus.NewBus(4)
	config.NewConfigService(cfg).Start(ctx, b.NewConnection("config"))
	mon := &status.Service{Log: logger, Interval: 10 * time.Second}
	_ = mon.Start(ctx, b.NewConnection("status"))

	a := app.New(app.Options{
		Config:   cfg,
		Platform: p,
		Buttons:  buttons,
		Logger:   logger,
		Conn:     b.NewConnection("app"),
	})
	if err := a.Run(ctx); err != nil {
		printErrForever(logger, "main loop exited", slog.Any("reason", err))
	}
}

// printErrForever prints a message to the log @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
