package status

import (
	"context"
	"log/slog"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/types"
)

var (
	topicStatus = bus.T("status", "#")
	topicConfig = bus.T("config", "board")
)

// Service logs mode changes, periodic loop counters and a heartbeat with the
// most recent counters. It only reads the bus.
type Service struct {
	Log      *slog.Logger
	Interval time.Duration // heartbeat; 0 disables

	last types.LoopStats
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	statSub := conn.Subscribe(topicStatus)
	defer conn.Unsubscribe(statSub)
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)

	var tickC <-chan time.Time
	if s.Interval > 0 {
		tick := time.NewTicker(s.Interval)
		defer tick.Stop()
		tickC = tick.C
	}

	for {
		select {
		case <-ctx.Done():
			s.Log.Info("status:stopping")
			return
		case <-tickC:
			s.Log.Info("status:heartbeat",
				slog.Uint64("frames", uint64(s.last.Frames)),
				slog.Uint64("display_errors", uint64(s.last.DisplayErrors)))
		case msg := <-cfgSub.Channel():
			if cfg, ok := msg.Payload.(types.Config); ok {
				s.Log.Info("status:config",
					slog.String("board", cfg.Board),
					slog.Duration("period", cfg.Period))
			}
		case msg := <-statSub.Channel():
			s.handle(msg)
		}
	}
}

func (s *Service) handle(msg *bus.Message) {
	switch p := msg.Payload.(type) {
	case types.DeviceMode:
		s.Log.Info("status:mode",
			slog.Bool("pwm", p.PWMEnabled),
			slog.Bool("green", p.GreenOn),
			slog.Int("border", int(p.BorderStyle)))
	case types.LoopStats:
		s.last = p
		level := slog.LevelDebug
		if p.DisplayErrors > 0 || p.PWMErrors > 0 {
			level = slog.LevelWarn
		}
		s.Log.Log(context.Background(), level, "status:loop",
			slog.Uint64("frames", uint64(p.Frames)),
			slog.Uint64("display_errors", uint64(p.DisplayErrors)),
			slog.Uint64("pwm_errors", uint64(p.PWMErrors)),
			slog.Uint64("dropped", uint64(p.Dropped)))
	}
}

// Start the status service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
