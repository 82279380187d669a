package config

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"joydisplay-go/bus"
	"joydisplay-go/errcode"
	"joydisplay-go/types"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
)

// TopicBoard carries the active types.Config, retained.
var TopicBoard = bus.T(configPrefix, "board")

// ErrUnknownBoard is returned by Load when no embedded config exists.
var ErrUnknownBoard = errors.New("config: unknown board")

// Lookup resolves a board name to its raw JSON config. Tests override it.
var Lookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Load decodes and validates the embedded config for board.
func Load(board string) (types.Config, error) {
	var cfg types.Config
	raw, ok := Lookup(board)
	if !ok || len(raw) == 0 {
		return cfg, errcode.Wrap(errcode.InvalidConfig, "load", errors.Join(ErrUnknownBoard, errors.New(board)))
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, errcode.Wrap(errcode.InvalidConfig, "decode", err)
	}
	if cfg.Board == "" {
		cfg.Board = board
	}
	return cfg, Validate(cfg)
}

// Default is the validated config of DefaultBoard. It panics if the
// embedded table is broken, which only a bad build can cause.
func Default() types.Config {
	cfg, err := Load(DefaultBoard)
	if err != nil {
		panic(err)
	}
	return cfg
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

const (
	maxGPIO  = 29
	adcFirst = 26 // GP26..GP29 are ADC0..ADC3
)

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: msg}
}

func pinName(field string, pin int) string {
	return field + "=" + strconv.Itoa(pin)
}

// Validate checks geometry, pin assignments, ADC channels, timings and
// policy selectors. All problems are reported, joined.
func Validate(cfg types.Config) error {
	var errs []error
	add := func(msg string) { errs = append(errs, invalid(msg)) }

	d := cfg.Display
	if d.Width <= 0 || d.Height <= 0 {
		add("display size must be positive")
	}
	if cfg.SpriteSize <= 0 {
		add("sprite_size must be positive")
	} else if cfg.SpriteSize > d.Width || cfg.SpriteSize > d.Height {
		add("sprite larger than canvas")
	}
	if d.Address < 0x08 || d.Address > 0x77 {
		add("display address outside 7-bit range")
	}
	if d.Hz == 0 {
		add("display hz must be positive")
	}

	j := cfg.Joystick
	for _, a := range []struct {
		name    string
		pin, ch int
	}{{"x_pin", j.XPin, j.XChannel}, {"y_pin", j.YPin, j.YChannel}} {
		if a.pin < adcFirst || a.pin > maxGPIO {
			add(pinName(a.name, a.pin) + " is not an ADC pin")
		} else if a.ch != a.pin-adcFirst {
			add(pinName(a.name, a.pin) + " channel mismatch")
		}
	}
	if j.DeadZone >= types.RawCenter {
		add("dead_zone must be below centre")
	}

	if cfg.Buttons.Debounce <= 0 {
		add("debounce must be positive")
	}
	if cfg.Period <= 0 {
		add("period must be positive")
	}
	if cfg.LEDs.FreqHz == 0 {
		add("led freq_hz must be positive")
	}
	if cfg.Log.Baud == 0 {
		add("log baud must be positive")
	}
	if cfg.Mapping > types.MappingPiecewise {
		add("unknown mapping policy")
	}
	if cfg.Border > types.BorderFixedDouble {
		add("unknown border policy")
	}

	// Every pin is in range and used once.
	pins := []struct {
		name string
		pin  int
	}{
		{"sda", d.SDA}, {"scl", d.SCL},
		{"x_pin", j.XPin}, {"y_pin", j.YPin},
		{"joystick_pin", cfg.Buttons.JoystickPin}, {"a_pin", cfg.Buttons.APin},
		{"red", cfg.LEDs.Red}, {"green", cfg.LEDs.Green}, {"blue", cfg.LEDs.Blue},
		{"tx", cfg.Log.TX}, {"rx", cfg.Log.RX},
	}
	var used uint32
	for _, p := range pins {
		if p.pin < 0 || p.pin > maxGPIO {
			add(pinName(p.name, p.pin) + " out of range")
			continue
		}
		if used&(1<<p.pin) != 0 {
			add(pinName(p.name, p.pin) + " already in use")
		}
		used |= 1 << p.pin
	}
	return errors.Join(errs...)
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
	cfg  types.Config
}

func NewConfigService(cfg types.Config) *ConfigService {
	return &ConfigService{Name: serviceName, cfg: cfg}
}

// Start publishes the active config retained on TopicBoard so late
// subscribers see which board the firmware came up as.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	if ctx.Err() != nil {
		return
	}
	conn.Publish(conn.NewMessage(TopicBoard, s.cfg, true))
}
