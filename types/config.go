package types

import "time"

// MappingPolicy selects the raw-to-pixel transform.
type MappingPolicy uint8

const (
	MappingLinear    MappingPolicy = iota // pos = raw * span / RawMax
	MappingPiecewise                      // halves scaled separately around the centre
)

// BorderPolicy selects how borders are drawn.
type BorderPolicy uint8

const (
	BorderCycling     BorderPolicy = iota // none, inset 0, inset 2, inset 4
	BorderFixedDouble                     // always two outlines
)

// DisplayConfig describes the OLED and its bus.
type DisplayConfig struct {
	Width   int16  `json:"width"`
	Height  int16  `json:"height"`
	Address uint16 `json:"address"`
	SDA     int    `json:"sda"`
	SCL     int    `json:"scl"`
	Hz      uint32 `json:"hz"`
}

// JoystickConfig maps the joystick to ADC pins/channels.
type JoystickConfig struct {
	XPin     int  `json:"x_pin"`
	YPin     int  `json:"y_pin"`
	XChannel int  `json:"x_channel"`
	YChannel int  `json:"y_channel"`
	InvertX  bool `json:"invert_x,omitempty"`
	InvertY  bool `json:"invert_y,omitempty"`
	// DeadZone is only used by MappingPiecewise (raw counts around RawCenter).
	DeadZone uint16 `json:"dead_zone,omitempty"`
}

// ButtonConfig lists the active-low push-buttons.
type ButtonConfig struct {
	JoystickPin int           `json:"joystick_pin"`
	APin        int           `json:"a_pin"`
	Debounce    time.Duration `json:"debounce"`
}

// LEDConfig lists the PWM LED pins.
type LEDConfig struct {
	Red    int    `json:"red"`
	Green  int    `json:"green"`
	Blue   int    `json:"blue"`
	FreqHz uint64 `json:"freq_hz"`
}

// LogConfig selects the debug UART.
type LogConfig struct {
	TX   int    `json:"tx"`
	RX   int    `json:"rx"`
	Baud uint32 `json:"baud"`
}

// Config is the complete compile-time board description.
type Config struct {
	Board      string         `json:"board"`
	Display    DisplayConfig  `json:"display"`
	Joystick   JoystickConfig `json:"joystick"`
	Buttons    ButtonConfig   `json:"buttons"`
	LEDs       LEDConfig      `json:"leds"`
	Log        LogConfig      `json:"log"`
	SpriteSize int16          `json:"sprite_size"`
	Period     time.Duration  `json:"period"`
	StatsEvery uint32         `json:"stats_every"`
	Mapping    MappingPolicy  `json:"mapping"`
	Border     BorderPolicy   `json:"border"`
}
