package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (the value passed to Load)
// Val: raw JSON for that board. Durations are nanoseconds.
// -----------------------------------------------------------------------------

// DefaultBoard is the board the firmware is built for.
const DefaultBoard = "bitdoglab"

const cfgBitDogLab = `{
  "board": "bitdoglab",
  "display": {"width": 128, "height": 64, "address": 60, "sda": 14, "scl": 15, "hz": 400000},
  "joystick": {"x_pin": 26, "y_pin": 27, "x_channel": 0, "y_channel": 1, "dead_zone": 96},
  "buttons": {"joystick_pin": 22, "a_pin": 5, "debounce": 250000000},
  "leds": {"red": 12, "green": 11, "blue": 13, "freq_hz": 1000},
  "log": {"tx": 0, "rx": 1, "baud": 115200},
  "sprite_size": 8,
  "period": 10000000,
  "stats_every": 100,
  "mapping": 0,
  "border": 0
}`

// Bare Pico with the same peripherals wired to the other I2C controller and
// a piecewise joystick curve.
const cfgPico = `{
  "board": "pico",
  "display": {"width": 128, "height": 64, "address": 60, "sda": 4, "scl": 5, "hz": 400000},
  "joystick": {"x_pin": 26, "y_pin": 27, "x_channel": 0, "y_channel": 1, "invert_y": true, "dead_zone": 96},
  "buttons": {"joystick_pin": 22, "a_pin": 6, "debounce": 250000000},
  "leds": {"red": 16, "green": 17, "blue": 18, "freq_hz": 1000},
  "log": {"tx": 0, "rx": 1, "baud": 115200},
  "sprite_size": 8,
  "period": 10000000,
  "stats_every": 100,
  "mapping": 1,
  "border": 1
}`

var embeddedConfigs = map[string][]byte{
	"bitdoglab": []byte(cfgBitDogLab),
	"pico":      []byte(cfgPico),
}
