package types

// ---- Analogue input ----

// RawMax is the largest 12-bit ADC reading.
const RawMax = 4095

// RawCenter is the raw midpoint used as the joystick rest reference.
const RawCenter = 2048

// DutyMax is the PWM duty ceiling (fully on).
const DutyMax = 65535

// InputSample is one reading of both joystick axes (0..RawMax).
type InputSample struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// ---- Outputs ----

// PixelPosition is the sprite's top-left corner on the canvas.
type PixelPosition struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// LedDuty holds the logical duty for each LED channel (0..DutyMax).
type LedDuty struct {
	Red   uint16 `json:"red"`   // X deflection
	Green uint16 `json:"green"` // toggle LED
	Blue  uint16 `json:"blue"`  // Y deflection
}

// ---- Mode (owned by the main loop) ----

// DeviceMode is the button-driven state carried between loop iterations.
type DeviceMode struct {
	PWMEnabled  bool  `json:"pwm_enabled"`
	GreenOn     bool  `json:"green_on"`
	BorderStyle uint8 `json:"border_style"`
}

// InitialMode is the mode at power-up.
func InitialMode() DeviceMode {
	return DeviceMode{PWMEnabled: true}
}

// ---- Diagnostics (retained on status/loop) ----

type LoopStats struct {
	Frames        uint32 `json:"frames"`
	DisplayErrors uint32 `json:"display_errors"`
	PWMErrors     uint32 `json:"pwm_errors"`
	Dropped       uint32 `json:"dropped_edges"`
}
