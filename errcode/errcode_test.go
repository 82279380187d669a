package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":              OK,
		"invalid_config":  InvalidConfig,
		"unknown_pin":     UnknownPin,
		"unknown_channel": UnknownChannel,
		"adc_select":      ADCSelect,
		"pwm_write":       PWMWrite,
		"display_write":   DisplayWrite,
		"irq_register":    IRQRegister,
		"error":           Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	cause := errors.New("nack")
	wrapped := Wrap(DisplayWrite, "flush", cause)

	if got := Of(nil); got != OK {
		t.Fatalf("Of(nil) = %q", got)
	}
	if got := Of(PWMWrite); got != PWMWrite {
		t.Fatalf("Of(code) = %q", got)
	}
	if got := Of(wrapped); got != DisplayWrite {
		t.Fatalf("Of(wrapped) = %q", got)
	}
	if got := Of(cause); got != Error {
		t.Fatalf("Of(plain) = %q", got)
	}
	if got := Of(errors.Join(cause, Wrap(PWMWrite, "set", cause))); got != PWMWrite {
		t.Fatalf("Of(joined) = %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("wrapped error does not unwrap to cause")
	}
	if Wrap(DisplayWrite, "flush", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
	if wrapped.Error() != "flush: display_write: nack" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}
