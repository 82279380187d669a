package timex

import "time"

var boot = time.Now()

// NowUs returns microseconds since boot on a wrapping 32-bit clock
// (about 71 minutes per wrap). Compare values with unsigned subtraction.
func NowUs() uint32 { return uint32(time.Since(boot).Microseconds()) }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint64) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return 1_000_000_000 / freqHz
}

// ResetTimer stops t, drains a pending fire and re-arms it for d.
func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}
