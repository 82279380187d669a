package ramp

import (
	"time"

	"joydisplay-go/x/mathx"
)

// Set writes one duty level in [0..types.DutyMax].
type Set func(level uint16) error

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear walks a duty from cur to to in steps equal increments spread over
// total, calling set for every level that changes. steps==0 or total==0
// snaps to 'to'. The last level written is always 'to', unless tick
// cancels or set fails first; the first set error is returned.
func Linear(cur, to uint16, total time.Duration, steps uint16, tick Tick, set Set) error {
	if steps == 0 || total <= 0 {
		return set(to)
	}
	d := int32(to) - int32(cur)
	st := int32(steps)
	acc := int32(0)
	cur32 := int32(cur)
	stepDur := mathx.Max(total/time.Duration(steps), time.Millisecond)

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return nil
		}
		acc += d
		inc := acc / st
		if inc == 0 {
			continue
		}
		acc -= inc * st
		cur32 += inc
		if err := set(uint16(cur32)); err != nil {
			return err
		}
	}
	if !tick(stepDur) {
		return nil
	}
	return set(to)
}

// Sleep is a Tick that honours only time.
func Sleep(d time.Duration) bool {
	time.Sleep(d)
	return true
}
