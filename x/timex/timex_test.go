package timex

import (
	"testing"
	"time"
)

func TestPeriodFromHz(t *testing.T) {
	if got := PeriodFromHz(1000); got != 1_000_000 {
		t.Fatalf("1 kHz period = %d ns", got)
	}
	if got := PeriodFromHz(0); got != 1_000_000_000 {
		t.Fatalf("0 Hz should coerce to 1 Hz, got %d", got)
	}
}

func TestNowUsAdvances(t *testing.T) {
	a := NowUs()
	time.Sleep(2 * time.Millisecond)
	b := NowUs()
	if d := b - a; d < 1000 {
		t.Fatalf("clock advanced only %d us", d)
	}
}

func TestResetAndDrainTimer(t *testing.T) {
	tm := time.NewTimer(time.Hour)
	ResetTimer(tm, time.Millisecond)
	select {
	case <-tm.C:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timer did not fire after reset")
	}
	// Fired and drained: reset again must still fire exactly once.
	ResetTimer(tm, time.Millisecond)
	select {
	case <-tm.C:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timer did not fire after second reset")
	}
}
