package timectrl

import (
	"testing"
	"time"
)

func TestManualClock_SleepAdvancesTime(t *testing.T) {
	start := time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	c.Sleep(7 * time.Second)
	c.Sleep(20 * time.Second)

	want := start.Add(27 * time.Second)
	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("Now() after sleeps = %v, want %v", got, want)
	}

	slept := c.Slept()
	if len(slept) != 2 || slept[0] != 7*time.Second || slept[1] != 20*time.Second {
		t.Fatalf("Slept() = %v, want [7s 20s]", slept)
	}
}

func TestManualClock_AdvanceDoesNotRecordSleep(t *testing.T) {
	c := NewManualClock(time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC))
	c.Advance(time.Minute)
	if len(c.Slept()) != 0 {
		t.Fatalf("Advance should not record a sleep, got %v", c.Slept())
	}
}
