package logic

import (
	"testing"
	"time"
)

func TestTimerCycle(t *testing.T) {
	var now Ticks
	tm := NewTimer(func() Ticks { return now })

	if !tm.Poll(100 * time.Millisecond) {
		t.Fatal("first poll should start the interval and report pending")
	}
	now += 50
	if !tm.Poll(100 * time.Millisecond) {
		t.Fatal("poll at 50ms should still be pending")
	}
	now += 50
	if tm.Poll(100 * time.Millisecond) {
		t.Fatal("poll at 100ms should report expiry")
	}
	if !tm.Poll(100 * time.Millisecond) {
		t.Fatal("poll after expiry should start a fresh interval")
	}
	now += 100
	if tm.Poll(100 * time.Millisecond) {
		t.Fatal("second interval should expire on schedule")
	}
}

func TestTimerSurvivesWraparound(t *testing.T) {
	now := Ticks(0xFFFFFFF0)
	tm := NewTimer(func() Ticks { return now })

	tm.Poll(100 * time.Millisecond)
	now += 40 // counter wraps past zero here
	if !tm.Poll(100 * time.Millisecond) {
		t.Fatal("pending interval must survive counter wraparound")
	}
	now += 60
	if tm.Poll(100 * time.Millisecond) {
		t.Fatal("interval must expire 100ms after start even across the wrap")
	}
}

func TestTimerStop(t *testing.T) {
	var now Ticks
	tm := NewTimer(func() Ticks { return now })

	tm.Poll(100 * time.Millisecond)
	now += 90
	tm.Stop()
	if !tm.Poll(100 * time.Millisecond) {
		t.Fatal("poll after Stop should start a fresh interval")
	}
	now += 99
	if !tm.Poll(100 * time.Millisecond) {
		t.Fatal("restarted interval should still be pending at 99ms")
	}
}
