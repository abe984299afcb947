package logic

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestArmingBlinksOncePerInterval(t *testing.T) {
	const toggles = 16
	a := NewArming(toggles)
	iv := ActiveInterval{Slot: SlotAM, Day: time.Wednesday}
	steady := iv.Pattern()

	// Interval opens with motion already high: arm without evaluating
	// motion on the same tick.
	if got := a.Step(iv, true); got != steady {
		t.Fatalf("arming tick output = %#04x, want steady %#04x", got, steady)
	}
	if a.State() != Ready {
		t.Fatalf("state after first tick = %v, want %v", a.State(), Ready)
	}

	// Next tick the motion triggers the blink; the first toggle goes
	// dark.
	if got := a.Step(iv, true); got != 0 {
		t.Fatalf("first blink tick output = %#04x, want off", got)
	}
	if a.State() != Blinking {
		t.Fatalf("state = %v, want %v", a.State(), Blinking)
	}

	// Consume the rest of the sequence.
	for i := 1; i < toggles; i++ {
		a.Step(iv, false)
	}
	if a.State() != Complete {
		t.Fatalf("state after %d toggles = %v, want %v", toggles, a.State(), Complete)
	}

	// Completed interval stays steady and ignores further motion.
	if got := a.Step(iv, true); got != steady {
		t.Fatalf("complete output = %#04x, want steady %#04x", got, steady)
	}
	if a.State() != Complete {
		t.Fatalf("motion after completion must not rearm, state = %v", a.State())
	}
}

func TestArmingBlinkAlternatesAndCompletes(t *testing.T) {
	a := NewArming(4)
	iv := ActiveInterval{Slot: SlotPM, Day: time.Friday}
	steady := iv.Pattern()

	a.Step(iv, false) // arm
	got := []Pattern{
		a.Step(iv, true),  // toggle 1
		a.Step(iv, false), // toggle 2
		a.Step(iv, false), // toggle 3
		a.Step(iv, false), // toggle 4, sequence done
	}
	want := []Pattern{0, steady, 0, steady}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blink sequence mismatch (-want +got):\n%s", diff)
	}
	if a.State() != Complete {
		t.Errorf("state = %v, want %v", a.State(), Complete)
	}
}

func TestArmingStaysReadyWithoutMotion(t *testing.T) {
	a := NewArming(16)
	iv := ActiveInterval{Slot: SlotAM, Day: time.Monday}
	steady := iv.Pattern()

	a.Step(iv, false)
	for i := 0; i < 10; i++ {
		if got := a.Step(iv, false); got != steady {
			t.Fatalf("tick %d output = %#04x, want steady %#04x", i, got, steady)
		}
	}
	if a.State() != Ready {
		t.Fatalf("state = %v, want %v", a.State(), Ready)
	}
}

func TestArmingDisarmsWhenIntervalCloses(t *testing.T) {
	a := NewArming(16)
	iv := ActiveInterval{Slot: SlotPM, Day: time.Tuesday}

	a.Step(iv, false) // arm
	a.Step(iv, true)  // blinking
	if got := a.Step(NoInterval, true); got != 0 {
		t.Fatalf("inactive interval output = %#04x, want off", got)
	}
	if a.State() != Disarmed {
		t.Fatalf("state = %v, want %v", a.State(), Disarmed)
	}

	// A fresh interval arms again and accepts a new trigger.
	a.Step(iv, false)
	if a.State() != Ready {
		t.Fatalf("state = %v, want %v", a.State(), Ready)
	}
	if got := a.Step(iv, true); got != 0 {
		t.Fatalf("new blink trigger output = %#04x, want off", got)
	}
	if a.State() != Blinking {
		t.Fatalf("state = %v, want %v", a.State(), Blinking)
	}
}
