package logic

import "time"

// Timer is a restartable non-blocking interval timer. It fires no
// callbacks and holds no goroutines; the owner polls it once per
// scheduler pass and reacts to the single expiry report.
type Timer struct {
	now     TickFunc
	running bool
	start   Ticks
}

// NewTimer returns a stopped timer reading ticks from now.
func NewTimer(now TickFunc) *Timer {
	return &Timer{now: now}
}

// Poll starts the timer if it is stopped and reports whether the
// interval is still pending. It returns true while elapsed time is
// under d, then false exactly once when the interval first reaches or
// exceeds d. The next call after an expiry starts a fresh interval.
func (t *Timer) Poll(d time.Duration) bool {
	if !t.running {
		t.running = true
		t.start = t.now()
		return true
	}
	if TicksSince(t.now(), t.start) < uint32(d.Milliseconds()) {
		return true
	}
	t.running = false
	return false
}

// Stop cancels the pending interval so the next Poll starts fresh.
func (t *Timer) Stop() {
	t.running = false
}
