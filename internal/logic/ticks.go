// Package logic contains the pure decision logic of the pillbox:
// tick arithmetic, non-blocking timers, button debouncing,
// standard/local time conversion, interval evaluation, blink arming
// and the configuration menu.
//
// Nothing in this package touches hardware, goroutines or the wall
// clock. Time and ticks are always injected by the caller, so every
// state machine here can be stepped deterministically in tests.
package logic

import "time"

// Ticks is a monotonic millisecond counter. It wraps at 2^32 like the
// free-running counter of a small microcontroller; elapsed-time math
// must go through TicksSince rather than comparing values directly.
type Ticks uint32

// TickFunc returns the current tick count.
type TickFunc func() Ticks

// TicksSince returns the number of milliseconds elapsed from start to
// now, correct across counter wraparound. It never assumes now is
// numerically greater than start.
func TicksSince(now, start Ticks) uint32 {
	return uint32(now - start)
}

// SystemTicks returns a TickFunc backed by the process monotonic
// clock, anchored at the moment of the call.
func SystemTicks() TickFunc {
	started := time.Now()
	return func() Ticks {
		return Ticks(time.Since(started).Milliseconds())
	}
}
