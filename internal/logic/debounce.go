package logic

import "time"

// Debouncer confirms raw button samples once they have held steady for
// a threshold, emitting a single edge per physical press. One instance
// exists per logical button and its Poll is called once per scheduler
// pass with the freshest raw sample.
type Debouncer struct {
	now        TickFunc
	threshold  uint32 // milliseconds
	stable     bool
	debouncing bool
	observed   bool
	since      Ticks
}

// NewDebouncer returns a debouncer with the given stability threshold.
// The confirmed state starts released.
func NewDebouncer(threshold time.Duration, now TickFunc) *Debouncer {
	return &Debouncer{now: now, threshold: uint32(threshold.Milliseconds())}
}

// Poll feeds one raw sample and reports whether a press edge was
// confirmed this pass. A change from the confirmed state opens an
// observation window; once the threshold has elapsed the current
// sample acts as the re-sample and either commits the change or
// discards it as noise. Release edges are absorbed: Poll returns true
// only when the newly confirmed state is pressed.
func (d *Debouncer) Poll(rawPressed bool) bool {
	if !d.debouncing {
		if rawPressed == d.stable {
			return false
		}
		d.observed = rawPressed
		d.since = d.now()
		d.debouncing = true
		return false
	}
	if TicksSince(d.now(), d.since) < d.threshold {
		return false
	}
	d.debouncing = false
	if rawPressed != d.observed {
		return false
	}
	d.stable = d.observed
	return d.stable
}

// Pressed reports the last confirmed state.
func (d *Debouncer) Pressed() bool {
	return d.stable
}
