package logic

// ArmState tracks where the one-blink-per-interval sequence stands.
type ArmState int

const (
	// Disarmed means no interval is active.
	Disarmed ArmState = iota
	// Ready means an interval is active and the next motion sample
	// triggers the blink.
	Ready
	// Blinking means the triggered blink sequence is running.
	Blinking
	// Complete means the blink for this interval has been consumed.
	Complete
)

func (s ArmState) String() string {
	switch s {
	case Disarmed:
		return "disarmed"
	case Ready:
		return "ready"
	case Blinking:
		return "blinking"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Arming sequences the motion-triggered blink so it happens exactly
// once per active interval. Step is advanced once per scheduler tick,
// so the blink cadence equals the tick cadence.
type Arming struct {
	state     ArmState
	toggles   int
	remaining int
	lit       bool
}

// NewArming returns a disarmed machine producing the given number of
// on/off toggles per triggered blink sequence.
func NewArming(toggles int) *Arming {
	return &Arming{toggles: toggles}
}

// State returns the current arm state.
func (a *Arming) State() ArmState {
	return a.state
}

// Step advances the machine one tick and returns the pattern to drive.
// Entering an interval arms without evaluating motion on that same
// tick, so a PIR output held high at the moment the interval opens
// cannot consume the blink before anyone could have seen it.
func (a *Arming) Step(interval ActiveInterval, motion bool) Pattern {
	if !interval.Active() {
		a.state = Disarmed
		return 0
	}
	steady := interval.Pattern()
	switch a.state {
	case Disarmed:
		a.state = Ready
		return steady
	case Ready:
		if !motion {
			return steady
		}
		a.state = Blinking
		a.remaining = a.toggles
		a.lit = true
		return a.blinkTick(steady)
	case Blinking:
		return a.blinkTick(steady)
	case Complete:
		return steady
	default:
		a.state = Disarmed
		return 0
	}
}

// blinkTick consumes one toggle and alternates the output, starting
// dark and finishing in Complete with the steady pattern.
func (a *Arming) blinkTick(steady Pattern) Pattern {
	a.lit = !a.lit
	a.remaining--
	if a.remaining <= 0 {
		a.state = Complete
		return steady
	}
	if a.lit {
		return steady
	}
	return 0
}
