package logic

import (
	"fmt"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	daysPerWeek   = 7
)

// TimeOfDay is a clock position in minutes after midnight, 0..1439.
type TimeOfDay int

// MinuteOfDay extracts the TimeOfDay of t.
func MinuteOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay parses a 24-hour "HH:MM" clock string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return MinuteOfDay(t), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// IntervalSpec bounds one half-day active window, inclusive on both
// ends.
type IntervalSpec struct {
	On  TimeOfDay
	Off TimeOfDay
}

func (s IntervalSpec) contains(t TimeOfDay) bool {
	return t >= s.On && t <= s.Off
}

// Windows is the configured pair of daily active windows.
type Windows struct {
	AM IntervalSpec
	PM IntervalSpec
}

// Validate rejects window pairs the arming machine cannot operate on:
// out-of-range minutes, inverted bounds, or less than one full idle
// minute between adjacent windows (including the overnight PM to AM
// wrap). Without an idle minute the arming machine never observes an
// inactive tick and never re-arms for the next interval.
func (w Windows) Validate() error {
	bounds := []struct {
		name string
		spec IntervalSpec
	}{
		{"am", w.AM},
		{"pm", w.PM},
	}
	for _, b := range bounds {
		if b.spec.On < 0 || b.spec.Off >= minutesPerDay {
			return fmt.Errorf("%s window out of range: %s-%s", b.name, b.spec.On, b.spec.Off)
		}
		if b.spec.On > b.spec.Off {
			return fmt.Errorf("%s window inverted: %s-%s", b.name, b.spec.On, b.spec.Off)
		}
	}
	if w.PM.On-w.AM.Off < 2 {
		return fmt.Errorf("no idle minute between am off %s and pm on %s", w.AM.Off, w.PM.On)
	}
	if w.AM.On+minutesPerDay-w.PM.Off < 2 {
		return fmt.Errorf("no idle minute between pm off %s and am on %s", w.PM.Off, w.AM.On)
	}
	return nil
}

// Slot identifies which half-day an interval belongs to.
type Slot int

const (
	SlotNone Slot = iota
	SlotAM
	SlotPM
)

// ActiveInterval is the evaluation result for one instant: either no
// active window, or the AM/PM window of a specific weekday.
type ActiveInterval struct {
	Slot Slot
	Day  time.Weekday
}

// NoInterval is the inactive evaluation result.
var NoInterval = ActiveInterval{Slot: SlotNone}

// Active reports whether any window matched.
func (ai ActiveInterval) Active() bool {
	return ai.Slot != SlotNone
}

// Pattern returns the indicator bitmask for the interval: bits 0-6 are
// AM Sunday through Saturday, bits 7-13 PM Sunday through Saturday.
// At most one bit is set.
func (ai ActiveInterval) Pattern() Pattern {
	switch ai.Slot {
	case SlotAM:
		return 1 << uint(ai.Day)
	case SlotPM:
		return 1 << (uint(ai.Day) + daysPerWeek)
	default:
		return 0
	}
}

func (ai ActiveInterval) String() string {
	switch ai.Slot {
	case SlotAM:
		return "am:" + strings.ToLower(ai.Day.String())
	case SlotPM:
		return "pm:" + strings.ToLower(ai.Day.String())
	default:
		return "none"
	}
}

// Pattern is the 14-bit indicator selection shifted out to the
// drivers. Normal operation sets at most one bit; the calibration
// chase walks a single bit across all positions.
type Pattern uint16

// IndicatorCount is the number of physical indicators.
const IndicatorCount = 2 * daysPerWeek

// Evaluator maps local time to the active interval.
type Evaluator struct {
	win Windows
}

// NewEvaluator returns an evaluator over validated windows.
func NewEvaluator(w Windows) Evaluator {
	return Evaluator{win: w}
}

// Evaluate returns the interval containing the local instant, if any.
// Bounds are inclusive on both ends; the Windows invariant guarantees
// at most one branch can match.
func (e Evaluator) Evaluate(local time.Time) ActiveInterval {
	t := MinuteOfDay(local)
	switch {
	case e.win.AM.contains(t):
		return ActiveInterval{Slot: SlotAM, Day: local.Weekday()}
	case e.win.PM.contains(t):
		return ActiveInterval{Slot: SlotPM, Day: local.Weekday()}
	default:
		return NoInterval
	}
}
