package core

import (
	"strings"
	"time"

	"pillbox-service/internal/fsm"
	"pillbox-service/internal/logic"
	"pillbox-service/internal/types"
)

// tick runs one scheduler pass. The work depends on the device mode:
// the indicator chase in calibrating, clock polling in awaiting-time,
// evaluate/arm/render in normal, menu stepping in configuring.
func (p *PillboxSystem) tick() {
	selectEdge, incrementEdge := p.pollButtons()

	switch p.getCurrentState() {
	case types.StateCalibrating:
		p.tickCalibrating()
	case types.StateAwaitingTime:
		p.tickAwaitingTime(selectEdge)
	case types.StateNormal:
		p.tickNormal(selectEdge)
	case types.StateConfiguring:
		p.tickConfiguring(selectEdge, incrementEdge)
	}
}

// pollButtons samples both panel buttons and feeds the debouncers,
// returning the confirmed press edges for this pass. Sampling happens
// in every mode so held buttons cannot replay stale edges after a mode
// change.
func (p *PillboxSystem) pollButtons() (selectEdge, incrementEdge bool) {
	raw, err := p.hw.Buttons.Sample(types.ButtonSelect)
	if err != nil {
		p.logger.Errorf("Failed to sample select button: %v", err)
		raw = false
	}
	selectEdge = p.selectBtn.Poll(raw)

	raw, err = p.hw.Buttons.Sample(types.ButtonIncrement)
	if err != nil {
		p.logger.Errorf("Failed to sample increment button: %v", err)
		raw = false
	}
	incrementEdge = p.incrementBtn.Poll(raw)

	return selectEdge, incrementEdge
}

// tickCalibrating walks a single lit indicator across the bank, one
// position per tick, while the motion sensor stabilizes. Buttons are
// ignored here.
func (p *PillboxSystem) tickCalibrating() {
	p.mu.Lock()
	idx := p.chaseIndex
	p.chaseIndex = (p.chaseIndex + 1) % logic.IndicatorCount
	p.mu.Unlock()

	if err := p.hw.Indicator.SetPattern(1 << uint(idx)); err != nil {
		p.logger.Errorf("Failed to drive calibration chase: %v", err)
	}
}

// tickAwaitingTime polls for the clock coming back and lets a select
// press open the menu, which is the usual recovery path.
func (p *PillboxSystem) tickAwaitingTime(selectEdge bool) {
	valid, err := p.hw.Clock.TimeValid()
	if err != nil {
		p.logger.Errorf("Failed to read clock validity: %v", err)
		valid = false
	}
	p.publishTimeValid(valid)

	if valid {
		if err := p.sendEvent(fsm.EvTimeValid); err != nil {
			p.logger.Errorf("Failed to send time-valid event: %v", err)
		}
		return
	}

	if selectEdge {
		if err := p.sendEvent(fsm.EvSelectEdge); err != nil {
			p.logger.Errorf("Failed to send select edge: %v", err)
		}
	}
}

// tickNormal runs the evaluate, arm, output pass: standard time from
// the clock, local time under the active mode, interval match, arming
// step with the motion sample, then indicator write and display render.
func (p *PillboxSystem) tickNormal(selectEdge bool) {
	if selectEdge {
		if err := p.sendEvent(fsm.EvSelectEdge); err != nil {
			p.logger.Errorf("Failed to send select edge: %v", err)
		}
		return
	}

	standard, err := p.hw.Clock.ReadStandardTime()
	if err != nil {
		p.logger.Errorf("Failed to read clock: %v", err)
		p.publishTimeValid(false)
		if err := p.sendEvent(fsm.EvTimeInvalid); err != nil {
			p.logger.Errorf("Failed to send time-invalid event: %v", err)
		}
		return
	}
	valid, err := p.hw.Clock.TimeValid()
	if err != nil {
		p.logger.Errorf("Failed to read clock validity: %v", err)
		valid = false
	}
	p.publishTimeValid(valid)
	if !valid {
		if err := p.sendEvent(fsm.EvTimeInvalid); err != nil {
			p.logger.Errorf("Failed to send time-invalid event: %v", err)
		}
		return
	}

	p.mu.RLock()
	mode := p.mode
	p.mu.RUnlock()

	local := logic.ToLocal(standard, mode)
	interval := p.eval.Evaluate(local)

	motion, err := p.hw.Motion.Sample()
	if err != nil {
		p.logger.Errorf("Failed to sample motion sensor: %v", err)
		motion = false
	}

	pattern := p.arming.Step(interval, motion)
	if err := p.hw.Indicator.SetPattern(pattern); err != nil {
		p.logger.Errorf("Failed to drive indicators: %v", err)
	}

	p.publishIndicator(pattern)
	p.publishInterval(interval)

	p.renderNormal(local, interval)
}

// tickConfiguring drives the menu with the debounced edges. A commit
// programs the clock, persists the mode byte and returns to normal.
func (p *PillboxSystem) tickConfiguring(selectEdge, incrementEdge bool) {
	if selectEdge {
		p.mu.Lock()
		p.menu.Select()
		p.mu.Unlock()
		p.renderMenu()
		return
	}

	if !incrementEdge {
		return
	}

	p.mu.Lock()
	committed := p.menu.Increment()
	p.mu.Unlock()

	if !committed {
		p.renderMenu()
		return
	}

	p.commitDraft()
	if err := p.sendEvent(fsm.EvMenuCommit); err != nil {
		p.logger.Errorf("Failed to send menu-commit event: %v", err)
	}
}

// commitDraft converts the drafted local time to standard time under
// the drafted mode, programs the clock and persists the mode byte.
// Write failures are logged; the device keeps running on the old clock.
func (p *PillboxSystem) commitDraft() {
	p.mu.Lock()
	draft := p.menu.Draft()
	p.mu.Unlock()

	standard := logic.ToStandard(draft.LocalTime(), draft.Mode)
	if err := p.hw.Clock.SetStandardTime(standard); err != nil {
		p.logger.Errorf("Failed to program clock: %v", err)
	}
	if err := p.hw.Store.WriteByte(p.modeAddr, byte(draft.Mode)); err != nil {
		p.logger.Errorf("Failed to persist timezone mode: %v", err)
	}

	p.mu.Lock()
	changed := p.mode != draft.Mode
	p.mode = draft.Mode
	p.mu.Unlock()

	if changed && p.redis != nil {
		if err := p.redis.PublishTimezoneMode(draft.Mode); err != nil {
			p.logger.Warnf("Failed to publish timezone mode: %v", err)
		}
	}

	p.logger.Infof("Committed clock %s (%s)", standard.Format(time.RFC3339), draft.Mode)
}

// === Display ===

// renderNormal draws the local clock line and the interval caption,
// redrawing on content change or at the display refresh cadence.
func (p *PillboxSystem) renderNormal(local time.Time, interval logic.ActiveInterval) {
	line0 := strings.ToUpper(local.Format("Mon 03:04 PM"))

	var line1 string
	switch interval.Slot {
	case logic.SlotAM:
		line1 = "MORNING PILLS"
	case logic.SlotPM:
		line1 = "EVENING PILLS"
	}

	p.mu.Lock()
	expired := !p.displayTimer.Poll(p.timing.DisplayRefresh)
	changed := line0 != p.lastLine0 || line1 != p.lastLine1
	if changed || expired {
		p.renderLocked(line0, line1)
	}
	p.mu.Unlock()
}

// renderMenu draws the field label and drafted value under the cursor.
func (p *PillboxSystem) renderMenu() {
	p.mu.Lock()
	p.renderLocked(p.menu.FieldLabel(), p.menu.FieldValue())
	p.mu.Unlock()
}

// render writes both display lines unless they match what is already
// shown.
func (p *PillboxSystem) render(line0, line1 string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if line0 == p.lastLine0 && line1 == p.lastLine1 {
		return
	}
	p.renderLocked(line0, line1)
}

// renderLocked writes the panel and records the content. Callers hold
// the mutex so panel traffic never interleaves.
func (p *PillboxSystem) renderLocked(line0, line1 string) {
	if err := p.hw.Display.RenderLines(line0, line1); err != nil {
		p.logger.Errorf("Failed to render display: %v", err)
		return
	}
	p.lastLine0 = line0
	p.lastLine1 = line1
}

// === Telemetry ===

// publishTimeValid mirrors clock validity to the bus on change.
func (p *PillboxSystem) publishTimeValid(valid bool) {
	p.mu.Lock()
	changed := !p.validKnown || valid != p.lastValid
	p.validKnown = true
	p.lastValid = valid
	p.mu.Unlock()

	if !changed || p.redis == nil {
		return
	}
	if err := p.redis.PublishTimeValid(valid); err != nil {
		p.logger.Warnf("Failed to publish time validity: %v", err)
	}
}

// publishIndicator mirrors the driven pattern to the bus on change.
func (p *PillboxSystem) publishIndicator(pattern logic.Pattern) {
	p.mu.Lock()
	changed := !p.patternKnown || pattern != p.lastPattern
	p.patternKnown = true
	p.lastPattern = pattern
	p.mu.Unlock()

	if !changed || p.redis == nil {
		return
	}
	if err := p.redis.PublishIndicator(pattern); err != nil {
		p.logger.Warnf("Failed to publish indicator pattern: %v", err)
	}
}

// publishInterval mirrors the active interval to the bus on change.
func (p *PillboxSystem) publishInterval(interval logic.ActiveInterval) {
	p.mu.Lock()
	changed := !p.intervalKnown || interval != p.lastInterval
	p.intervalKnown = true
	p.lastInterval = interval
	p.mu.Unlock()

	if !changed || p.redis == nil {
		return
	}
	if err := p.redis.PublishInterval(interval); err != nil {
		p.logger.Warnf("Failed to publish active interval: %v", err)
	}
}
