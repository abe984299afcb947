package core

import (
	"context"

	"github.com/librescoot/librefsm"

	"pillbox-service/internal/fsm"
	"pillbox-service/internal/types"
)

// Ensure PillboxSystem implements fsm.Actions
var _ fsm.Actions = (*PillboxSystem)(nil)

// stateIDToDeviceState converts librefsm StateID to types.DeviceState
func stateIDToDeviceState(id librefsm.StateID) types.DeviceState {
	switch id {
	case fsm.StateInit:
		return types.StateInit
	case fsm.StateCalibrating:
		return types.StateCalibrating
	case fsm.StateAwaitingTime:
		return types.StateAwaitingTime
	case fsm.StateConfiguring:
		return types.StateConfiguring
	case fsm.StateNormal:
		return types.StateNormal
	default:
		return types.DeviceState(string(id))
	}
}

// initFSM initializes and starts the librefsm machine
func (p *PillboxSystem) initFSM(ctx context.Context) error {
	def := fsm.NewDefinition(p)
	machine, err := def.Build()
	if err != nil {
		return err
	}
	p.machine = machine

	p.machine.OnStateChange(func(from, to librefsm.StateID) {
		newState := stateIDToDeviceState(to)
		p.logger.Infof("State transition: %s -> %s", stateIDToDeviceState(from), newState)

		// Publish directly using the known new state (asking the machine
		// for its state here would deadlock on the FSM mutex)
		if p.redis != nil {
			if err := p.redis.PublishDeviceState(newState); err != nil {
				p.logger.Errorf("Failed to publish state: %v", err)
			}
		}
	})

	if err := p.machine.Start(ctx); err != nil {
		return err
	}

	p.logger.Infof("librefsm state machine started")
	return nil
}

// sendEvent sends an event to the FSM
func (p *PillboxSystem) sendEvent(event librefsm.EventID) error {
	return p.machine.SendSync(librefsm.Event{ID: event})
}

// getCurrentState returns the device state as seen by the FSM.
func (p *PillboxSystem) getCurrentState() types.DeviceState {
	if p.machine == nil {
		return types.StateInit
	}
	return stateIDToDeviceState(p.machine.CurrentState())
}

// === State Entry Actions ===

func (p *PillboxSystem) EnterCalibrating(c *librefsm.Context) error {
	p.logger.Debugf("FSM: EnterCalibrating")

	p.mu.Lock()
	p.chaseIndex = 0
	p.mu.Unlock()

	// The timeout duration comes from configuration, so the timer is
	// started here rather than declared on the state
	p.machine.StartTimer(fsm.TimerCalibration, p.timing.Calibration, librefsm.Event{ID: fsm.EvCalibrationTimeout})
	p.logger.Infof("Started calibration timer: %s", p.timing.Calibration)

	p.render("CALIBRATING...", "")
	return nil
}

func (p *PillboxSystem) EnterAwaitingTime(c *librefsm.Context) error {
	p.logger.Debugf("FSM: EnterAwaitingTime")
	p.render("CLOCK NOT SET", "PRESS SET")
	return nil
}

func (p *PillboxSystem) EnterConfiguring(c *librefsm.Context) error {
	p.logger.Debugf("FSM: EnterConfiguring")

	p.mu.Lock()
	p.menu.Enter()
	p.mu.Unlock()

	p.renderMenu()
	return nil
}

func (p *PillboxSystem) EnterNormal(c *librefsm.Context) error {
	p.logger.Debugf("FSM: EnterNormal")

	// Fresh redraw interval; the first normal tick renders immediately
	// because its content differs from the previous mode's screen
	p.mu.Lock()
	p.displayTimer.Stop()
	p.mu.Unlock()

	return nil
}

// === State Exit Actions ===

func (p *PillboxSystem) ExitCalibrating(c *librefsm.Context) error {
	p.logger.Debugf("FSM: ExitCalibrating")

	p.machine.StopTimer(fsm.TimerCalibration)

	if err := p.hw.Indicator.SetPattern(0); err != nil {
		p.logger.Errorf("Failed to blank indicators after calibration: %v", err)
	}
	return nil
}

// === Guards ===

func (p *PillboxSystem) IsTimeValid(c *librefsm.Context) bool {
	valid, err := p.hw.Clock.TimeValid()
	if err != nil {
		p.logger.Errorf("Failed to read clock validity in guard: %v", err)
		return false
	}
	return valid
}
