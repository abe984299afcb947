package fsm

import "github.com/librescoot/librefsm"

// NewDefinition creates the device-mode FSM definition. The actions
// parameter provides the implementation for state entry/exit and
// guards. The calibration timeout is started imperatively on state
// entry because its duration comes from configuration.
func NewDefinition(actions Actions) *librefsm.Definition {
	return librefsm.NewDefinition().
		// States
		State(StateInit).
		State(StateCalibrating,
			librefsm.WithOnEnter(actions.EnterCalibrating),
			librefsm.WithOnExit(actions.ExitCalibrating),
		).
		State(StateAwaitingTime,
			librefsm.WithOnEnter(actions.EnterAwaitingTime),
		).
		State(StateConfiguring,
			librefsm.WithOnEnter(actions.EnterConfiguring),
		).
		State(StateNormal,
			librefsm.WithOnEnter(actions.EnterNormal),
		).

		// === Transitions ===

		// From Init - hardware is up, run the indicator chase while the
		// motion sensor stabilizes
		Transition(StateInit, EvBootComplete, StateCalibrating).

		// From Calibrating - the guarded transition wins when the clock
		// is already set, otherwise fall through to awaiting-time
		Transition(StateCalibrating, EvCalibrationTimeout, StateNormal,
			librefsm.WithGuard(actions.IsTimeValid),
		).
		Transition(StateCalibrating, EvCalibrationTimeout, StateAwaitingTime).

		// From AwaitingTime - the menu is the only recovery path, but a
		// clock that comes back on its own is honored too
		Transition(StateAwaitingTime, EvSelectEdge, StateConfiguring).
		Transition(StateAwaitingTime, EvTimeValid, StateNormal).
		Transition(StateAwaitingTime, EvSelfTest, StateCalibrating).

		// From Normal
		Transition(StateNormal, EvSelectEdge, StateConfiguring).
		Transition(StateNormal, EvTimeInvalid, StateAwaitingTime).
		Transition(StateNormal, EvSelfTest, StateCalibrating).

		// From Configuring - committing the draft is the only exit
		Transition(StateConfiguring, EvMenuCommit, StateNormal).

		// Initial state
		Initial(StateInit)
}
