package fsm

import "github.com/librescoot/librefsm"

// Device modes
const (
	StateInit         librefsm.StateID = "init"
	StateCalibrating  librefsm.StateID = "calibrating"
	StateAwaitingTime librefsm.StateID = "awaiting-time"
	StateConfiguring  librefsm.StateID = "configuring"
	StateNormal       librefsm.StateID = "normal"
)

// Device events
const (
	// Scheduler and hardware lifecycle
	EvBootComplete       librefsm.EventID = "boot-complete"
	EvCalibrationTimeout librefsm.EventID = "calibration-timeout"

	// Clock validity, re-polled every tick
	EvTimeValid   librefsm.EventID = "time-valid"
	EvTimeInvalid librefsm.EventID = "time-invalid"

	// Debounced button edges
	EvSelectEdge librefsm.EventID = "select-edge"
	EvMenuCommit librefsm.EventID = "menu-commit"

	// External commands (from Redis)
	EvSelfTest librefsm.EventID = "self-test"
)

// Timer names for imperative timers
const (
	TimerCalibration = "calibration"
)
