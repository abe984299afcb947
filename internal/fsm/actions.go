package fsm

import "github.com/librescoot/librefsm"

// Actions defines the interface for device state machine actions.
// PillboxSystem implements this interface to handle state entry/exit
// and provide guards for conditional transitions.
type Actions interface {
	// State entry actions
	EnterCalibrating(c *librefsm.Context) error
	EnterAwaitingTime(c *librefsm.Context) error
	EnterConfiguring(c *librefsm.Context) error
	EnterNormal(c *librefsm.Context) error

	// State exit actions
	ExitCalibrating(c *librefsm.Context) error

	// Guards for conditional transitions
	IsTimeValid(c *librefsm.Context) bool // True when the clock module reports a set, running oscillator
}
