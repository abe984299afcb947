package core

import "pillbox-service/internal/fsm"

// handleSelfTestRequest handles self-test commands from Redis. The
// event re-enters calibrating from normal or awaiting-time and re-runs
// the indicator chase; in any other mode the machine rejects it and
// the command is dropped with a warning.
func (p *PillboxSystem) handleSelfTestRequest() error {
	p.logger.Infof("Handling self-test request")
	return p.sendEvent(fsm.EvSelfTest)
}
