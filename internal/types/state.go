package types

type DeviceState string

const (
	StateInit         DeviceState = "init"
	StateCalibrating  DeviceState = "calibrating"
	StateAwaitingTime DeviceState = "awaiting-time"
	StateConfiguring  DeviceState = "configuring"
	StateNormal       DeviceState = "normal"
)

// Button identifies a logical front-panel button.
type Button string

const (
	ButtonSelect    Button = "select"
	ButtonIncrement Button = "increment"
)
