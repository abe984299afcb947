package core

import (
	"time"

	"pillbox-service/internal/logic"
	"pillbox-service/internal/messaging"
	"pillbox-service/internal/types"
)

// MessagingClient defines the interface for Redis messaging operations
// needed by PillboxSystem
type MessagingClient interface {
	SetCallbacks(callbacks messaging.Callbacks)
	Connect() error
	StartListening() error
	Close() error

	// Telemetry
	PublishDeviceState(state types.DeviceState) error
	PublishIndicator(p logic.Pattern) error
	PublishInterval(interval logic.ActiveInterval) error
	PublishTimeValid(valid bool) error
	PublishTimezoneMode(mode logic.TimezoneMode) error
}

// ClockSource reads and writes standard time. Implementations always
// store standard (never daylight-shifted) time; the local mapping is
// applied by the scheduler.
type ClockSource interface {
	ReadStandardTime() (time.Time, error)
	SetStandardTime(t time.Time) error
	TimeValid() (bool, error)
}

// IndicatorOutput drives the day/slot indicator bank as one pattern
// word. Normal operation sets at most one bit.
type IndicatorOutput interface {
	SetPattern(p logic.Pattern) error
}

// DisplayPanel renders the two-line status panel.
type DisplayPanel interface {
	RenderLines(line0, line1 string) error
}

// MotionSensor samples the PIR detector level.
type MotionSensor interface {
	Sample() (bool, error)
}

// ButtonInput samples the raw unfiltered level of a panel button.
// Debouncing happens in the scheduler, not here.
type ButtonInput interface {
	Sample(button types.Button) (bool, error)
}

// ByteStore persists single configuration bytes across power cycles.
type ByteStore interface {
	ReadByte(addr uint16) (byte, error)
	WriteByte(addr uint16, value byte) error
}
