package hardware

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// At24c32 is the 4KB configuration EEPROM on the clock module board.
// Only single-byte traffic is needed; addresses are two bytes
// big-endian on the wire.
type At24c32 struct {
	dev *i2c.Dev
}

func NewAt24c32(bus i2c.Bus) *At24c32 {
	return &At24c32{dev: &i2c.Dev{Bus: bus, Addr: At24c32Addr}}
}

func (e *At24c32) ReadByte(addr uint16) (byte, error) {
	buf := make([]byte, 1)
	if err := e.dev.Tx([]byte{byte(addr >> 8), byte(addr)}, buf); err != nil {
		return 0, fmt.Errorf("failed to read EEPROM byte at %#04x: %w", addr, err)
	}
	return buf[0], nil
}

func (e *At24c32) WriteByte(addr uint16, value byte) error {
	if err := e.dev.Tx([]byte{byte(addr >> 8), byte(addr), value}, nil); err != nil {
		return fmt.Errorf("failed to write EEPROM byte at %#04x: %w", addr, err)
	}
	// The part needs its internal write cycle before the next access.
	time.Sleep(5 * time.Millisecond)
	return nil
}
