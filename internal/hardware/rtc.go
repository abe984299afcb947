package hardware

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// DS3231 register map, 24-hour mode.
const (
	ds3231RegSeconds = 0x00
	ds3231RegStatus  = 0x0F

	ds3231StatusOsf = 1 << 7 // oscillator stopped since last set
)

// Ds3231 is the battery-backed clock module. It always carries
// standard time; the DST policy is applied by the decision logic,
// never here.
type Ds3231 struct {
	dev *i2c.Dev
}

func NewDs3231(bus i2c.Bus) *Ds3231 {
	return &Ds3231{dev: &i2c.Dev{Bus: bus, Addr: Ds3231Addr}}
}

// ReadStandardTime reads and decodes the seven clock registers.
func (r *Ds3231) ReadStandardTime() (time.Time, error) {
	buf := make([]byte, 7)
	if err := r.dev.Tx([]byte{ds3231RegSeconds}, buf); err != nil {
		return time.Time{}, fmt.Errorf("failed to read clock registers: %w", err)
	}
	sec := fromBcd(buf[0] & 0x7F)
	min := fromBcd(buf[1] & 0x7F)
	hour := fromBcd(buf[2] & 0x3F)
	day := fromBcd(buf[4] & 0x3F)
	month := fromBcd(buf[5] & 0x1F)
	year := 2000 + fromBcd(buf[6])
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC), nil
}

// SetStandardTime writes the clock registers and clears the
// oscillator-stop flag so the time reads back as valid.
func (r *Ds3231) SetStandardTime(t time.Time) error {
	regs := []byte{
		ds3231RegSeconds,
		toBcd(t.Second()),
		toBcd(t.Minute()),
		toBcd(t.Hour()), // bit 6 clear selects 24-hour mode
		byte(t.Weekday()) + 1,
		toBcd(t.Day()),
		toBcd(int(t.Month())),
		toBcd(t.Year() % 100),
	}
	if err := r.dev.Tx(regs, nil); err != nil {
		return fmt.Errorf("failed to write clock registers: %w", err)
	}

	status := make([]byte, 1)
	if err := r.dev.Tx([]byte{ds3231RegStatus}, status); err != nil {
		return fmt.Errorf("failed to read status register: %w", err)
	}
	status[0] &^= ds3231StatusOsf
	if err := r.dev.Tx([]byte{ds3231RegStatus, status[0]}, nil); err != nil {
		return fmt.Errorf("failed to clear oscillator stop flag: %w", err)
	}
	return nil
}

// TimeValid reports whether the oscillator has run continuously since
// the clock was last set.
func (r *Ds3231) TimeValid() (bool, error) {
	status := make([]byte, 1)
	if err := r.dev.Tx([]byte{ds3231RegStatus}, status); err != nil {
		return false, fmt.Errorf("failed to read status register: %w", err)
	}
	return status[0]&ds3231StatusOsf == 0, nil
}

func toBcd(v int) byte {
	return byte(v/10<<4 | v%10)
}

func fromBcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}
