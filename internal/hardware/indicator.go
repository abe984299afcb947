//go:build linux

package hardware

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"pillbox-service/internal/logic"
)

// ShiftRegister drives the fourteen indicators through two
// daisy-chained 8-bit registers on three GPIO lines.
type ShiftRegister struct {
	mu    sync.Mutex // serializes the bit-bang across writers
	chip  *gpiocdev.Chip
	data  *gpiocdev.Line
	clock *gpiocdev.Line
	latch *gpiocdev.Line
}

func NewShiftRegister(chipName string) (*ShiftRegister, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPIO chip %s: %w", chipName, err)
	}
	s := &ShiftRegister{chip: chip}

	request := func(name string) (*gpiocdev.Line, error) {
		offset := IndicatorMappings[name]
		line, err := chip.RequestLine(offset,
			gpiocdev.AsOutput(0),
			gpiocdev.WithConsumer("pillbox-service"))
		if err != nil {
			return nil, fmt.Errorf("failed to request GPIO line %d for %s: %w", offset, name, err)
		}
		return line, nil
	}

	if s.data, err = request("sr_data"); err != nil {
		s.Close()
		return nil, err
	}
	if s.clock, err = request("sr_clock"); err != nil {
		s.Close()
		return nil, err
	}
	if s.latch, err = request("sr_latch"); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// SetPattern shifts the 16-bit pattern out MSB first, so bit 0 lands
// on the first AM indicator, then pulses the latch so all indicators
// change at once.
func (s *ShiftRegister) SetPattern(p logic.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 15; i >= 0; i-- {
		bit := 0
		if p&(1<<uint(i)) != 0 {
			bit = 1
		}
		if err := s.data.SetValue(bit); err != nil {
			return fmt.Errorf("failed to set data line: %w", err)
		}
		if err := s.clock.SetValue(1); err != nil {
			return fmt.Errorf("failed to raise clock line: %w", err)
		}
		if err := s.clock.SetValue(0); err != nil {
			return fmt.Errorf("failed to lower clock line: %w", err)
		}
	}
	if err := s.latch.SetValue(1); err != nil {
		return fmt.Errorf("failed to raise latch line: %w", err)
	}
	if err := s.latch.SetValue(0); err != nil {
		return fmt.Errorf("failed to lower latch line: %w", err)
	}
	return nil
}

// Close blanks the indicators and releases the lines.
func (s *ShiftRegister) Close() error {
	if s.data != nil && s.clock != nil && s.latch != nil {
		s.SetPattern(0)
	}
	for _, line := range []*gpiocdev.Line{s.data, s.clock, s.latch} {
		if line != nil {
			line.Close()
		}
	}
	if s.chip != nil {
		return s.chip.Close()
	}
	return nil
}
