//go:build !linux

package hardware

import (
	"errors"

	"pillbox-service/internal/logic"
	"pillbox-service/internal/types"
)

// Stubs so the service builds on development hosts. GPIO character
// devices exist only on linux.

var errLinuxOnly = errors.New("gpio character devices are only supported on linux")

type Inputs struct{}

func NewInputs(chipName string) (*Inputs, error) { return nil, errLinuxOnly }

func (in *Inputs) Close() error { return nil }

func (in *Inputs) Pir() *PirSensor { return &PirSensor{} }

func (in *Inputs) Buttons() *PanelButtons { return &PanelButtons{} }

type PirSensor struct{}

func (p *PirSensor) Sample() (bool, error) { return false, errLinuxOnly }

type PanelButtons struct{}

func (b *PanelButtons) Sample(btn types.Button) (bool, error) { return false, errLinuxOnly }

type ShiftRegister struct{}

func NewShiftRegister(chipName string) (*ShiftRegister, error) { return nil, errLinuxOnly }

func (s *ShiftRegister) SetPattern(p logic.Pattern) error { return errLinuxOnly }

func (s *ShiftRegister) Close() error { return nil }
