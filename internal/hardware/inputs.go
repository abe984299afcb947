//go:build linux

package hardware

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"pillbox-service/internal/types"
)

// Inputs owns the PIR and button lines on one GPIO chip. The lines are
// polled, not event-driven: the scheduler samples once per tick and
// the debouncers absorb contact noise.
type Inputs struct {
	chip  *gpiocdev.Chip
	lines map[string]*gpiocdev.Line
}

func NewInputs(chipName string) (*Inputs, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPIO chip %s: %w", chipName, err)
	}

	in := &Inputs{chip: chip, lines: make(map[string]*gpiocdev.Line)}
	for name, offset := range InputMappings {
		line, err := chip.RequestLine(offset,
			gpiocdev.AsInput,
			gpiocdev.WithPullDown,
			gpiocdev.WithConsumer("pillbox-service"))
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("failed to request GPIO line %d for %s: %w", offset, name, err)
		}
		in.lines[name] = line
	}
	return in, nil
}

func (in *Inputs) sample(channel string) (bool, error) {
	line, exists := in.lines[channel]
	if !exists {
		return false, fmt.Errorf("unknown input channel: %s", channel)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", channel, err)
	}
	return v != 0, nil
}

// Close releases all requested lines and the chip.
func (in *Inputs) Close() error {
	for _, line := range in.lines {
		line.Close()
	}
	if in.chip != nil {
		return in.chip.Close()
	}
	return nil
}

// Pir returns the motion sensor view of the inputs.
func (in *Inputs) Pir() *PirSensor {
	return &PirSensor{in: in}
}

// Buttons returns the front-panel button view of the inputs.
func (in *Inputs) Buttons() *PanelButtons {
	return &PanelButtons{in: in}
}

// PirSensor samples the motion detector line.
type PirSensor struct {
	in *Inputs
}

func (p *PirSensor) Sample() (bool, error) {
	return p.in.sample("pir")
}

// PanelButtons samples the select and increment lines.
type PanelButtons struct {
	in *Inputs
}

func (b *PanelButtons) Sample(btn types.Button) (bool, error) {
	switch btn {
	case types.ButtonSelect:
		return b.in.sample("button_select")
	case types.ButtonIncrement:
		return b.in.sample("button_increment")
	default:
		return false, fmt.Errorf("unknown button: %s", btn)
	}
}
