package hardware

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Text baselines for the two lines on the 128x64 panel.
const (
	line0Baseline = 24
	line1Baseline = 52
)

// OledPanel renders the two-line status display on the SSD1306.
type OledPanel struct {
	dev *ssd1306.Dev
}

func NewOledPanel(bus i2c.Bus) (*OledPanel, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	return &OledPanel{dev: dev}, nil
}

// RenderLines replaces the whole panel with the two given lines.
func (o *OledPanel) RenderLines(line0, line1 string) error {
	img := image1bit.NewVerticalLSB(o.dev.Bounds())
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
	}
	drawer.Dot = fixed.P(0, line0Baseline)
	drawer.DrawString(line0)
	drawer.Dot = fixed.P(0, line1Baseline)
	drawer.DrawString(line1)

	if err := o.dev.Draw(o.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("failed to draw display frame: %w", err)
	}
	return nil
}
