package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"pillbox-service/internal/logic"
)

// Config is the service configuration, loaded from a TOML file over
// built-in defaults. Duration fields are strings for
// time.ParseDuration; interval bounds are 24-hour "HH:MM" strings.
type Config struct {
	Intervals struct {
		AmOn  string `toml:"am_on"`
		AmOff string `toml:"am_off"`
		PmOn  string `toml:"pm_on"`
		PmOff string `toml:"pm_off"`
	} `toml:"intervals"`

	Blink struct {
		Toggles int `toml:"toggles"`
	} `toml:"blink"`

	Buttons struct {
		Debounce string `toml:"debounce"`
	} `toml:"buttons"`

	Scheduler struct {
		Tick           string `toml:"tick"`
		DisplayRefresh string `toml:"display_refresh"`
	} `toml:"scheduler"`

	Calibration struct {
		Duration string `toml:"duration"`
	} `toml:"calibration"`

	Redis struct {
		Enabled bool   `toml:"enabled"`
		Host    string `toml:"host"`
		Port    int    `toml:"port"`
	} `toml:"redis"`

	Hardware struct {
		GpioChip    string `toml:"gpio_chip"`
		I2cBus      string `toml:"i2c_bus"`
		ModeAddress int    `toml:"mode_address"`
	} `toml:"hardware"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	c := &Config{}
	c.Intervals.AmOn = "06:00"
	c.Intervals.AmOff = "11:59"
	c.Intervals.PmOn = "18:00"
	c.Intervals.PmOff = "23:59"
	c.Blink.Toggles = 16
	c.Buttons.Debounce = "20ms"
	c.Scheduler.Tick = "250ms"
	c.Scheduler.DisplayRefresh = "1s"
	c.Calibration.Duration = "10s"
	c.Redis.Enabled = true
	c.Redis.Host = "localhost"
	c.Redis.Port = 6379
	c.Hardware.GpioChip = "gpiochip0"
	c.Hardware.I2cBus = "1"
	c.Hardware.ModeAddress = 0
	return c
}

// Load reads the TOML file at path over the defaults. A missing file
// is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	c := NewConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// Windows parses the configured interval bounds.
func (c *Config) Windows() (logic.Windows, error) {
	var w logic.Windows
	var err error
	if w.AM.On, err = logic.ParseTimeOfDay(c.Intervals.AmOn); err != nil {
		return w, fmt.Errorf("intervals.am_on: %w", err)
	}
	if w.AM.Off, err = logic.ParseTimeOfDay(c.Intervals.AmOff); err != nil {
		return w, fmt.Errorf("intervals.am_off: %w", err)
	}
	if w.PM.On, err = logic.ParseTimeOfDay(c.Intervals.PmOn); err != nil {
		return w, fmt.Errorf("intervals.pm_on: %w", err)
	}
	if w.PM.Off, err = logic.ParseTimeOfDay(c.Intervals.PmOff); err != nil {
		return w, fmt.Errorf("intervals.pm_off: %w", err)
	}
	return w, nil
}

// Timing bundles the parsed duration fields.
type Timing struct {
	Tick           time.Duration
	DisplayRefresh time.Duration
	Debounce       time.Duration
	Calibration    time.Duration
}

// Timing parses the configured durations.
func (c *Config) Timing() (Timing, error) {
	var t Timing
	var err error
	if t.Tick, err = time.ParseDuration(c.Scheduler.Tick); err != nil {
		return t, fmt.Errorf("scheduler.tick: %w", err)
	}
	if t.DisplayRefresh, err = time.ParseDuration(c.Scheduler.DisplayRefresh); err != nil {
		return t, fmt.Errorf("scheduler.display_refresh: %w", err)
	}
	if t.Debounce, err = time.ParseDuration(c.Buttons.Debounce); err != nil {
		return t, fmt.Errorf("buttons.debounce: %w", err)
	}
	if t.Calibration, err = time.ParseDuration(c.Calibration.Duration); err != nil {
		return t, fmt.Errorf("calibration.duration: %w", err)
	}
	return t, nil
}

// Validate checks everything the scheduler depends on: parseable
// clock and duration fields, a positive toggle count, and interval
// windows the arming machine can operate on. The service refuses to
// start on any failure here.
func (c *Config) Validate() error {
	w, err := c.Windows()
	if err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	t, err := c.Timing()
	if err != nil {
		return err
	}
	if t.Tick <= 0 || t.DisplayRefresh <= 0 || t.Debounce <= 0 || t.Calibration <= 0 {
		return fmt.Errorf("scheduler durations must be positive")
	}
	if c.Blink.Toggles < 1 {
		return fmt.Errorf("blink.toggles must be at least 1, got %d", c.Blink.Toggles)
	}
	if c.Hardware.ModeAddress < 0 || c.Hardware.ModeAddress > 0x0FFF {
		return fmt.Errorf("hardware.mode_address %#x outside the 4KB part", c.Hardware.ModeAddress)
	}
	if c.Redis.Enabled && (c.Redis.Port < 1 || c.Redis.Port > 65535) {
		return fmt.Errorf("redis.port %d out of range", c.Redis.Port)
	}
	return nil
}
