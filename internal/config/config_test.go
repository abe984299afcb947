package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Scheduler.Tick != "250ms" || !c.Redis.Enabled {
		t.Errorf("missing file did not yield defaults: %+v", c)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillbox.toml")
	body := `
[intervals]
am_on = "07:00"
am_off = "10:00"

[blink]
toggles = 8

[redis]
enabled = false

[hardware]
gpio_chip = "gpiochip2"
mode_address = 16
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("loaded config rejected: %v", err)
	}
	if c.Intervals.AmOn != "07:00" || c.Intervals.AmOff != "10:00" {
		t.Errorf("am interval not overridden: %+v", c.Intervals)
	}
	if c.Intervals.PmOn != "18:00" {
		t.Errorf("unrelated default lost: pm_on = %q", c.Intervals.PmOn)
	}
	if c.Blink.Toggles != 8 {
		t.Errorf("toggles = %d, want 8", c.Blink.Toggles)
	}
	if c.Redis.Enabled {
		t.Error("redis.enabled not overridden")
	}
	if c.Hardware.GpioChip != "gpiochip2" || c.Hardware.ModeAddress != 16 {
		t.Errorf("hardware section not overridden: %+v", c.Hardware)
	}
}

func TestTimingParsesDefaults(t *testing.T) {
	tm, err := NewConfig().Timing()
	if err != nil {
		t.Fatalf("Timing: %v", err)
	}
	want := Timing{
		Tick:           250 * time.Millisecond,
		DisplayRefresh: time.Second,
		Debounce:       20 * time.Millisecond,
		Calibration:    10 * time.Second,
	}
	if tm != want {
		t.Errorf("Timing = %+v, want %+v", tm, want)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted am interval", func(c *Config) { c.Intervals.AmOn, c.Intervals.AmOff = c.Intervals.AmOff, c.Intervals.AmOn }},
		{"unparseable clock", func(c *Config) { c.Intervals.PmOn = "sunset" }},
		{"sub-minute midday gap", func(c *Config) { c.Intervals.AmOff = "17:59" }},
		{"sub-minute overnight gap", func(c *Config) { c.Intervals.AmOn = "00:00" }},
		{"unparseable tick", func(c *Config) { c.Scheduler.Tick = "fast" }},
		{"zero tick", func(c *Config) { c.Scheduler.Tick = "0s" }},
		{"zero toggles", func(c *Config) { c.Blink.Toggles = 0 }},
		{"mode address past the part", func(c *Config) { c.Hardware.ModeAddress = 0x1000 }},
		{"redis port out of range", func(c *Config) { c.Redis.Port = 70000 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConfig()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Validate accepted a broken config")
			}
		})
	}
}
