package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"pillbox-service/internal/config"
	"pillbox-service/internal/core"
	"pillbox-service/internal/hardware"
	"pillbox-service/internal/logger"
	"pillbox-service/internal/messaging"
)

func main() {
	// Service log level
	var serviceLogLevel int
	var configPath string
	flag.IntVar(&serviceLogLevel, "log", 3, "Service log level (0=NONE, 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG)")
	flag.StringVar(&configPath, "config", "/etc/pillbox-service.toml", "Path to the TOML configuration file")

	flag.Parse()

	// Create standard logger with appropriate format
	var stdLogger *log.Logger
	if os.Getenv("INVOCATION_ID") != "" {
		// Running under systemd, use minimal format
		stdLogger = log.New(os.Stdout, "", 0)
	} else {
		// Running interactively, use timestamps
		stdLogger = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
	}

	// Create leveled logger
	l := logger.NewLogger(stdLogger, logger.LogLevel(serviceLogLevel))

	l.Infof("Starting pillbox service...")

	cfg, err := config.Load(configPath)
	if err != nil {
		l.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		l.Fatalf("Invalid configuration: %v", err)
	}

	if _, err := host.Init(); err != nil {
		l.Fatalf("Failed to initialize host drivers: %v", err)
	}
	bus, err := i2creg.Open(cfg.Hardware.I2cBus)
	if err != nil {
		l.Fatalf("Failed to open I2C bus %q: %v", cfg.Hardware.I2cBus, err)
	}
	defer bus.Close()

	inputs, err := hardware.NewInputs(cfg.Hardware.GpioChip)
	if err != nil {
		l.Fatalf("Failed to initialize input lines: %v", err)
	}
	defer inputs.Close()

	indicator, err := hardware.NewShiftRegister(cfg.Hardware.GpioChip)
	if err != nil {
		l.Fatalf("Failed to initialize indicator driver: %v", err)
	}
	defer indicator.Close()

	display, err := hardware.NewOledPanel(bus)
	if err != nil {
		l.Fatalf("Failed to initialize display: %v", err)
	}

	hw := core.Hardware{
		Clock:     hardware.NewDs3231(bus),
		Indicator: indicator,
		Display:   display,
		Motion:    inputs.Pir(),
		Buttons:   inputs.Buttons(),
		Store:     hardware.NewAt24c32(bus),
	}

	var redis core.MessagingClient
	if cfg.Redis.Enabled {
		redis = messaging.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, l.WithTag("redis"), messaging.Callbacks{})
	}

	system, err := core.NewPillboxSystem(cfg, hw, redis, l)
	if err != nil {
		l.Fatalf("Failed to create system: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := system.Start(ctx); err != nil {
		l.Fatalf("Failed to start system: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	l.Infof("Received signal %v, shutting down...", sig)
	system.Shutdown()
}
