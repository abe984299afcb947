package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/librescoot/librefsm"

	"pillbox-service/internal/config"
	"pillbox-service/internal/fsm"
	"pillbox-service/internal/logger"
	"pillbox-service/internal/logic"
	"pillbox-service/internal/messaging"
)

// Hardware bundles the device collaborators the system drives. Each
// field is a narrow interface so tests can substitute any one of them.
type Hardware struct {
	Clock     ClockSource
	Indicator IndicatorOutput
	Display   DisplayPanel
	Motion    MotionSensor
	Buttons   ButtonInput
	Store     ByteStore
}

// PillboxSystem owns the scheduler loop and the device-mode state
// machine. The scheduler goroutine is the only writer of the indicator,
// the display and the persisted mode byte during steady operation;
// FSM entry actions triggered from the Redis listener share the mutex.
type PillboxSystem struct {
	mu     sync.RWMutex
	logger *logger.Logger

	hw    Hardware
	redis MessagingClient

	timing   config.Timing
	modeAddr uint16

	machine *librefsm.Machine

	eval   logic.Evaluator
	arming *logic.Arming
	menu   *logic.Menu
	mode   logic.TimezoneMode

	selectBtn    *logic.Debouncer
	incrementBtn *logic.Debouncer
	displayTimer *logic.Timer

	chaseIndex int

	// Last published/rendered values, for change-only telemetry and
	// redraw-on-change
	lastPattern   logic.Pattern
	patternKnown  bool
	lastInterval  logic.ActiveInterval
	intervalKnown bool
	lastValid     bool
	validKnown    bool
	lastLine0     string
	lastLine1     string

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewPillboxSystem wires the collaborators into a stopped system. The
// configuration is expected to have passed Validate already; only the
// parse errors surface here.
func NewPillboxSystem(cfg *config.Config, hw Hardware, redis MessagingClient, l *logger.Logger) (*PillboxSystem, error) {
	windows, err := cfg.Windows()
	if err != nil {
		return nil, fmt.Errorf("interval windows: %w", err)
	}
	timing, err := cfg.Timing()
	if err != nil {
		return nil, fmt.Errorf("timing: %w", err)
	}

	now := logic.SystemTicks()
	return &PillboxSystem{
		logger:       l,
		hw:           hw,
		redis:        redis,
		timing:       timing,
		modeAddr:     uint16(cfg.Hardware.ModeAddress),
		eval:         logic.NewEvaluator(windows),
		arming:       logic.NewArming(cfg.Blink.Toggles),
		menu:         logic.NewMenu(logic.DefaultDraft()),
		selectBtn:    logic.NewDebouncer(timing.Debounce, now),
		incrementBtn: logic.NewDebouncer(timing.Debounce, now),
		displayTimer: logic.NewTimer(now),
	}, nil
}

// Start connects the bus, restores the persisted timezone mode, starts
// the state machine and launches the scheduler loop. Cancelling the
// context stops the state machine's internal goroutines.
func (p *PillboxSystem) Start(ctx context.Context) error {
	p.logger.Infof("Starting pillbox system")

	if p.redis != nil {
		p.redis.SetCallbacks(messaging.Callbacks{
			SelfTestCallback: p.handleSelfTestRequest,
		})
		if err := p.redis.Connect(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}

	p.loadTimezoneMode()

	if err := p.initFSM(ctx); err != nil {
		return fmt.Errorf("failed to initialize state machine: %w", err)
	}

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.runScheduler()

	if err := p.sendEvent(fsm.EvBootComplete); err != nil {
		return fmt.Errorf("failed to leave init state: %w", err)
	}

	// Start Redis listeners now that everything is initialized
	if p.redis != nil {
		if err := p.redis.StartListening(); err != nil {
			return fmt.Errorf("failed to start Redis listeners: %w", err)
		}
	}

	p.logger.Infof("System started successfully")
	return nil
}

// Shutdown stops the scheduler, blanks the indicators and closes the
// bus connection.
func (p *PillboxSystem) Shutdown() {
	p.logger.Infof("Shutting down pillbox system")

	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
	}

	if err := p.hw.Indicator.SetPattern(0); err != nil {
		p.logger.Warnf("Failed to blank indicators: %v", err)
	}

	if p.redis != nil {
		if err := p.redis.Close(); err != nil {
			p.logger.Warnf("Failed to close Redis client: %v", err)
		}
	}

	p.logger.Infof("Shutdown complete")
}

// loadTimezoneMode restores the persisted mode byte and seeds the menu
// draft with it. An unreadable byte falls back to automatic DST so the
// device still comes up.
func (p *PillboxSystem) loadTimezoneMode() {
	b, err := p.hw.Store.ReadByte(p.modeAddr)
	if err != nil {
		p.logger.Warnf("Failed to read timezone mode byte: %v", err)
		b = byte(logic.AutomaticDst)
	}
	mode := logic.TimezoneModeFromByte(b)

	draft := logic.DefaultDraft()
	draft.Mode = mode

	p.mu.Lock()
	p.mode = mode
	p.menu = logic.NewMenu(draft)
	p.mu.Unlock()

	p.logger.Infof("Timezone mode: %s", mode)
	if p.redis != nil {
		if err := p.redis.PublishTimezoneMode(mode); err != nil {
			p.logger.Warnf("Failed to publish timezone mode: %v", err)
		}
	}
}

// runScheduler drives one tick per configured interval until Shutdown.
func (p *PillboxSystem) runScheduler() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.timing.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}
