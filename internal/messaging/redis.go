package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pillbox-service/internal/logger"
	"pillbox-service/internal/logic"
	"pillbox-service/internal/types"

	"github.com/redis/go-redis/v9"
)

// The service's Redis surface is one hash mirroring the device, a
// notification channel of the same name carrying the changed field as
// payload, and one list for remote diagnostic commands.
const (
	deviceHash    = "pillbox"
	deviceChannel = "pillbox"
	selfTestList  = "pillbox:selftest"
)

type Callbacks struct {
	SelfTestCallback func() error
}

type RedisClient struct {
	client    *redis.Client
	callbacks Callbacks
	logger    *logger.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewRedisClient(host string, port int, l *logger.Logger, callbacks Callbacks) *RedisClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%d", host, port),
			DB:   0,
		}),
		callbacks: callbacks,
		logger:    l,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetCallbacks replaces the command callbacks. The system wires its
// handlers here during Start, before StartListening.
func (r *RedisClient) SetCallbacks(callbacks Callbacks) {
	r.callbacks = callbacks
}

func (r *RedisClient) Connect() error {
	r.logger.Infof("Attempting to connect to Redis at %s", r.client.Options().Addr)

	if err := r.client.Ping(r.ctx).Err(); err != nil {
		r.logger.Infof("Redis connection failed: %v", err)
		return fmt.Errorf("Redis connection failed: %w", err)
	}
	r.logger.Infof("Successfully connected to Redis")
	return nil
}

// StartListening starts the command listeners after system
// initialization is complete
func (r *RedisClient) StartListening() error {
	r.logger.Infof("Starting Redis listeners")

	r.wg.Add(1)
	go r.listCommandListener(selfTestList, r.handleSelfTestCommand)

	return nil
}

func (r *RedisClient) listCommandListener(key string, handler func(string) error) {
	defer r.wg.Done()
	r.logger.Infof("Starting list command listener for %s", key)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Infof("Context cancelled, exiting %s listener", key)
			return
		default:
			// Use BRPOP with a short timeout to allow periodic context
			// cancellation checks
			result, err := r.client.BRPop(r.ctx, 5*time.Second, key).Result()
			if err != nil {
				if err == redis.Nil {
					// Timeout elapsed, loop back to check context
					continue
				}
				if err == context.Canceled {
					r.logger.Infof("Context cancelled, exiting %s listener", key)
					return
				}
				r.logger.Infof("Error reading from %s list: %v", key, err)
				continue
			}

			if len(result) >= 2 { // BRPOP returns [key, value]
				value := result[1]
				r.logger.Debugf("Received command from %s: %s", key, value)
				if err := handler(value); err != nil {
					r.logger.Warnf("Error handling %s command: %v", key, err)
				}
			}
		}
	}
}

func (r *RedisClient) handleSelfTestCommand(value string) error {
	if r.callbacks.SelfTestCallback == nil {
		return nil
	}
	switch value {
	case "run":
		return r.callbacks.SelfTestCallback()
	default:
		r.logger.Infof("Invalid self-test command value: %s", value)
		return fmt.Errorf("invalid self-test command: %s", value)
	}
}

// publishHashSet is a helper that atomically updates a device hash
// field and publishes the field name as the change notification
func (r *RedisClient) publishHashSet(field string, value interface{}) error {
	pipe := r.client.Pipeline()
	pipe.HSet(r.ctx, deviceHash, field, value)
	pipe.Publish(r.ctx, deviceChannel, field)
	_, err := pipe.Exec(r.ctx)
	return err
}

func (r *RedisClient) PublishDeviceState(state types.DeviceState) error {
	r.logger.Infof("Publishing device state: %s", state)
	timestamp := time.Now().Format(time.RFC3339)

	// Atomically set both state and timestamp fields
	pipe := r.client.Pipeline()
	pipe.HSet(r.ctx, deviceHash, "state", string(state))
	pipe.HSet(r.ctx, deviceHash, "state:timestamp", timestamp)
	pipe.Publish(r.ctx, deviceChannel, "state")
	if _, err := pipe.Exec(r.ctx); err != nil {
		r.logger.Warnf("Failed to publish device state: %v", err)
		return err
	}
	r.logger.Debugf("Successfully published device state with timestamp: %s", timestamp)
	return nil
}

func (r *RedisClient) PublishIndicator(p logic.Pattern) error {
	r.logger.Debugf("Publishing indicator pattern: %04x", uint16(p))
	if err := r.publishHashSet("indicator", fmt.Sprintf("%04x", uint16(p))); err != nil {
		r.logger.Warnf("Failed to publish indicator pattern: %v", err)
		return err
	}
	return nil
}

func (r *RedisClient) PublishInterval(interval logic.ActiveInterval) error {
	r.logger.Debugf("Publishing active interval: %s", interval)
	if err := r.publishHashSet("interval", interval.String()); err != nil {
		r.logger.Warnf("Failed to publish active interval: %v", err)
		return err
	}
	return nil
}

func (r *RedisClient) PublishTimeValid(valid bool) error {
	r.logger.Debugf("Publishing time validity: %v", valid)
	value := "false"
	if valid {
		value = "true"
	}
	if err := r.publishHashSet("time:valid", value); err != nil {
		r.logger.Warnf("Failed to publish time validity: %v", err)
		return err
	}
	return nil
}

func (r *RedisClient) PublishTimezoneMode(mode logic.TimezoneMode) error {
	r.logger.Debugf("Publishing timezone mode: %s", mode)
	if err := r.publishHashSet("tz-mode", mode.String()); err != nil {
		r.logger.Warnf("Failed to publish timezone mode: %v", err)
		return err
	}
	return nil
}

func (r *RedisClient) Close() error {
	r.logger.Infof("Closing Redis client")
	r.cancel()

	// Wait for all goroutines to finish with a timeout
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Infof("All Redis goroutines finished")
	case <-time.After(5 * time.Second):
		r.logger.Infof("Timeout waiting for Redis goroutines to finish")
	}

	return r.client.Close()
}
