//go:build linux
// +build linux

package input

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcanales/gsfdeck/internal/domain"
	"go.uber.org/zap"
)

// Joystick reads the Linux js interface and emits domain events.
// Trigger axes are not queued; the latest samples are cached and read
// once per tick through Axes.
type Joystick struct {
	logger *zap.Logger
	device string
	events chan domain.Event

	mu              sync.Mutex
	running         bool
	f               *os.File
	lastDropWarning time.Time

	wg    sync.WaitGroup
	left  atomic.Int32
	right atomic.Int32
}

// NewJoystick creates an input source for the given device path
func NewJoystick(logger *zap.Logger, device string) *Joystick {
	return &Joystick{
		logger: logger,
		device: device,
		events: make(chan domain.Event, 32),
	}
}

// Start opens the device and begins the reader goroutine. Non-blocking.
func (j *Joystick) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return nil
	}
	f, err := os.Open(j.device)
	if err != nil {
		return fmt.Errorf("failed to open joystick %s: %w", j.device, err)
	}
	j.f = f
	j.running = true

	j.wg.Add(1)
	go j.readLoop()

	j.logger.Info("Joystick opened", zap.String("device", j.device))
	return nil
}

// Stop closes the device, which unblocks the reader, then closes the
// event channel once the reader has drained out
func (j *Joystick) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return nil
	}
	j.running = false
	err := j.f.Close()
	j.mu.Unlock()

	j.wg.Wait()
	close(j.events)

	j.logger.Info("Joystick closed", zap.String("device", j.device))
	if err != nil {
		return fmt.Errorf("failed to close joystick: %w", err)
	}
	return nil
}

// Events returns the channel of discrete button-press events
func (j *Joystick) Events() <-chan domain.Event {
	return j.events
}

// Axes returns the most recent left and right trigger samples
func (j *Joystick) Axes() (int16, int16) {
	return int16(j.left.Load()), int16(j.right.Load())
}

func (j *Joystick) readLoop() {
	defer j.wg.Done()

	tr := &translator{}
	buf := make([]byte, eventSize)
	for {
		if _, err := io.ReadFull(j.f, buf); err != nil {
			// Device closed by Stop, or unplugged
			j.logger.Debug("Joystick reader stopped", zap.Error(err))
			return
		}
		ev := decodeEvent(buf)
		for _, out := range tr.translate(ev) {
			j.emit(out)
		}
		j.left.Store(int32(tr.left))
		j.right.Store(int32(tr.right))
	}
}

// emit queues an event without ever blocking the reader; the controller
// drains the queue once per tick
func (j *Joystick) emit(ev domain.Event) {
	select {
	case j.events <- ev:
	default:
		j.logDropWarning()
	}
}

// logDropWarning rate-limits the channel-full warning to one per 5s
func (j *Joystick) logDropWarning() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if time.Since(j.lastDropWarning) < 5*time.Second {
		return
	}
	j.lastDropWarning = time.Now()
	j.logger.Warn("Input event queue full, dropping events")
}
