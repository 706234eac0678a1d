//go:build !linux
// +build !linux

package input

import (
	"context"
	"fmt"

	"github.com/rcanales/gsfdeck/internal/domain"
	"go.uber.org/zap"
)

// Joystick stub for platforms without the js interface
type Joystick struct {
	logger *zap.Logger
}

// NewJoystick creates a stub input source that fails on Start
func NewJoystick(logger *zap.Logger, device string) *Joystick {
	return &Joystick{logger: logger}
}

// Start returns an error indicating joystick input is not supported
func (j *Joystick) Start(ctx context.Context) error {
	return fmt.Errorf("joystick input is only supported on Linux systems")
}

// Stop is a no-op on unsupported platforms
func (j *Joystick) Stop(ctx context.Context) error {
	return nil
}

// Events returns a closed channel since input is not available
func (j *Joystick) Events() <-chan domain.Event {
	ch := make(chan domain.Event)
	close(ch)
	return ch
}

// Axes always reports neutral triggers on unsupported platforms
func (j *Joystick) Axes() (int16, int16) {
	return 0, 0
}
