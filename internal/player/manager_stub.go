//go:build !unix
// +build !unix

package player

import (
	"fmt"

	"go.uber.org/zap"
)

// Manager stub for platforms without SIGSTOP/SIGCONT process control
type Manager struct {
	logger *zap.Logger
}

// NewManager creates a stub manager that rejects every spawn
func NewManager(logger *zap.Logger, bin string, args []string) *Manager {
	logger.Warn("Decoder process control is only supported on unix platforms")
	return &Manager{logger: logger}
}

// Spawn returns an error indicating the platform is not supported
func (m *Manager) Spawn(path string) error {
	return fmt.Errorf("decoder process control not supported on this platform")
}

// Pause returns an error indicating the platform is not supported
func (m *Manager) Pause() error {
	return fmt.Errorf("decoder process control not supported on this platform")
}

// Resume returns an error indicating the platform is not supported
func (m *Manager) Resume() error {
	return fmt.Errorf("decoder process control not supported on this platform")
}

// Terminate is a no-op on unsupported platforms
func (m *Manager) Terminate() {}

// PollExit always reports no exit on unsupported platforms
func (m *Manager) PollExit() bool { return false }

// Active always reports false on unsupported platforms
func (m *Manager) Active() bool { return false }
