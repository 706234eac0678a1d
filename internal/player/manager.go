//go:build unix
// +build unix

package player

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"

	"github.com/rcanales/gsfdeck/internal/domain"
	"go.uber.org/zap"
)

// Manager owns exactly zero or one external decoder process. Pause and
// resume use SIGSTOP/SIGCONT; termination is SIGKILL followed by a
// synchronous reap so no zombie survives a tick.
type Manager struct {
	logger *zap.Logger
	bin    string
	args   []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	done   chan error // receives the Wait result of the current process
	paused bool
	exited bool // forced exit observed but not yet consumed by PollExit
}

// NewManager creates a manager that spawns bin with the given fixed
// arguments plus the track path
func NewManager(logger *zap.Logger, bin string, args []string) *Manager {
	return &Manager{logger: logger, bin: bin, args: args}
}

// Spawn launches the decoder for path. It returns domain.ErrSessionActive,
// without side effects, when a process is already held.
func (m *Manager) Spawn(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd != nil {
		return domain.ErrSessionActive
	}
	// A latched forced exit belongs to the previous session; a new spawn
	// attempt supersedes it even when Start fails
	m.exited = false

	args := make([]string, 0, len(m.args)+1)
	args = append(args, m.args...)
	args = append(args, path)
	cmd := exec.Command(m.bin, args...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn decoder: %w", err)
	}

	m.cmd = cmd
	m.paused = false
	m.done = make(chan error, 1)
	go func(c *exec.Cmd, done chan error) {
		done <- c.Wait()
	}(cmd, m.done)

	m.logger.Info("Decoder spawned",
		zap.String("path", path),
		zap.Int("pid", cmd.Process.Pid))
	return nil
}

// Pause suspends the held process
func (m *Manager) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil {
		return fmt.Errorf("no playback session to pause")
	}
	if err := m.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
		return fmt.Errorf("failed to suspend decoder: %w", err)
	}
	m.paused = true
	m.logger.Debug("Decoder suspended", zap.Int("pid", m.cmd.Process.Pid))
	return nil
}

// Resume continues a suspended process
func (m *Manager) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil {
		return fmt.Errorf("no playback session to resume")
	}
	if err := m.cmd.Process.Signal(syscall.SIGCONT); err != nil {
		return fmt.Errorf("failed to continue decoder: %w", err)
	}
	m.paused = false
	m.logger.Debug("Decoder continued", zap.Int("pid", m.cmd.Process.Pid))
	return nil
}

// Terminate kills and synchronously reaps the held process. The exit is
// latched so the next PollExit observes it; exit detection stays the
// single writer of mode transitions. Idempotent when no process is held.
func (m *Manager) Terminate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil {
		return
	}
	pid := m.cmd.Process.Pid
	if err := m.cmd.Process.Kill(); err != nil {
		m.logger.Warn("Failed to kill decoder", zap.Int("pid", pid), zap.Error(err))
	}
	// Bounded: the process was just killed
	err := <-m.done
	m.cmd = nil
	m.paused = false
	m.exited = true
	m.logger.Info("Decoder terminated", zap.Int("pid", pid), zap.NamedError("wait", err))
}

// PollExit is a non-blocking exit check. It reports true exactly once per
// exited process, clearing the handle.
func (m *Manager) PollExit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exited {
		m.exited = false
		return true
	}
	if m.cmd == nil {
		return false
	}

	select {
	case err := <-m.done:
		pid := m.cmd.Process.Pid
		m.cmd = nil
		m.paused = false
		m.logger.Info("Decoder exited", zap.Int("pid", pid), zap.NamedError("wait", err))
		return true
	default:
		return false
	}
}

// Active reports whether a process is currently held
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cmd != nil
}
