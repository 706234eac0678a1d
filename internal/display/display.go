// Package display blanks and unblanks the handheld screen through
// systemd-logind, which accepts brightness changes from an unprivileged
// session over the system bus.
package display

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const sysfsRoot = "/sys/class/backlight"

// BrightnessClient abstracts the logind brightness call.
// This abstraction allows us to fake the bus in tests.
type BrightnessClient interface {
	// SetBrightness sets the brightness of a device in the session
	SetBrightness(subsystem, name string, level uint32) error

	// Close closes the bus connection
	Close() error
}

// Backlight implements domain.Display for one backlight device.
// Blanking drives the brightness to zero; the previous level is read from
// sysfs beforehand so unblanking can restore it.
type Backlight struct {
	logger *zap.Logger
	client BrightnessClient
	device string
	sysfs  string
	saved  uint32
}

// New creates a backlight controller for the named device. A missing
// system bus disables power control; every SetPower then fails, which
// callers absorb as non-fatal.
func New(logger *zap.Logger, device string) *Backlight {
	b := &Backlight{
		logger: logger,
		device: device,
		sysfs:  sysfsRoot,
	}
	// The client field must stay a nil interface when the bus is
	// unavailable; storing a typed nil here would defeat the guard
	// in SetPower.
	client, err := NewLogindClient()
	if err != nil {
		logger.Warn("System bus unavailable, screen power control disabled", zap.Error(err))
		return b
	}
	b.client = client
	return b
}

// Close releases the system-bus connection. Safe without a client.
func (b *Backlight) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// SetPower blanks (false) or unblanks (true) the screen
func (b *Backlight) SetPower(on bool) error {
	if b.client == nil {
		return fmt.Errorf("screen power control unavailable")
	}

	if on {
		level := b.saved
		if level == 0 {
			level = b.readLevel("max_brightness", 1)
		}
		if err := b.client.SetBrightness("backlight", b.device, level); err != nil {
			return fmt.Errorf("failed to restore brightness: %w", err)
		}
		b.logger.Debug("Screen unblanked", zap.Uint32("level", level))
		return nil
	}

	// Remember the restore level before driving the panel dark
	b.saved = b.readLevel("brightness", 0)
	if b.saved == 0 {
		b.saved = b.readLevel("max_brightness", 1)
	}
	if err := b.client.SetBrightness("backlight", b.device, 0); err != nil {
		return fmt.Errorf("failed to blank screen: %w", err)
	}
	b.logger.Debug("Screen blanked", zap.Uint32("savedLevel", b.saved))
	return nil
}

// readLevel reads a sysfs brightness attribute, falling back when the
// attribute is missing or malformed
func (b *Backlight) readLevel(attr string, fallback uint32) uint32 {
	raw, err := os.ReadFile(filepath.Join(b.sysfs, b.device, attr))
	if err != nil {
		return fallback
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return fallback
	}
	return uint32(n)
}
