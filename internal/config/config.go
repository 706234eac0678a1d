package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMusicRoot   = "/roms/music/GBA"
	defaultPlayerBin   = "/usr/bin/playgsf"
	defaultJoystick    = "/dev/input/js0"
	defaultBacklight   = "backlight"
	defaultVisibleRows = 18

	// TrackExt is the one supported playable-file extension
	TrackExt = ".minigsf"
	// TickInterval drives the controller loop
	TickInterval = 16 * time.Millisecond
	// PageJump is the selection step for the shoulder buttons
	PageJump = 10
	// TriggerThreshold is the axis value above which a trigger counts as pressed
	TriggerThreshold = 16000
	// LoopAllGrace extends the nominal track length before a forced kill
	// under repeat-all, tolerating slight length-tag inaccuracy
	LoopAllGrace = 5 * time.Second
)

// PlayerArgs selects quiet, loop-disabled, single-shot playback
var PlayerArgs = []string{"-c", "-s", "-q"}

// AppConfig holds application configuration
type AppConfig struct {
	// MusicRoot is the fixed root of the browsable tree; navigation
	// never ascends above it
	MusicRoot string
	// PlayerBin is the external decoder binary
	PlayerBin string
	// Joystick is the input device path
	Joystick string
	// Backlight is the backlight device name under /sys/class/backlight
	Backlight string
	// VisibleRows is the size of the list presentation window
	VisibleRows int
}

// New reads configuration from the environment, falling back to defaults
func New(logger *zap.Logger) *AppConfig {
	cfg := &AppConfig{
		MusicRoot:   envOr("GSFDECK_MUSIC_ROOT", defaultMusicRoot),
		PlayerBin:   envOr("GSFDECK_PLAYER_BIN", defaultPlayerBin),
		Joystick:    envOr("GSFDECK_JOYSTICK", defaultJoystick),
		Backlight:   envOr("GSFDECK_BACKLIGHT", defaultBacklight),
		VisibleRows: defaultVisibleRows,
	}

	if v := os.Getenv("GSFDECK_VISIBLE_ROWS"); v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil || rows < 1 {
			logger.Warn("Ignoring invalid GSFDECK_VISIBLE_ROWS", zap.String("value", v))
		} else {
			cfg.VisibleRows = rows
		}
	}

	logger.Info("Configuration loaded",
		zap.String("musicRoot", cfg.MusicRoot),
		zap.String("playerBin", cfg.PlayerBin),
		zap.String("joystick", cfg.Joystick),
		zap.String("backlight", cfg.Backlight),
		zap.Int("visibleRows", cfg.VisibleRows))

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
