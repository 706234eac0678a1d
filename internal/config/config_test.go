package config

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	for _, key := range []string{
		"GSFDECK_MUSIC_ROOT", "GSFDECK_PLAYER_BIN", "GSFDECK_JOYSTICK",
		"GSFDECK_BACKLIGHT", "GSFDECK_VISIBLE_ROWS",
	} {
		t.Setenv(key, "")
	}

	cfg := New(zap.NewNop())
	if cfg.MusicRoot != defaultMusicRoot {
		t.Errorf("expected %q, got %q", defaultMusicRoot, cfg.MusicRoot)
	}
	if cfg.PlayerBin != defaultPlayerBin {
		t.Errorf("expected %q, got %q", defaultPlayerBin, cfg.PlayerBin)
	}
	if cfg.Joystick != defaultJoystick {
		t.Errorf("expected %q, got %q", defaultJoystick, cfg.Joystick)
	}
	if cfg.Backlight != defaultBacklight {
		t.Errorf("expected %q, got %q", defaultBacklight, cfg.Backlight)
	}
	if cfg.VisibleRows != defaultVisibleRows {
		t.Errorf("expected %d, got %d", defaultVisibleRows, cfg.VisibleRows)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("GSFDECK_MUSIC_ROOT", "/mnt/sdcard/gsf")
	t.Setenv("GSFDECK_PLAYER_BIN", "/opt/bin/playgsf")
	t.Setenv("GSFDECK_JOYSTICK", "/dev/input/js1")
	t.Setenv("GSFDECK_BACKLIGHT", "panel0")
	t.Setenv("GSFDECK_VISIBLE_ROWS", "24")

	cfg := New(zap.NewNop())
	if cfg.MusicRoot != "/mnt/sdcard/gsf" {
		t.Errorf("unexpected music root %q", cfg.MusicRoot)
	}
	if cfg.PlayerBin != "/opt/bin/playgsf" {
		t.Errorf("unexpected player bin %q", cfg.PlayerBin)
	}
	if cfg.Joystick != "/dev/input/js1" {
		t.Errorf("unexpected joystick %q", cfg.Joystick)
	}
	if cfg.Backlight != "panel0" {
		t.Errorf("unexpected backlight %q", cfg.Backlight)
	}
	if cfg.VisibleRows != 24 {
		t.Errorf("unexpected visible rows %d", cfg.VisibleRows)
	}
}

func TestNew_InvalidVisibleRows(t *testing.T) {
	tests := []string{"abc", "0", "-3", "1.5"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			t.Setenv("GSFDECK_VISIBLE_ROWS", v)
			cfg := New(zap.NewNop())
			if cfg.VisibleRows != defaultVisibleRows {
				t.Errorf("expected default %d for %q, got %d", defaultVisibleRows, v, cfg.VisibleRows)
			}
		})
	}
}
