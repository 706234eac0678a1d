// Package controller implements the playback/navigation state machine.
//
// A fixed-rate tick drives the controller: each tick polls decoder exit,
// enforces the parsed track duration, samples the analog triggers and
// drains pending button events, in that order. The ordering is load-bearing:
// manual skips only request a switch and kill the process, and the single
// exit-detection step performs every spawn, which keeps at most one decoder
// process in flight even under rapid repeated skip input.
package controller

import (
	"context"
	"time"

	"github.com/rcanales/gsfdeck/internal/catalog"
	"github.com/rcanales/gsfdeck/internal/config"
	"github.com/rcanales/gsfdeck/internal/domain"
	"github.com/rcanales/gsfdeck/internal/metadata"
	"go.uber.org/zap"
)

// pendingSwitch is a recorded, not-yet-acted-upon intent to move to an
// adjacent track. Set by skip input or trigger edges, consumed exactly
// once by exit detection.
type pendingSwitch struct {
	requested bool
	forward   bool
}

// Controller owns all mutable playback/navigation state and reacts to
// process-exit observations and input events
type Controller struct {
	logger    *zap.Logger
	cfg       *config.AppConfig
	catalog   *catalog.Catalog
	meta      domain.MetadataReader
	player    domain.Player
	input     domain.InputSource
	presenter domain.Presenter
	display   domain.Display

	mode         domain.Mode
	loop         domain.LoopPolicy
	current      domain.TrackMetadata
	trackSeconds int
	startedAt    time.Time
	accrued      time.Duration
	paused       bool
	pending      pendingSwitch
	leftHeld     bool
	rightHeld    bool
	screenOff    bool
	dirty        bool

	now  func() time.Time
	done chan struct{}
}

// New creates the controller in browsing mode with loop policy repeat-all
func New(
	logger *zap.Logger,
	cfg *config.AppConfig,
	cat *catalog.Catalog,
	meta domain.MetadataReader,
	player domain.Player,
	input domain.InputSource,
	presenter domain.Presenter,
	display domain.Display,
) *Controller {
	return &Controller{
		logger:    logger,
		cfg:       cfg,
		catalog:   cat,
		meta:      meta,
		player:    player,
		input:     input,
		presenter: presenter,
		display:   display,
		mode:      domain.ModeBrowsing,
		loop:      domain.LoopAll,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Run drives the controller until the context is cancelled or a quit
// event arrives. Any live playback session is terminated and reaped on
// the way out.
func (c *Controller) Run(ctx context.Context) {
	defer close(c.done)
	defer c.player.Terminate()

	c.render()
	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Controller stopped")
			return
		case <-ticker.C:
			if !c.Tick() {
				c.logger.Info("Quit requested")
				return
			}
		}
	}
}

// Done is closed once Run has returned and the session is torn down
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Tick performs one iteration of the fixed-order update. It reports false
// when a quit event was consumed.
func (c *Controller) Tick() bool {
	c.handleExit()
	c.enforceDuration()
	c.sampleTriggers()
	alive := c.drainEvents()

	// The now-playing view refreshes every unpaused tick for the elapsed
	// counter; everything else renders only after a state change.
	if !c.screenOff && (c.dirty || (c.mode == domain.ModePlaying && !c.paused)) {
		c.render()
	}
	return alive
}

// handleExit is the single consumer of process-exit observations and the
// single writer of mode transitions out of an exited session
func (c *Controller) handleExit() {
	if c.mode != domain.ModePlaying || c.paused {
		return
	}
	if !c.player.PollExit() {
		return
	}

	if c.pending.requested {
		forward := c.pending.forward
		c.pending = pendingSwitch{}
		// Degenerates to respawning the same track when no other
		// playable entry exists.
		c.catalog.JumpAdjacent(forward)
		c.startSelected()
		return
	}

	// Natural end of track
	switch c.loop {
	case domain.LoopOff:
		c.mode = domain.ModeBrowsing
		c.markDirty()
	case domain.LoopOne:
		c.startSelected()
	case domain.LoopAll:
		c.catalog.JumpAdjacent(true)
		c.startSelected()
	}
}

// enforceDuration force-terminates a session that reached its parsed
// length. The next tick's exit detection performs the actual transition;
// killing here never changes mode.
func (c *Controller) enforceDuration() {
	if c.mode != domain.ModePlaying || c.paused || !c.player.Active() || c.trackSeconds <= 0 {
		return
	}
	limit := time.Duration(c.trackSeconds) * time.Second
	if c.loop == domain.LoopAll {
		limit += config.LoopAllGrace
	}
	if c.elapsed() >= limit {
		c.pending = pendingSwitch{} // natural end, not a manual skip
		c.player.Terminate()
	}
}

// sampleTriggers reads both trigger axes once per tick and records a
// pending switch on a rising edge. Edge state is remembered per trigger
// across ticks.
func (c *Controller) sampleTriggers() {
	if c.mode != domain.ModePlaying || !c.player.Active() {
		return
	}
	left, right := c.input.Axes()
	leftPressed := left > config.TriggerThreshold
	rightPressed := right > config.TriggerThreshold
	if leftPressed && !c.leftHeld {
		c.requestSwitch(false)
	}
	if rightPressed && !c.rightHeld {
		c.requestSwitch(true)
	}
	c.leftHeld = leftPressed
	c.rightHeld = rightPressed
}

// requestSwitch records the switch intent and kills the current process.
// The respawn happens on the next tick's exit detection.
func (c *Controller) requestSwitch(forward bool) {
	c.pending = pendingSwitch{requested: true, forward: forward}
	c.player.Terminate()
}

// drainEvents consumes every event queued since the previous tick.
// It reports false when a quit event was consumed.
func (c *Controller) drainEvents() bool {
	for {
		select {
		case ev, ok := <-c.input.Events():
			if !ok {
				return true
			}
			if !c.handleEvent(ev) {
				return false
			}
		default:
			return true
		}
	}
}

func (c *Controller) handleEvent(ev domain.Event) bool {
	if ev.Kind == domain.EventScreenToggle {
		c.toggleScreen()
		return true
	}
	// Global input gate: while blanked only the toggle is honored
	if c.screenOff {
		return true
	}
	if ev.Kind == domain.EventQuit {
		return false
	}

	if c.mode == domain.ModePlaying {
		c.handlePlayingEvent(ev)
	} else {
		c.handleBrowsingEvent(ev)
	}
	return true
}

func (c *Controller) handlePlayingEvent(ev domain.Event) {
	switch ev.Kind {
	case domain.EventBack:
		c.player.Terminate()
		c.pending = pendingSwitch{}
		c.mode = domain.ModeBrowsing
		c.markDirty()
	case domain.EventLeft:
		c.requestSwitch(false)
	case domain.EventRight:
		c.requestSwitch(true)
	case domain.EventLoopCycle:
		c.loop = c.loop.Next()
		c.logger.Info("Loop policy changed", zap.Stringer("loop", c.loop))
		c.markDirty()
	case domain.EventPauseToggle:
		c.togglePause()
	}
}

func (c *Controller) handleBrowsingEvent(ev domain.Event) {
	switch ev.Kind {
	case domain.EventUp:
		c.catalog.MoveUp()
		c.markDirty()
	case domain.EventDown:
		c.catalog.MoveDown()
		c.markDirty()
	case domain.EventPageBack:
		c.catalog.Page(-config.PageJump)
		c.markDirty()
	case domain.EventPageForward:
		c.catalog.Page(config.PageJump)
		c.markDirty()
	case domain.EventLeft:
		if c.catalog.JumpAdjacent(false) {
			c.markDirty()
		}
	case domain.EventRight:
		if c.catalog.JumpAdjacent(true) {
			c.markDirty()
		}
	case domain.EventActivate:
		entry, ok := c.catalog.SelectedEntry()
		if !ok {
			return
		}
		if entry.IsDir {
			c.catalog.Enter()
			c.markDirty()
		} else {
			c.startSelected()
		}
	case domain.EventBack:
		if c.catalog.Back() {
			c.markDirty()
		}
	}
}

// startSelected loads metadata for the highlighted track and spawns the
// decoder, entering (or staying in) playing mode. A spawn failure leaves
// the controller playing with no handle and schedules no retry. A metadata
// failure keeps the previous fields and duration, stale but valid.
func (c *Controller) startSelected() {
	entry, ok := c.catalog.SelectedEntry()
	if !ok || entry.IsDir || !c.catalog.IsPlayable(entry.Name) {
		// Zero playable tracks: idle in playing mode with no process
		// until manual input intervenes.
		c.logger.Warn("No playable track to start", zap.String("path", c.catalog.Path()))
		c.mode = domain.ModePlaying
		c.markDirty()
		return
	}

	path := c.catalog.SelectedPath()
	meta, err := c.meta.Read(path)
	if err != nil {
		c.logger.Warn("Metadata unreadable, keeping previous fields",
			zap.String("path", path),
			zap.Error(err))
	} else {
		c.current = meta
		c.trackSeconds = metadata.ParseLength(meta.LengthText)
	}

	c.accrued = 0
	c.startedAt = c.now()
	c.paused = false
	if err := c.player.Spawn(path); err != nil {
		c.logger.Warn("Decoder spawn failed", zap.String("path", path), zap.Error(err))
	}
	c.mode = domain.ModePlaying
	c.markDirty()
}

func (c *Controller) togglePause() {
	if !c.player.Active() {
		return
	}
	if !c.paused {
		if err := c.player.Pause(); err != nil {
			c.logger.Warn("Pause failed", zap.Error(err))
			return
		}
		c.accrued += c.now().Sub(c.startedAt)
		c.paused = true
	} else {
		if err := c.player.Resume(); err != nil {
			c.logger.Warn("Resume failed", zap.Error(err))
			return
		}
		c.startedAt = c.now()
		c.paused = false
	}
	c.markDirty()
}

func (c *Controller) toggleScreen() {
	wantOn := c.screenOff
	if err := c.display.SetPower(wantOn); err != nil {
		c.logger.Warn("Screen power toggle failed", zap.Bool("on", wantOn), zap.Error(err))
	}
	c.screenOff = !c.screenOff
	c.logger.Info("Screen power toggled", zap.Bool("off", c.screenOff))
	if !c.screenOff {
		c.markDirty()
	}
}

// elapsed accrues only while unpaused: time banked before the last pause
// plus the current unpaused stretch
func (c *Controller) elapsed() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	if c.paused {
		return c.accrued
	}
	return c.accrued + c.now().Sub(c.startedAt)
}

func (c *Controller) markDirty() {
	c.dirty = true
}

func (c *Controller) render() {
	c.presenter.Render(c.snapshot())
	c.dirty = false
}

func (c *Controller) snapshot() domain.Snapshot {
	return domain.Snapshot{
		Mode:        c.mode,
		Path:        c.catalog.Path(),
		Entries:     c.catalog.Entries(),
		Selected:    c.catalog.Selected(),
		Scroll:      c.catalog.Scroll(),
		VisibleRows: c.cfg.VisibleRows,
		Meta:        c.current,
		Elapsed:     int(c.elapsed().Seconds()),
		Loop:        c.loop,
		Paused:      c.paused,
	}
}
