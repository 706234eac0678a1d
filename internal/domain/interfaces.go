package domain

import "context"

//go:generate mockgen -destination=mocks/domain_mocks.go -package=mocks github.com/rcanales/gsfdeck/internal/domain Player,MetadataReader,Presenter,Display

// Player owns the lifecycle of at most one external decoder process.
// Implementations must never block the caller except inside Terminate,
// whose reap is bounded because the process was just killed.
type Player interface {
	// Spawn launches the decoder for the given file. It returns
	// ErrSessionActive, without side effects, when a process is already
	// held. Playback begins unpaused.
	Spawn(path string) error

	// Pause suspends the held process. Errors when no process is held.
	Pause() error

	// Resume continues a suspended process. Errors when no process is held.
	Resume() error

	// Terminate kills and synchronously reaps the held process, clearing
	// the handle. Idempotent when no process is held.
	Terminate()

	// PollExit is a non-blocking check for process exit. It reports true
	// exactly once per exited process (natural end or forced termination)
	// and clears the handle. This is the sole path by which track
	// completion is detected.
	PollExit() bool

	// Active reports whether a process is currently held
	Active() bool
}

// MetadataReader reads the descriptive tag fields of a track file.
// A read failure is absorbed by the caller; it never blocks playback.
type MetadataReader interface {
	// Read returns the tag fields of the file at path
	Read(path string) (TrackMetadata, error)
}

// InputSource delivers discrete button events and continuous trigger
// axis samples from the physical controls
type InputSource interface {
	// Start begins reading the input device. Non-blocking.
	Start(ctx context.Context) error

	// Stop closes the device and the event channel
	Stop(ctx context.Context) error

	// Events returns the channel of discrete button-press events
	Events() <-chan Event

	// Axes returns the most recent left and right trigger samples
	Axes() (left, right int16)
}

// Presenter renders a read-only snapshot of controller state
type Presenter interface {
	Render(Snapshot)
}

// Display controls the physical screen power
type Display interface {
	// SetPower blanks (false) or unblanks (true) the screen
	SetPower(on bool) error
}
