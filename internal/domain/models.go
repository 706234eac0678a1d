package domain

import "errors"

// ErrSessionActive is returned by Player.Spawn when a decoder process is
// already held. At most one playback session exists at any time.
var ErrSessionActive = errors.New("a playback session is already active")

// Mode is the top-level state of the controller
type Mode int

const (
	// ModeBrowsing shows the directory catalog
	ModeBrowsing Mode = iota
	// ModePlaying shows the now-playing view
	ModePlaying
)

// String returns a human-readable mode name for logging
func (m Mode) String() string {
	if m == ModePlaying {
		return "playing"
	}
	return "browsing"
}

// LoopPolicy governs what happens when the current track ends naturally
type LoopPolicy int

const (
	// LoopOff stops playback and returns to the catalog
	LoopOff LoopPolicy = iota
	// LoopOne repeats the same track from the beginning
	LoopOne
	// LoopAll advances to the next playable track, circularly
	LoopAll
)

// Next cycles Off -> One -> All -> Off
func (p LoopPolicy) Next() LoopPolicy {
	return (p + 1) % 3
}

// String returns the label shown in the now-playing view
func (p LoopPolicy) String() string {
	switch p {
	case LoopOne:
		return "ONE"
	case LoopAll:
		return "ALL"
	default:
		return "OFF"
	}
}

// Entry is a single item of the directory catalog
type Entry struct {
	// Name is the base name of the file or directory
	Name string
	// IsDir marks sub-directories
	IsDir bool
}

// TrackMetadata contains the descriptive tag fields of a track.
// All fields except Path are optional and may be empty.
type TrackMetadata struct {
	// Path is the absolute path of the track file
	Path string
	// Title of the track
	Title string
	// Artist name
	Artist string
	// Game the track was ripped from
	Game string
	// Year of release
	Year string
	// Copyright holder
	Copyright string
	// GSFBy names who produced the rip
	GSFBy string
	// LengthText is the raw length tag ("m:ss", "ss.fraction" or seconds)
	LengthText string
}

// EventKind identifies a discrete input event
type EventKind int

const (
	// EventUp moves the selection up one row
	EventUp EventKind = iota
	// EventDown moves the selection down one row
	EventDown
	// EventLeft is dpad left: adjacent-track jump while browsing,
	// skip to the previous track while playing
	EventLeft
	// EventRight is dpad right: adjacent-track jump while browsing,
	// skip to the next track while playing
	EventRight
	// EventPageBack jumps the selection back by a page
	EventPageBack
	// EventPageForward jumps the selection forward by a page
	EventPageForward
	// EventActivate descends into a directory or starts playback of a file
	EventActivate
	// EventBack ascends one directory or leaves the now-playing view
	EventBack
	// EventLoopCycle cycles the loop policy
	EventLoopCycle
	// EventPauseToggle pauses or resumes the decoder process
	EventPauseToggle
	// EventScreenToggle blanks or unblanks the screen
	EventScreenToggle
	// EventQuit terminates the run loop unconditionally
	EventQuit
)

// Event is a discrete button-press event delivered by the input source
type Event struct {
	Kind EventKind
}

// Snapshot is the read-only view of controller state handed to the presenter
type Snapshot struct {
	// Mode selects between the list view and the now-playing view
	Mode Mode
	// Path is the current directory (list view)
	Path string
	// Entries is the current catalog (list view)
	Entries []Entry
	// Selected is the index of the highlighted entry (list view)
	Selected int
	// Scroll is the first visible row (list view)
	Scroll int
	// VisibleRows is the size of the presentation window (list view)
	VisibleRows int
	// Meta describes the current track (now-playing view)
	Meta TrackMetadata
	// Elapsed is the unpaused playback time in seconds (now-playing view)
	Elapsed int
	// Loop is the active loop policy (now-playing view)
	Loop LoopPolicy
	// Paused reports whether the decoder is suspended
	Paused bool
}
