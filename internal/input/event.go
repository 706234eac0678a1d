package input

import (
	"encoding/binary"

	"github.com/rcanales/gsfdeck/internal/domain"
)

// Joystick interface event record: 8 bytes, little-endian.
// See linux/joystick.h.
const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80

	eventSize = 8
)

// Button and axis numbers for the xpad-style layout the handheld exposes
const (
	btnSouth  = 0 // activate / play
	btnEast   = 1 // back
	btnWest   = 2
	btnNorth  = 3 // loop cycle
	btnL1     = 4
	btnR1     = 5
	btnSelect = 6 // quit
	btnStart  = 7 // pause toggle
	btnGuide  = 8 // screen power

	axisTriggerLeft  = 2
	axisTriggerRight = 5
	axisHatX         = 6
	axisHatY         = 7
)

type jsEvent struct {
	time   uint32
	value  int16
	typ    uint8
	number uint8
}

func decodeEvent(b []byte) jsEvent {
	return jsEvent{
		time:   binary.LittleEndian.Uint32(b[0:4]),
		value:  int16(binary.LittleEndian.Uint16(b[4:6])),
		typ:    b[6],
		number: b[7],
	}
}

// translator turns raw joystick events into domain events. The dpad is a
// hat pair reporting -32767/0/32767, so presses are detected on the
// neutral-to-deflected edge; trigger axes are cached for per-tick sampling.
type translator struct {
	hatX  int16
	hatY  int16
	left  int16
	right int16
}

func (t *translator) translate(ev jsEvent) []domain.Event {
	if ev.typ&jsEventInit != 0 {
		// Synthetic events describing initial device state
		return nil
	}

	switch ev.typ {
	case jsEventButton:
		if ev.value == 0 {
			return nil // releases carry no action
		}
		if kind, ok := buttonEvent(ev.number); ok {
			return []domain.Event{{Kind: kind}}
		}
	case jsEventAxis:
		switch ev.number {
		case axisTriggerLeft:
			t.left = ev.value
		case axisTriggerRight:
			t.right = ev.value
		case axisHatX:
			prev := t.hatX
			t.hatX = ev.value
			if prev == 0 && ev.value < 0 {
				return []domain.Event{{Kind: domain.EventLeft}}
			}
			if prev == 0 && ev.value > 0 {
				return []domain.Event{{Kind: domain.EventRight}}
			}
		case axisHatY:
			prev := t.hatY
			t.hatY = ev.value
			if prev == 0 && ev.value < 0 {
				return []domain.Event{{Kind: domain.EventUp}}
			}
			if prev == 0 && ev.value > 0 {
				return []domain.Event{{Kind: domain.EventDown}}
			}
		}
	}
	return nil
}

func buttonEvent(number uint8) (domain.EventKind, bool) {
	switch number {
	case btnSouth:
		return domain.EventActivate, true
	case btnEast:
		return domain.EventBack, true
	case btnNorth:
		return domain.EventLoopCycle, true
	case btnL1:
		return domain.EventPageBack, true
	case btnR1:
		return domain.EventPageForward, true
	case btnSelect:
		return domain.EventQuit, true
	case btnStart:
		return domain.EventPauseToggle, true
	case btnGuide:
		return domain.EventScreenToggle, true
	}
	return 0, false
}
