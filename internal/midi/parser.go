// Package midi decodes the wire formats the engine consumes -- 3-byte
// Note On/Off, the 14-bit modulation and expression controller pairs,
// all-sound-off, Program Change, Pitch Bend, and vendor-reserved
// system-exclusive -- one complete raw message at a time, such as those a
// live MIDI input port opened with gitlab.com/gomidi/midi/v2 delivers.
// Framing a serial byte stream into messages (including running status)
// is not done here.
package midi

import (
	"errors"

	"gitlab.com/gomidi/midi/v2"
)

// ErrMalformed is returned for a byte sequence that cannot be decoded as
// any message the engine understands. The caller (the CLI/logging layer,
// never the audio path) should log and drop it.
var ErrMalformed = errors.New("midi: malformed message")

// VendorManufacturerID is the manufacturer ID recognized in a
// system-exclusive message as vendor-reserved.
const VendorManufacturerID = 0x73

// EventKind identifies the decoded message type.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventProgramChange
	EventPitchBend
	EventModulation
	EventExpression
	EventAllSoundOff
	EventSysExVendor
)

// Event is a decoded MIDI message in the form the engine's control
// interface consumes directly.
type Event struct {
	Kind      EventKind
	Note      int
	Velocity  int
	Program   int
	PitchBend int16  // -8192..8191
	Value14   uint16 // 0..16383, for Modulation/Expression
}

// ccPair tracks the most recently received MSB of a 14-bit
// MSB-then-LSB controller pair, so a lone MSB message still yields a
// usable (coarse) value and a later LSB message refines it.
type ccPair struct {
	msb     uint8
	haveMSB bool
}

func (p *ccPair) setMSB(v uint8) uint16 {
	p.msb = v
	p.haveMSB = true
	return uint16(v) << 7
}

func (p *ccPair) combineLSB(v uint8) uint16 {
	msb := p.msb
	return uint16(msb)<<7 | uint16(v&0x7F)
}

// Parser decodes a stream of wire messages into Events, tracking the
// running state (pending CC MSBs) a stateless per-message decode can't
// see on its own.
type Parser struct {
	expressionCC int // controller number carrying expression MSB; LSB is this+32
	modulation   ccPair
	expression   ccPair
}

// NewParser returns a Parser that treats expressionCC (typically 2, 7 or
// 11) as the expression controller's MSB; its LSB arrives on
// expressionCC+32, per the engine's consumed wire format.
func NewParser(expressionCC int) *Parser {
	return &Parser{expressionCC: expressionCC}
}

// Feed decodes one raw message. ok is false and err is nil for a
// recognized-but-uninteresting message (e.g. a CC the engine doesn't
// route); err is ErrMalformed for bytes that don't form any message the
// engine understands.
func (p *Parser) Feed(data []byte) (ev Event, ok bool, err error) {
	if len(data) == 0 {
		return Event{}, false, ErrMalformed
	}
	msg := midi.Message(data)

	var ch, key, vel uint8
	if msg.GetNoteOn(&ch, &key, &vel) {
		if vel == 0 {
			return Event{Kind: EventNoteOff, Note: int(key)}, true, nil
		}
		return Event{Kind: EventNoteOn, Note: int(key), Velocity: int(vel)}, true, nil
	}
	if msg.GetNoteOff(&ch, &key, &vel) {
		return Event{Kind: EventNoteOff, Note: int(key)}, true, nil
	}

	var ctrl, val uint8
	if msg.GetControlChange(&ch, &ctrl, &val) {
		return p.controlChange(int(ctrl), val)
	}

	var prog uint8
	if msg.GetProgramChange(&ch, &prog) {
		return Event{Kind: EventProgramChange, Program: int(prog)}, true, nil
	}

	var relBend int16
	var absBend uint16
	if msg.GetPitchBend(&ch, &relBend, &absBend) {
		return Event{Kind: EventPitchBend, PitchBend: relBend}, true, nil
	}

	var sysex []byte
	if msg.GetSysEx(&sysex) {
		if len(sysex) > 0 && sysex[0] == VendorManufacturerID {
			return Event{Kind: EventSysExVendor}, true, nil
		}
		return Event{}, false, nil
	}

	return Event{}, false, ErrMalformed
}

func (p *Parser) controlChange(ctrl int, val uint8) (Event, bool, error) {
	switch ctrl {
	case 1: // modulation MSB
		return Event{Kind: EventModulation, Value14: p.modulation.setMSB(val)}, true, nil
	case 33: // modulation LSB
		return Event{Kind: EventModulation, Value14: p.modulation.combineLSB(val)}, true, nil
	case 120, 121:
		return Event{Kind: EventAllSoundOff}, true, nil
	}
	if ctrl == p.expressionCC {
		return Event{Kind: EventExpression, Value14: p.expression.setMSB(val)}, true, nil
	}
	if p.expressionCC != 0 && ctrl == p.expressionCC+32 {
		return Event{Kind: EventExpression, Value14: p.expression.combineLSB(val)}, true, nil
	}
	return Event{}, false, nil
}
