// Package control implements the velocity/expression/modulation/pitch-bend
// control chain and the mono note-state machine that feeds it, modeled on
// the firmware's note-on/note-off/pitch-bend/CC handling in
// sigma6_synth_main.c.
package control

import (
	"math"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

// VibratoCtrlMode selects how LFO-FM vibrato depth is driven.
type VibratoCtrlMode int

const (
	VibratoDisabled VibratoCtrlMode = iota
	VibratoByModulationCC
	VibratoAutomatic
	// VibratoByEffectSwitch is a legacy mode carried from the original
	// firmware (a footswitch gated the same depth Automatic uses). Treated
	// identically to VibratoAutomatic here; kept as a distinct value so a
	// config loaded from an older persisted value round-trips unchanged.
	VibratoByEffectSwitch
)

// noteFreqHz is the 128-entry equal-tempered frequency table, A4 (MIDI 69)
// = 440 Hz, computed once at init.
var noteFreqHz [128]float64

func init() {
	for n := 0; n < 128; n++ {
		noteFreqHz[n] = 440.0 * math.Pow(2, float64(n-69)/12.0)
	}
}

// NoteFrequency returns the base frequency in Hz for a MIDI note number,
// clamped to the valid 0..127 range.
func NoteFrequency(note int) float64 {
	if note < 0 {
		note = 0
	}
	if note > 127 {
		note = 127
	}
	return noteFreqHz[note]
}

// ExpressionCompensationPct is the maximum scale factor applied to
// breath-style expression controllers, MIDI_EXPRN_ADJUST_PC in the
// original firmware.
const ExpressionCompensationPct = 125

// ExpressionLevel converts a 14-bit unsigned CC value to a Q12.20 level
// in [0, 1], optionally scaled up to ExpressionCompensationPct for
// breath-style controllers whose usable range rarely reaches full scale.
func ExpressionLevel(data14 uint16, breathCompensate bool) fixed.Q {
	if data14 > 0x3FFF {
		data14 = 0x3FFF
	}
	level := fixed.FromFloat(float64(data14) / 0x3FFF)
	if breathCompensate {
		level = fixed.Mul(level, fixed.FromFloat(float64(ExpressionCompensationPct)/100.0))
		level = fixed.SaturateSignal(level)
	}
	return level
}

// ModulationLevel converts a 14-bit unsigned CC value to a Q12.20 level in
// [0, 1].
func ModulationLevel(data14 uint16) fixed.Q {
	if data14 > 0x3FFF {
		data14 = 0x3FFF
	}
	return fixed.FromFloat(float64(data14) / 0x3FFF)
}

// PitchBendFactor converts a bipolar 14-bit pitch-bend value to a Q12.20
// frequency multiplier. If enable is false the bend is ignored and the
// unity factor is returned.
func PitchBendFactor(bend14 int16, enable bool, rangeSemitones int) fixed.Q {
	if !enable {
		return fixed.One
	}
	if bend14 < -8192 {
		bend14 = -8192
	}
	if bend14 > 8191 {
		bend14 = 8191
	}
	exponent := (float64(bend14) / 8192.0) * float64(rangeSemitones) / 12.0
	return fixed.Base2Exp(fixed.FromFloat(exponent))
}

// NoteState is the engine's mono note-state record: at most one note is
// ever active, matching spec.md's "Note state" entity.
type NoteState struct {
	NoteNumber      int
	Velocity        int
	GateOn          bool
	BaseFreqHz      float64
	PitchBendFactor fixed.Q
	ExpressionLevel fixed.Q
	ModulationLevel fixed.Q
	MonoLegato      bool
}

// NewNoteState returns a NoteState with pitch-bend factor at unity and
// legato disabled.
func NewNoteState() *NoteState {
	return &NoteState{PitchBendFactor: fixed.One}
}

// Reset returns the note state to its power-on condition, except that the
// mono-legato setting is kept; used by engine_prepare()'s reset semantics.
func (s *NoteState) Reset() {
	*s = NoteState{PitchBendFactor: fixed.One, MonoLegato: s.MonoLegato}
}

// NoteOn applies a MIDI note-on. It reports whether this is a fresh
// attack (no note currently gated, or legato disabled) versus a legato
// glide onto an already-sounding note.
func (s *NoteState) NoteOn(note, vel int) (retrigger bool) {
	wasGated := s.GateOn
	retrigger = !wasGated || !s.MonoLegato
	s.NoteNumber = note
	s.Velocity = vel
	s.GateOn = true
	s.BaseFreqHz = NoteFrequency(note)
	return retrigger
}

// NoteChange updates the base frequency without retriggering envelopes,
// used for MIDI running-status chords folded to mono by the parser layer.
func (s *NoteState) NoteChange(note int) {
	s.NoteNumber = note
	s.BaseFreqHz = NoteFrequency(note)
}

// NoteOff applies a MIDI note-off for the given note number. It reports
// whether the given note was in fact the active note (in which case the
// caller should release ENV1); a note-off for a note other than the
// currently-gated one is a no-op.
func (s *NoteState) NoteOff(note int) (matched bool) {
	if !s.GateOn || note != s.NoteNumber {
		return false
	}
	s.GateOn = false
	return true
}

// SetLegato sets mono-legato mode.
func (s *NoteState) SetLegato(on bool) { s.MonoLegato = on }
