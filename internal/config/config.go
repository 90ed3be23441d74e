// Package config defines the engine's orthogonal configuration (separate
// from a patch's timbre parameters) and a host-side stand-in for the
// firmware's flash-backed EEPROM persistence block, validated by sentinel
// words exactly as the original does.
package config

import (
	"errors"

	"github.com/mjbauer/sigma6synth/internal/control"
)

// AmpldCtrlOverride optionally forces the output-amplitude source
// regardless of the selected patch's own AmpldControlSource. AmpldCtrlUsePatch
// means "defer to the patch."
type AmpldCtrlOverride int

const (
	AmpldCtrlUsePatch AmpldCtrlOverride = iota
	AmpldCtrlConstMax
	AmpldCtrlConstLow
	AmpldCtrlEnv1Velocity
	AmpldCtrlExpression
)

// ErrConfigCorrupt is returned when a loaded configuration block fails its
// sentinel-word check.
var ErrConfigCorrupt = errors.New("config: corrupt (sentinel mismatch)")

// ErrEepromIOError is returned when the underlying persistence medium
// cannot be read or written.
var ErrEepromIOError = errors.New("config: eeprom i/o error")

// Config holds the engine's persisted, orthogonal settings -- distinct
// from a Patch, which holds timbre parameters.
type Config struct {
	AudioAmpldCtrlMode AmpldCtrlOverride
	VibratoCtrlMode    control.VibratoCtrlMode

	PitchBendEnable bool
	PitchBendRange  int // semitones, 1..12

	ReverbMixPc   int // 0..100
	ReverbAttenPc int // 50..95 (feedback coefficient range the data model allows)

	ExpressionCCNum int // MIDI CC number, 0 disables expression input

	MIDIChannel int // 0..15
	MIDIMode    int // implementation-defined omni/poly/mono mode number

	SelectedPreset int
}

// Default returns the power-on configuration: vibrato automatic, pitch
// bend enabled with a 2-semitone range, light reverb, expression on CC2,
// omni channel.
func Default() Config {
	return Config{
		AudioAmpldCtrlMode: AmpldCtrlUsePatch,
		VibratoCtrlMode:    control.VibratoAutomatic,
		PitchBendEnable:    true,
		PitchBendRange:     2,
		ReverbMixPc:        20,
		ReverbAttenPc:      70,
		ExpressionCCNum:    2,
		MIDIChannel:        0,
		MIDIMode:           0,
		SelectedPreset:     0,
	}
}

// Clamp saturates out-of-range fields to their legal ranges, matching the
// PatchOutOfRange-style silent-clamp contract used elsewhere in the
// engine.
func (c *Config) Clamp() {
	if c.PitchBendRange < 1 {
		c.PitchBendRange = 1
	}
	if c.PitchBendRange > 12 {
		c.PitchBendRange = 12
	}
	if c.ReverbMixPc < 0 {
		c.ReverbMixPc = 0
	}
	if c.ReverbMixPc > 100 {
		c.ReverbMixPc = 100
	}
	if c.ReverbAttenPc < 50 {
		c.ReverbAttenPc = 50
	}
	if c.ReverbAttenPc > 95 {
		c.ReverbAttenPc = 95
	}
	if c.ExpressionCCNum < 0 || c.ExpressionCCNum > 127 {
		c.ExpressionCCNum = 0
	}
	if c.MIDIChannel < 0 {
		c.MIDIChannel = 0
	}
	if c.MIDIChannel > 15 {
		c.MIDIChannel = 15
	}
	if c.SelectedPreset < 0 {
		c.SelectedPreset = 0
	}
}

// ExpressionDisabled reports whether expression CC input is turned off in
// the UI. Per the engine's documented contract for this case, callers
// selecting expression-controlled output amplitude should then treat
// expression_level as full scale rather than zero.
func (c *Config) ExpressionDisabled() bool {
	return c.ExpressionCCNum == 0
}
