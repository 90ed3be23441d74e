// Package lfo implements the synth's single low-frequency oscillator: an
// independent phase accumulator reading the shared sine wave table, gated
// by a delay+linear-ramp envelope on note-on, driving vibrato (FM) and
// tremolo (AM).
package lfo

import (
	"github.com/mjbauer/sigma6synth/internal/fixed"
	"github.com/mjbauer/sigma6synth/internal/wavetable"
)

// LFO is the engine's single shared modulation oscillator.
type LFO struct {
	table *wavetable.Table

	phase uint32
	step  uint32

	rampTimeMs  float64
	rampElapsed float64

	bipolar fixed.Q // last rendered sample, [-1, 1]
	gate    fixed.Q // current gate value, [0, 1]
}

// New creates an LFO reading the given shared wave table.
func New(table *wavetable.Table) *LFO {
	return &LFO{table: table}
}

// SetRate configures the oscillation rate and recomputes the per-sample
// phase step; called at control rate whenever LFO_Freq_x10 changes.
func (l *LFO) SetRate(freqHz float64, sampleRateHz int) {
	if freqHz < 0 {
		freqHz = 0
	}
	step := freqHz * 4294967296.0 / float64(sampleRateHz)
	if step < 0 {
		step = 0
	}
	if step > 4294967295 {
		step = 4294967295
	}
	l.step = uint32(step + 0.5)
}

// SetRampTime configures the delay+ramp gate duration in ms.
func (l *LFO) SetRampTime(rampMs float64) {
	l.rampTimeMs = rampMs
}

// NoteOn arms the gate envelope: silent for the first half of RampTime,
// then a linear ramp from 0 to 1 over the second half.
func (l *LFO) NoteOn() {
	l.rampElapsed = 0
}

// Reset forces the LFO to its at-rest state (phase 0, gate closed).
func (l *LFO) Reset() {
	l.phase = 0
	l.rampElapsed = 0
	l.bipolar = 0
	l.gate = 0
}

// TickControl advances the gate envelope by dtMs of control-rate time;
// called every 1ms tick.
func (l *LFO) TickControl(dtMs float64) {
	l.rampElapsed += dtMs
	half := l.rampTimeMs / 2
	switch {
	case l.rampTimeMs <= 0:
		l.gate = fixed.One
	case l.rampElapsed < half:
		l.gate = 0
	case l.rampElapsed < l.rampTimeMs:
		l.gate = fixed.FromFloat((l.rampElapsed - half) / half)
	default:
		l.gate = fixed.One
	}
}

// RenderSample advances the phase by one audio sample and caches the
// bipolar sine value; called once per audio tick.
func (l *LFO) RenderSample() fixed.Q {
	l.bipolar = l.table.Sample(l.phase)
	l.phase += l.step
	return l.bipolar
}

// Bipolar returns the last rendered sample in [-1, 1].
func (l *LFO) Bipolar() fixed.Q { return l.bipolar }

// UnipolarLevel returns (sin+1)/2, in [0, 1].
func (l *LFO) UnipolarLevel() fixed.Q {
	return fixed.Mul(l.bipolar+fixed.One, fixed.Half)
}

// Gate returns the current delay/ramp gate value, [0, 1].
func (l *LFO) Gate() fixed.Q { return l.gate }

// FMFactor converts a cents depth into a frequency multiplier via the
// shared base-2 exponential helper, scaled by the LFO's bipolar output and
// by its delay/ramp gate, which it applies itself.
func (l *LFO) FMFactor(depthCents fixed.Q) fixed.Q {
	cents := fixed.Mul(fixed.Mul(depthCents, l.gate), l.bipolar)
	octaves := fixed.FromFloat(cents.Float() / 1200.0)
	return fixed.Base2Exp(octaves)
}

// FMFactorUngated is as FMFactor but does not apply the delay/ramp gate,
// used by VibratoCtrlMode=ByModulationCC where depth tracks
// modulation_level directly rather than the note-on gate envelope.
func (l *LFO) FMFactorUngated(depthCents fixed.Q) fixed.Q {
	cents := fixed.Mul(depthCents, l.bipolar)
	octaves := fixed.FromFloat(cents.Float() / 1200.0)
	return fixed.Base2Exp(octaves)
}

// AMModulatorTerm computes the subtracted term in the tremolo formula
// 1 − lfo_am_depth × (1 − lfo_level)/2 for oscillators routed to the LFO
// mod_source; depthPct is 0..1 (LFO_AM_Depth / 100).
//
// The halving factor's intent (unipolar half-depth vs full-depth) is
// ambiguous in the source this engine is modeled on; this implementation
// matches the formula exactly rather than guessing at an alternative.
func (l *LFO) AMModulatorTerm(depthPct fixed.Q) fixed.Q {
	oneMinusLevel := fixed.One - l.UnipolarLevel()
	return fixed.Mul(fixed.Mul(depthPct, l.gate), fixed.Mul(oneMinusLevel, fixed.Half))
}
