// Package oscillator implements the six-oscillator phase-accumulator bank:
// each oscillator advances a 32-bit phase by a per-sample step and samples
// the shared wave table with linear interpolation.
package oscillator

import (
	"sync/atomic"

	"github.com/mjbauer/sigma6synth/internal/fixed"
	"github.com/mjbauer/sigma6synth/internal/wavetable"
)

// Count is the number of oscillators in the bank.
const Count = 6

// FreqMult is the fixed table of 12 frequency-multiplier ratios: a
// sub-harmonic, near-unison ratios, and integer ratios ×2..×9.
var FreqMult = [12]float64{
	0: 0.5,
	1: 1.0,
	2: 1.333333333333,
	3: 1.5,
	4: 2, 5: 3, 6: 4, 7: 5, 8: 6, 9: 7, 10: 8, 11: 9,
}

// ModSource selects the control signal routed to an oscillator's amplitude.
type ModSource int

const (
	ModNone ModSource = iota
	ModContourPos
	ModContourNeg
	ModEnv2
	ModModulation
	ModExpressionPos
	ModExpressionNeg
	ModLFOAmplitude
	ModVelocityPos
	ModVelocityNeg
)

// Modulators is the snapshot of control-rate signals an oscillator's
// amplitude factor can be routed from.
type Modulators struct {
	Contour     fixed.Q // Contour generator level
	Env2        fixed.Q // ENV2 transient level
	Modulation  fixed.Q // MIDI modulation (CC1), 0..1
	Expression  fixed.Q // MIDI expression (CC2/7/11), 0..1
	LFOAmplitude fixed.Q // tremolo term lfo_am_depth*(1-lfo_level)/2, see ModFactor
	Velocity    fixed.Q // note velocity / 127, 0..1
}

// ModFactor computes the mod_source amplitude factor for an oscillator,
// per the table in the engine's oscillator & mixer component design.
func ModFactor(src ModSource, m Modulators) fixed.Q {
	one := fixed.One
	switch src {
	case ModContourPos:
		return m.Contour
	case ModContourNeg:
		return one - m.Contour
	case ModEnv2:
		return m.Env2
	case ModModulation:
		return m.Modulation
	case ModExpressionPos:
		return m.Expression
	case ModExpressionNeg:
		return one - m.Expression
	case ModLFOAmplitude:
		// m.LFOAmplitude already carries (lfo_am_depth * (1-lfo_level)/2); see lfo package.
		return one - m.LFOAmplitude
	case ModVelocityPos:
		return m.Velocity
	case ModVelocityNeg:
		return one - m.Velocity
	default:
		return one
	}
}

// Osc is a single phase-accumulator oscillator. Step is published by the
// control context and read by the audio context every sample, so it is
// held behind an atomic word rather than a plain field.
type Osc struct {
	Phase uint32
	step  atomic.Uint32

	FreqMultIdx int // 0..11, index into FreqMult
	DetuneCents int // -600..+600
	ModSource   ModSource
	MixStep     int // 0..16, index into the mixer's log gain table

	last fixed.Q // last rendered sample, for diagnostics
}

// Step returns the current per-sample phase increment.
func (o *Osc) Step() uint32 { return o.step.Load() }

// SetStep publishes a new per-sample phase increment; called from the
// control context.
func (o *Osc) SetStep(step uint32) { o.step.Store(step) }

// ComputeStep derives the per-sample phase increment for a given base
// frequency, pitch-bend factor and vibrato (FM) factor:
//
//	f = baseFreqHz * FreqMult[idx] * 2^(detuneCents/1200) * pitchBendFactor * vibratoFactor
//	step = round(f * 2^32 / sampleRate)
func (o *Osc) ComputeStep(baseFreqHz float64, pitchBendFactor, vibratoFactor fixed.Q, sampleRateHz int) uint32 {
	idx := o.FreqMultIdx
	if idx < 0 || idx >= len(FreqMult) {
		idx = 1 // unity
	}
	detune := fixed.Base2Exp(fixed.FromFloat(float64(o.DetuneCents) / 1200.0))
	f := baseFreqHz * FreqMult[idx] * detune.Float() * pitchBendFactor.Float() * vibratoFactor.Float()
	if guard := MaxOscFreqHz(sampleRateHz); f > guard {
		f = guard
	}
	return freqToStep(f, sampleRateHz)
}

func freqToStep(freqHz float64, sampleRateHz int) uint32 {
	if freqHz < 0 {
		freqHz = 0
	}
	step := freqHz * 4294967296.0 / float64(sampleRateHz) // 2^32
	if step < 0 {
		return 0
	}
	if step > 4294967295 {
		return 4294967295
	}
	return uint32(step + 0.5)
}

// Render advances the phase by Step and returns the interpolated sample
// from the shared wave table, in Q12.20.
func (o *Osc) Render(table *wavetable.Table) fixed.Q {
	s := table.Sample(o.Phase)
	o.Phase += o.step.Load()
	o.last = s
	return s
}

// Last returns the most recently rendered sample (pre mod-source scaling).
func (o *Osc) Last() fixed.Q { return o.last }

// MaxOscFreqHz returns the anti-alias guard ceiling for a given sample rate
// (spec: MAX_OSC_FREQ_HZ < 0.4 * SAMPLE_RATE_HZ).
func MaxOscFreqHz(sampleRateHz int) float64 {
	return 0.4 * float64(sampleRateHz)
}
