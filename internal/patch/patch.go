// Package patch defines the timbre parameter table read at note-on/preset
// change, modeled directly on the firmware's PatchParamTable_t, plus a
// small read-only preset bank selectable by program-change index.
package patch

import "github.com/mjbauer/sigma6synth/internal/oscillator"

// OscParams holds the per-oscillator patch parameters for one of the six
// oscillators.
type OscParams struct {
	FreqMultIdx int                  // 0..11
	ModSource   oscillator.ModSource // 0..9
	DetuneCents int                  // -600..+600
	MixStep     int                  // 0..16
}

// Patch is the full set of timbre parameters selected at note-on or preset
// change.
type Patch struct {
	Name string

	Osc [6]OscParams

	EnvAttackMs    float64
	EnvHoldMs      float64
	EnvDecayMs     float64
	EnvSustainPct  float64 // 0..100
	EnvReleaseMs   float64
	EnvVelocityMod float64 // 0..100, attack modified by key velocity

	ContourStartPct float64 // 0..100
	ContourDelayMs  float64
	ContourRampMs   float64
	ContourHoldPct  float64 // 0..100

	Env2DecayMs    float64
	Env2SustainPct float64 // 0..100

	LFOFreqX10  int // LFO_Freq_x10, Hz*10
	LFORampMs   float64
	LFOFMDepth  float64 // cents, 0..600
	LFOAMDepth  float64 // 0..100 (%FS)

	MixerOutGainX10 int // 0..100, gain*10

	AmpldControlSource int // 0=ConstMax,1=ConstLow,2=ENV1xVelo,3=Expression

	LimiterLevelPc int // 0..100, 0 => hard MAX_CLIPPING_LEVEL only
}

// Clamp saturates out-of-range scalar fields to their legal ranges,
// matching the firmware's "PatchOutOfRange" error kind (clamp, don't fail).
func (p *Patch) Clamp() {
	for i := range p.Osc {
		o := &p.Osc[i]
		if o.FreqMultIdx < 0 {
			o.FreqMultIdx = 0
		}
		if o.FreqMultIdx > 11 {
			o.FreqMultIdx = 11
		}
		if o.DetuneCents < -600 {
			o.DetuneCents = -600
		}
		if o.DetuneCents > 600 {
			o.DetuneCents = 600
		}
		if o.MixStep < 0 {
			o.MixStep = 0
		}
		if o.MixStep > 16 {
			o.MixStep = 16
		}
	}
	if p.LFOFMDepth < 0 {
		p.LFOFMDepth = 0
	}
	if p.LFOFMDepth > 600 {
		p.LFOFMDepth = 600
	}
	if p.LimiterLevelPc < 0 {
		p.LimiterLevelPc = 0
	}
	if p.LimiterLevelPc > 100 {
		p.LimiterLevelPc = 100
	}
}
