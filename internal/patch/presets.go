package patch

import "github.com/mjbauer/sigma6synth/internal/oscillator"

// Presets is the read-only bank of built-in patches, selectable by
// program-change index (GetNumberOfPresets()/preset-select in the original
// firmware).
var Presets = []Patch{
	{
		Name: "Warm Pad",
		Osc: [6]OscParams{
			{FreqMultIdx: 1, ModSource: oscillator.ModContourPos, DetuneCents: 0, MixStep: 14},
			{FreqMultIdx: 1, ModSource: oscillator.ModContourPos, DetuneCents: 7, MixStep: 12},
			{FreqMultIdx: 1, ModSource: oscillator.ModContourPos, DetuneCents: -7, MixStep: 12},
			{FreqMultIdx: 4, ModSource: oscillator.ModEnv2, DetuneCents: 0, MixStep: 8},
			{FreqMultIdx: 0, ModSource: oscillator.ModExpressionPos, DetuneCents: 0, MixStep: 6},
			{FreqMultIdx: 1, ModSource: oscillator.ModLFOAmplitude, DetuneCents: 3, MixStep: 4},
		},
		EnvAttackMs: 250, EnvHoldMs: 0, EnvDecayMs: 400, EnvSustainPct: 80, EnvReleaseMs: 600,
		ContourStartPct: 0, ContourDelayMs: 20, ContourRampMs: 600, ContourHoldPct: 100,
		Env2DecayMs: 300, Env2SustainPct: 40,
		LFOFreqX10: 45, LFORampMs: 1500, LFOFMDepth: 12, LFOAMDepth: 0,
		MixerOutGainX10: 65, AmpldControlSource: 2, LimiterLevelPc: 90,
	},
	{
		Name: "Bright Lead",
		Osc: [6]OscParams{
			{FreqMultIdx: 1, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 16},
			{FreqMultIdx: 4, ModSource: oscillator.ModVelocityPos, DetuneCents: 0, MixStep: 10},
			{FreqMultIdx: 5, ModSource: oscillator.ModVelocityPos, DetuneCents: 0, MixStep: 6},
			{FreqMultIdx: 1, ModSource: oscillator.ModLFOAmplitude, DetuneCents: 8, MixStep: 12},
			{FreqMultIdx: 1, ModSource: oscillator.ModLFOAmplitude, DetuneCents: -8, MixStep: 12},
			{FreqMultIdx: 0, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 0},
		},
		EnvAttackMs: 5, EnvHoldMs: 0, EnvDecayMs: 120, EnvSustainPct: 75, EnvReleaseMs: 150,
		ContourStartPct: 100, ContourDelayMs: 0, ContourRampMs: 5, ContourHoldPct: 100,
		Env2DecayMs: 80, Env2SustainPct: 10,
		LFOFreqX10: 55, LFORampMs: 400, LFOFMDepth: 0, LFOAMDepth: 60,
		MixerOutGainX10: 55, AmpldControlSource: 2, LimiterLevelPc: 95,
	},
	{
		Name: "Sub Bass",
		Osc: [6]OscParams{
			{FreqMultIdx: 0, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 16},
			{FreqMultIdx: 1, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 10},
			{FreqMultIdx: 2, ModSource: oscillator.ModEnv2, DetuneCents: 0, MixStep: 4},
			{FreqMultIdx: 0, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 0},
			{FreqMultIdx: 0, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 0},
			{FreqMultIdx: 0, ModSource: oscillator.ModNone, DetuneCents: 0, MixStep: 0},
		},
		EnvAttackMs: 3, EnvHoldMs: 0, EnvDecayMs: 60, EnvSustainPct: 90, EnvReleaseMs: 120,
		ContourStartPct: 100, ContourDelayMs: 0, ContourRampMs: 5, ContourHoldPct: 100,
		Env2DecayMs: 50, Env2SustainPct: 60,
		LFOFreqX10: 30, LFORampMs: 800, LFOFMDepth: 0, LFOAMDepth: 0,
		MixerOutGainX10: 80, AmpldControlSource: 1, LimiterLevelPc: 97,
	},
}

// GetNumberOfPresets returns the number of built-in presets, mirroring the
// firmware's GetNumberOfPresets().
func GetNumberOfPresets() int { return len(Presets) }

// Preset returns a copy of the preset at idx. An out-of-range idx returns
// the first preset (index 0).
func Preset(idx int) Patch {
	if idx < 0 || idx >= len(Presets) {
		idx = 0
	}
	p := Presets[idx]
	p.Clamp()
	return p
}
