// Package sigma6synth implements a monophonic, six-oscillator
// additive/subtractive wave-table synthesis engine driven by MIDI-style
// control calls, running a Q12.20 fixed-point audio path at a fixed
// sample rate.
package sigma6synth

import (
	"sync/atomic"

	"github.com/mjbauer/sigma6synth/internal/config"
	"github.com/mjbauer/sigma6synth/internal/contour"
	"github.com/mjbauer/sigma6synth/internal/control"
	"github.com/mjbauer/sigma6synth/internal/envelope"
	"github.com/mjbauer/sigma6synth/internal/fixed"
	"github.com/mjbauer/sigma6synth/internal/lfo"
	"github.com/mjbauer/sigma6synth/internal/limiter"
	"github.com/mjbauer/sigma6synth/internal/mixer"
	"github.com/mjbauer/sigma6synth/internal/oscillator"
	"github.com/mjbauer/sigma6synth/internal/patch"
	"github.com/mjbauer/sigma6synth/internal/reverb"
	"github.com/mjbauer/sigma6synth/internal/wavetable"
)

// controlTickMs is the fixed control-rate period: 1 kHz.
const controlTickMs = 1.0

// published holds the coefficients written exclusively by the control
// context and read exclusively by the audio context, one atomic word per
// value -- the same bit-publishing technique the rest of this engine's
// lineage uses for a single master gain, generalized to every coefficient
// named by the engine's concurrency model.
type published struct {
	oscFactor      [oscillator.Count]atomic.Uint32 // ModFactor(mod_source), Q bits
	outAmp         atomic.Uint32                   // output-amplitude coefficient, Q bits
	limiterCeiling atomic.Uint32                   // Q bits
}

func (p *published) storeOscFactor(i int, q fixed.Q) { p.oscFactor[i].Store(uint32(q)) }
func (p *published) loadOscFactor(i int) fixed.Q      { return fixed.Q(p.oscFactor[i].Load()) }
func (p *published) storeOutAmp(q fixed.Q)            { p.outAmp.Store(uint32(q)) }
func (p *published) loadOutAmp() fixed.Q              { return fixed.Q(p.outAmp.Load()) }
func (p *published) storeLimiterCeiling(q fixed.Q)    { p.limiterCeiling.Store(uint32(q)) }
func (p *published) loadLimiterCeiling() fixed.Q      { return fixed.Q(p.limiterCeiling.Load()) }

// Engine is the real-time six-oscillator synthesis engine. NoteOn,
// NoteChange, NoteOff, PitchBend, Expression, Modulation and
// ProcessControlTick run in the cooperative control context; RenderSample
// runs in the hard-real-time audio context and must never allocate, block,
// or take a lock.
type Engine struct {
	sampleRateHz int

	table *wavetable.Table
	oscs  [oscillator.Count]oscillator.Osc

	env1    envelope.Env1
	contour contour.Contour
	env2    contour.Env2
	lfoGen  *lfo.LFO
	mixer   mixer.Mixer
	reverb  *reverb.Reverb

	note control.NoteState
	pub  published

	patch patch.Patch
	cfg   config.Config

	isrDuty float64 // diagnostic estimate, updated by the host driver
}

// NewEngine creates an Engine for the given sample rate (32000 or 40000 Hz
// per the engine's design, but any positive rate is accepted).
func NewEngine(sampleRateHz int) *Engine {
	e := &Engine{
		sampleRateHz: sampleRateHz,
		table:        wavetable.Sine(),
	}
	e.lfoGen = lfo.New(e.table)
	e.reverb = reverb.New(sampleRateHz, 0.03)
	e.note = *control.NewNoteState()
	e.cfg = config.Default()
	e.patch = patch.Preset(0)
	return e
}

// Prepare resets all engine state to power-on condition and loads the
// given configuration and patch. It must be called before the first
// RenderSample/ProcessControlTick and is idempotent.
func (e *Engine) Prepare(cfg config.Config, p patch.Patch) {
	cfg.Clamp()
	p.Clamp()
	e.cfg = cfg
	e.patch = p

	e.note.Reset()
	e.note.SetLegato(false)
	e.env1.Reset()
	e.contour.Reset()
	e.env2.Reset()
	e.lfoGen.Reset()
	e.reverb.Reset()

	for i := range e.oscs {
		e.oscs[i] = oscillator.Osc{
			FreqMultIdx: p.Osc[i].FreqMultIdx,
			DetuneCents: p.Osc[i].DetuneCents,
			ModSource:   p.Osc[i].ModSource,
			MixStep:     p.Osc[i].MixStep,
		}
	}

	e.lfoGen.SetRate(float64(p.LFOFreqX10)/10.0, e.sampleRateHz)
	e.lfoGen.SetRampTime(p.LFORampMs)

	e.mixer.OutGain = fixed.FromFloat(float64(p.MixerOutGainX10) / 10.0)

	e.reverb.SetMix(fixed.FromFloat(float64(cfg.ReverbMixPc) / 100.0))
	e.reverb.SetAtten(fixed.FromFloat(float64(cfg.ReverbAttenPc) / 100.0))

	e.pub.storeLimiterCeiling(limiter.Ceiling(p.LimiterLevelPc))
	for i := range e.oscs {
		e.pub.storeOscFactor(i, fixed.One)
	}
	e.pub.storeOutAmp(0)
}

func env1TimesFromPatch(p patch.Patch, velocity int) envelope.Times {
	attackMs := p.EnvAttackMs
	if p.EnvVelocityMod > 0 {
		scale := 1 - (p.EnvVelocityMod/100.0)*(float64(velocity)/127.0)
		if scale < 0 {
			scale = 0
		}
		attackMs *= scale
	}
	return envelope.Times{
		AttackMs:   attackMs,
		HoldMs:     p.EnvHoldMs,
		DecayMs:    p.EnvDecayMs,
		SustainLvl: fixed.FromFloat(p.EnvSustainPct / 100.0),
		ReleaseMs:  p.EnvReleaseMs,
	}
}

func contourTimesFromPatch(p patch.Patch) contour.Times {
	return contour.Times{
		StartLevel: fixed.FromFloat(p.ContourStartPct / 100.0),
		DelayMs:    p.ContourDelayMs,
		RampMs:     p.ContourRampMs,
		HoldLevel:  fixed.FromFloat(p.ContourHoldPct / 100.0),
	}
}

func env2TimesFromPatch(p patch.Patch) contour.Env2Times {
	return contour.Env2Times{
		DecayMs:    p.Env2DecayMs,
		SustainLvl: fixed.FromFloat(p.Env2SustainPct / 100.0),
	}
}

// NoteOn applies a MIDI note-on. Contour and ENV2 retrigger unconditionally
// on every note-on, including legato glides; ENV1's Attack and the LFO
// gate retrigger only for a fresh attack (no note active, or legato off).
func (e *Engine) NoteOn(note, vel int) {
	if vel == 0 {
		// note_on(n, 0) is the standard MIDI running-status idiom for
		// note_off(n); treat it identically.
		e.NoteOff(note)
		return
	}
	retrigger := e.note.NoteOn(note, vel)
	e.contour.NoteOn(contourTimesFromPatch(e.patch))
	e.env2.NoteOn(env2TimesFromPatch(e.patch))
	e.env1.NoteOn(env1TimesFromPatch(e.patch, vel), !retrigger)
	if retrigger {
		e.lfoGen.NoteOn()
	}
	e.recompute()
}

// NoteChange updates the base frequency without retriggering any
// envelope, for MIDI running-status chords folded to mono upstream.
func (e *Engine) NoteChange(note int) {
	e.note.NoteChange(note)
	e.recompute()
}

// NoteOff releases the envelope if note is the currently active note; a
// note-off for any other note is a no-op.
func (e *Engine) NoteOff(note int) {
	if e.note.NoteOff(note) {
		e.env1.NoteOff()
	}
}

// PitchBend applies a bipolar 14-bit pitch-bend value.
func (e *Engine) PitchBend(bend14 int16) {
	e.note.PitchBendFactor = control.PitchBendFactor(bend14, e.cfg.PitchBendEnable, e.cfg.PitchBendRange)
	e.recompute()
}

// Expression applies a 14-bit unsigned expression controller value. CC2
// (Breath Controller) gets the breath-style compensation factor; CC7/CC11
// (Volume/Expression) do not.
func (e *Engine) Expression(data14 uint16) {
	breath := e.cfg.ExpressionCCNum == 2
	e.note.ExpressionLevel = control.ExpressionLevel(data14, breath)
}

// Modulation applies a 14-bit unsigned modulation controller value.
func (e *Engine) Modulation(data14 uint16) {
	e.note.ModulationLevel = control.ModulationLevel(data14)
}

// AllSoundOff immediately silences the engine (MIDI CC120/121), matching
// the all-sound-off control message.
func (e *Engine) AllSoundOff() {
	e.note.Reset()
	e.env1.Reset()
	e.contour.Reset()
	e.env2.Reset()
	e.lfoGen.Reset()
	e.pub.storeOutAmp(0)
}

// SetLegato enables or disables mono-legato note handling.
func (e *Engine) SetLegato(on bool) { e.note.SetLegato(on) }

// expressionLevel returns the effective expression level, substituting
// full scale when expression input is disabled in configuration -- the
// engine's documented resolution for AmpldControlSource=Expression with
// no expression controller attached.
func (e *Engine) expressionLevel() fixed.Q {
	if e.cfg.ExpressionDisabled() {
		return fixed.MaxLevel
	}
	return e.note.ExpressionLevel
}

// vibratoFactor computes the FM frequency multiplier for the current
// control tick, per VibratoCtrlMode.
func (e *Engine) vibratoFactor() fixed.Q {
	switch e.cfg.VibratoCtrlMode {
	case control.VibratoDisabled:
		return fixed.One
	case control.VibratoByModulationCC:
		depth := fixed.Mul(e.note.ModulationLevel, fixed.FromFloat(e.patch.LFOFMDepth))
		return e.lfoGen.FMFactorUngated(depth)
	default: // Automatic, ByEffectSwitch
		return e.lfoGen.FMFactor(fixed.FromFloat(e.patch.LFOFMDepth))
	}
}

// recompute recomputes and publishes oscillator steps and mod-source
// factors from current note/patch/config state; called from NoteOn,
// NoteChange, PitchBend and every control tick.
func (e *Engine) recompute() {
	vibrato := e.vibratoFactor()
	velocity := fixed.FromFloat(float64(e.note.Velocity) / 127.0)

	var lfoAM fixed.Q
	if e.patch.LFOAMDepth > 0 {
		lfoAM = e.lfoGen.AMModulatorTerm(fixed.FromFloat(e.patch.LFOAMDepth / 100.0))
	}

	mods := oscillator.Modulators{
		Contour:      e.contour.Level(),
		Env2:         e.env2.Level(),
		Modulation:   e.note.ModulationLevel,
		Expression:   e.expressionLevel(),
		LFOAmplitude: lfoAM,
		Velocity:     velocity,
	}

	for i := range e.oscs {
		step := e.oscs[i].ComputeStep(e.note.BaseFreqHz, e.note.PitchBendFactor, vibrato, e.sampleRateHz)
		e.oscs[i].SetStep(step)
		e.pub.storeOscFactor(i, oscillator.ModFactor(e.oscs[i].ModSource, mods))
	}

	ampSrc := mixer.AmpSource(e.patch.AmpldControlSource)
	if e.cfg.AudioAmpldCtrlMode != config.AmpldCtrlUsePatch {
		ampSrc = mixer.AmpSource(e.cfg.AudioAmpldCtrlMode - 1)
	}
	outAmp := mixer.OutputAmplitude(ampSrc, e.env1.Level(), velocity, e.expressionLevel())
	e.pub.storeOutAmp(outAmp)
}

// ProcessControlTick advances all control-rate state (ENV1, Contour,
// ENV2, LFO gate) by one 1ms tick and republishes the coefficients the
// audio context reads.
func (e *Engine) ProcessControlTick() {
	e.env1.Tick(controlTickMs)
	e.contour.Tick(controlTickMs)
	e.env2.Tick(controlTickMs)
	e.lfoGen.TickControl(controlTickMs)
	e.recompute()
}

// RenderSample renders and returns one audio sample in Q12.20. It must
// never allocate, block, or take a lock.
func (e *Engine) RenderSample() fixed.Q {
	var oscSamples [oscillator.Count]fixed.Q
	var mixSteps [oscillator.Count]int
	for i := range e.oscs {
		raw := e.oscs[i].Render(e.table)
		factor := e.pub.loadOscFactor(i)
		oscSamples[i] = fixed.Mul(raw, factor)
		mixSteps[i] = e.oscs[i].MixStep
	}

	e.lfoGen.RenderSample()

	mixed := e.mixer.Sum(oscSamples, mixSteps)
	amplified := fixed.Mul(mixed, e.pub.loadOutAmp())
	reverbed := e.reverb.Process(amplified)
	limited := limiter.Process(reverbed, e.pub.loadLimiterCeiling())
	return fixed.SaturateSignal(limited)
}

// PitchBendFactor returns the currently applied pitch-bend frequency
// multiplier, for diagnostics.
func (e *Engine) PitchBendFactor() fixed.Q { return e.note.PitchBendFactor }

// ExpressionLevel returns the currently applied expression level, for
// diagnostics.
func (e *Engine) ExpressionLevel() fixed.Q { return e.expressionLevel() }

// Env1Level returns the current ENV1 amplitude envelope level, for
// diagnostics and characterization tests.
func (e *Engine) Env1Level() fixed.Q { return e.env1.Level() }

// Env1Phase returns the current ENV1 phase, for diagnostics.
func (e *Engine) Env1Phase() envelope.Phase { return e.env1.Phase() }

// ISRDutyEstimate returns the host driver's most recently reported
// fraction of the sample period spent rendering, for diagnostics.
func (e *Engine) ISRDutyEstimate() float64 { return e.isrDuty }

// SetISRDutyEstimate records a duty-cycle measurement taken by the host
// driver; the engine itself never measures its own timing.
func (e *Engine) SetISRDutyEstimate(duty float64) { e.isrDuty = duty }

// LoadPreset swaps in a built-in preset by program-change index,
// preserving the active note state (a program change mid-note retimbres
// without cutting the note). An index outside the preset bank is ignored.
func (e *Engine) LoadPreset(idx int) {
	if idx < 0 || idx >= patch.GetNumberOfPresets() {
		return
	}
	p := patch.Preset(idx)
	e.cfg.SelectedPreset = idx
	e.patch = p
	e.lfoGen.SetRate(float64(p.LFOFreqX10)/10.0, e.sampleRateHz)
	e.lfoGen.SetRampTime(p.LFORampMs)
	e.mixer.OutGain = fixed.FromFloat(float64(p.MixerOutGainX10) / 10.0)
	e.pub.storeLimiterCeiling(limiter.Ceiling(p.LimiterLevelPc))
	for i := range e.oscs {
		e.oscs[i].FreqMultIdx = p.Osc[i].FreqMultIdx
		e.oscs[i].DetuneCents = p.Osc[i].DetuneCents
		e.oscs[i].ModSource = p.Osc[i].ModSource
		e.oscs[i].MixStep = p.Osc[i].MixStep
	}
	e.recompute()
}
