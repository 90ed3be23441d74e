// Package envelope implements ENV1, the six-phase ADHSR amplitude envelope
// generator. All segment updates happen on the 1ms control-rate tick.
package envelope

import (
	"math"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

// Phase identifies an ENV1 segment.
type Phase int

const (
	Idle Phase = iota
	Attack
	PeakHold
	Decay
	Sustain
	Release
)

// Times holds ENV1 segment durations/levels in engine-native units derived
// from patch parameters.
type Times struct {
	AttackMs    float64
	HoldMs      float64
	DecayMs     float64
	SustainLvl  fixed.Q
	ReleaseMs   float64
}

// Env1 is the ADHSR amplitude envelope generator.
type Env1 struct {
	phase     Phase
	level     fixed.Q
	times     Times
	holdLeft  float64 // ms remaining in PeakHold
	decayTau  float64 // ms time constant for Decay
	releaseTau float64 // ms time constant for Release
}

// Reset forces the envelope to Idle with zero level (engine_prepare()).
func (e *Env1) Reset() {
	*e = Env1{}
}

// NoteOn starts (or restarts) the Attack phase using the given segment
// times. Skipped if legato is requested and the envelope is already active.
func (e *Env1) NoteOn(times Times, legato bool) {
	if legato && e.phase != Idle {
		e.times = times // refresh times but do not re-attack
		return
	}
	e.times = times
	e.phase = Attack
	e.holdLeft = times.HoldMs
	// Decay reaches ~95% of the way to sustain in DecayTime ms: exp(-3) ≈ 0.0498.
	e.decayTau = times.DecayMs / 3.0
	e.releaseTau = times.ReleaseMs / 3.0
}

// NoteOff transitions Sustain (or any active phase) to Release.
func (e *Env1) NoteOff() {
	if e.phase != Idle {
		e.phase = Release
	}
}

// Phase returns the current envelope phase.
func (e *Env1) Phase() Phase { return e.phase }

// Level returns the current envelope level in Q12.20.
func (e *Env1) Level() fixed.Q { return e.level }

// Active reports whether the envelope is anywhere other than Idle.
func (e *Env1) Active() bool { return e.phase != Idle }

// Tick advances the envelope by one control-rate step of dtMs milliseconds.
func (e *Env1) Tick(dtMs float64) {
	switch e.phase {
	case Idle:
		// nothing to do
	case Attack:
		if e.times.AttackMs <= 0 {
			e.level = fixed.MaxLevel
		} else {
			step := fixed.FromFloat(dtMs / e.times.AttackMs)
			e.level += step
		}
		if e.level >= fixed.MaxLevel {
			e.level = fixed.MaxLevel
			e.phase = PeakHold
			if e.times.HoldMs <= 0 {
				// HoldTime==0 disables Decay entirely: hold at
				// full-scale until NoteOff forces Release.
				e.holdLeft = math.Inf(1)
			}
		}
	case PeakHold:
		e.holdLeft -= dtMs
		if e.holdLeft <= 0 {
			e.phase = Decay
		}
	case Decay:
		if e.decayTau <= 0 {
			e.level = e.times.SustainLvl
		} else {
			target := e.times.SustainLvl
			alpha := 1 - math.Exp(-dtMs/e.decayTau)
			e.level = fixed.Lerp(e.level, target, fixed.FromFloat(alpha))
		}
		if e.level <= e.times.SustainLvl+fixed.MinLevel {
			e.level = e.times.SustainLvl
			e.phase = Sustain
		}
	case Sustain:
		e.level = e.times.SustainLvl
	case Release:
		if e.releaseTau <= 0 {
			e.level = 0
		} else {
			alpha := 1 - math.Exp(-dtMs/e.releaseTau)
			e.level = fixed.Lerp(e.level, 0, fixed.FromFloat(alpha))
		}
		if e.level <= fixed.MinLevel {
			e.level = 0
			e.phase = Idle
		}
	}
}
