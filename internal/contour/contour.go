// Package contour implements the Contour (Delay-Ramp-Hold) generator and
// the ENV2 transient decay generator, both re-triggered on every note-on.
package contour

import (
	"math"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

// Phase identifies a Contour generator segment.
type Phase int

const (
	Idle Phase = iota
	Delay
	Ramp
	Hold
)

// Times holds Contour segment parameters derived from the active patch.
type Times struct {
	StartLevel fixed.Q
	DelayMs    float64
	RampMs     float64
	HoldLevel  fixed.Q
}

// Contour is the Delay-Ramp-Hold control generator feeding oscillator
// amplitude modulation (mod_source Contour+/Contour-).
type Contour struct {
	phase     Phase
	level     fixed.Q
	times     Times
	delayLeft float64
	rampLeft  float64
}

// Reset forces Idle with zero level.
func (c *Contour) Reset() { *c = Contour{} }

// NoteOn re-triggers the generator, even during legato.
func (c *Contour) NoteOn(times Times) {
	c.times = times
	c.level = times.StartLevel
	c.delayLeft = times.DelayMs
	c.rampLeft = times.RampMs
	if times.DelayMs > 0 {
		c.phase = Delay
	} else {
		c.phase = Ramp
	}
}

// Level returns the current Contour level in Q12.20.
func (c *Contour) Level() fixed.Q { return c.level }

// Phase returns the current segment.
func (c *Contour) Phase() Phase { return c.phase }

// Tick advances the generator by dtMs milliseconds of control-rate time.
func (c *Contour) Tick(dtMs float64) {
	switch c.phase {
	case Idle, Hold:
		// hold indefinitely until next note-on
	case Delay:
		c.delayLeft -= dtMs
		if c.delayLeft <= 0 {
			c.phase = Ramp
		}
	case Ramp:
		if c.times.RampMs <= 0 {
			c.level = c.times.HoldLevel
			c.phase = Hold
			return
		}
		step := fixed.Mul(c.times.HoldLevel-c.times.StartLevel, fixed.FromFloat(dtMs/c.times.RampMs))
		c.level += step
		c.rampLeft -= dtMs
		if c.rampLeft <= 0 {
			c.level = c.times.HoldLevel
			c.phase = Hold
		}
	}
}

// Env2Times holds ENV2 transient parameters derived from the active patch.
type Env2Times struct {
	DecayMs     float64
	SustainLvl  fixed.Q
}

// Env2 is a monotone exponential-decay transient generator that does not
// release on note-off; it is reset only on the next note-on.
type Env2 struct {
	level fixed.Q
	times Env2Times
	tau   float64
}

// NoteOn restarts ENV2 from full scale.
func (e *Env2) NoteOn(times Env2Times) {
	e.times = times
	e.level = fixed.One
	e.tau = times.DecayMs / 3.0 // ~95% progress (1-e^-3) within DecayMs
}

// Level returns the current ENV2 level in Q12.20.
func (e *Env2) Level() fixed.Q { return e.level }

// Tick advances ENV2 by dtMs milliseconds.
func (e *Env2) Tick(dtMs float64) {
	if e.tau <= 0 {
		e.level = e.times.SustainLvl
		return
	}
	alpha := 1 - math.Exp(-dtMs/e.tau)
	e.level = fixed.Lerp(e.level, e.times.SustainLvl, fixed.FromFloat(alpha))
}

// Reset forces ENV2 to its at-rest state (full scale, e.g. before any note).
func (e *Env2) Reset() { *e = Env2{level: fixed.One} }
