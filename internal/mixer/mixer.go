// Package mixer implements the six-input mixer (quantized log-scaled gains
// plus a shared output gain) and the output-amplitude stage that follows it.
package mixer

import (
	"math"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

// GainSteps is the number of entries in the quantized input-gain table
// (0 = mute, 16 = unity).
const GainSteps = 17

// GainTable is a 17-entry logarithmic gain lookup: entry 0 is zero (mute),
// entry 16 is unity (1.0), and intermediate entries trace a log-scaled
// pot curve, monotonically non-decreasing.
var GainTable = buildGainTable()

func buildGainTable() [GainSteps]fixed.Q {
	var t [GainSteps]fixed.Q
	for i := 1; i < GainSteps; i++ {
		// -22.5 dB at step 1, ramping to 0 dB (unity) at step 16.
		db := (float64(i) - 16.0) * 1.5
		t[i] = fixed.FromFloat(math.Pow(10, db/20))
	}
	t[GainSteps-1] = fixed.One
	return t
}

// InputGain returns the quantized gain for a mixer input given its mix_step
// (0..16); out-of-range steps saturate to the nearest valid entry.
func InputGain(mixStep int) fixed.Q {
	if mixStep < 0 {
		mixStep = 0
	}
	if mixStep >= GainSteps {
		mixStep = GainSteps - 1
	}
	return GainTable[mixStep]
}

// AmpSource selects the output-amplitude coefficient source.
type AmpSource int

const (
	AmpConstMax AmpSource = iota
	AmpConstLow
	AmpEnv1Velocity
	AmpExpression
)

// OutputAmplitude computes the final output-amplitude coefficient per
// AmpSource, given the current ENV1 level, velocity (0..1) and expression
// level, all in Q12.20.
func OutputAmplitude(src AmpSource, env1Level, velocity, expressionLevel fixed.Q) fixed.Q {
	switch src {
	case AmpConstMax:
		return fixed.One
	case AmpConstLow:
		return fixed.Half
	case AmpEnv1Velocity:
		return fixed.Mul(env1Level, velocity)
	case AmpExpression:
		return expressionLevel
	default:
		return fixed.One
	}
}

// Mixer sums six gained, amplitude-modulated oscillator inputs through a
// 64-bit intermediate and applies the shared output gain.
type Mixer struct {
	OutGain fixed.Q // MixerOutGain_x10/10, as a Q12.20 factor
}

// Sum mixes six already-scaled oscillator samples (post per-oscillator
// mod-source amplitude, pre input gain) with their quantized input gains,
// then applies OutGain. The sum is expressly permitted to exceed ±1.0
// internally; saturation happens downstream at the limiter.
func (m *Mixer) Sum(oscSamples [6]fixed.Q, mixSteps [6]int) fixed.Q {
	var acc int64
	for i := 0; i < 6; i++ {
		g := InputGain(mixSteps[i])
		acc += int64(fixed.Mul(oscSamples[i], g))
	}
	raw := fixed.Sat(acc)
	return fixed.Mul(raw, m.OutGain)
}
