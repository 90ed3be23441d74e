// Package limiter implements the engine's soft clipper: a hard ceiling at
// a configurable level, with MAX_CLIPPING_LEVEL always enforced as the
// absolute ceiling regardless of configuration.
package limiter

import "github.com/mjbauer/sigma6synth/internal/fixed"

// MaxClippingLevel is the absolute output ceiling the limiter always
// enforces, even if LimiterLevelPc is configured to 0.
const MaxClippingLevel = 0.97

// Ceiling computes the effective limiter ceiling in Q12.20 from a patch's
// LimiterLevelPc (0..100); 0 still yields the hard MaxClippingLevel ceiling.
func Ceiling(limiterLevelPc int) fixed.Q {
	pcCeiling := float64(limiterLevelPc) / 100.0
	if pcCeiling <= 0 || pcCeiling > MaxClippingLevel {
		pcCeiling = MaxClippingLevel
	}
	return fixed.FromFloat(pcCeiling)
}

// Process applies the soft clip: |y| <= ceiling passes through unchanged;
// otherwise the output saturates to ±ceiling.
func Process(y, ceiling fixed.Q) fixed.Q {
	if y > ceiling {
		return ceiling
	}
	if y < -ceiling {
		return -ceiling
	}
	return y
}
