// Package reverb implements the engine's fixed-length single-tap feedback
// delay line with a wet/dry mix, as described by the synth's reverb
// component design.
package reverb

import (
	"math"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

// MaxDelaySamples bounds the delay line length (REVERB_DELAY_MAX_SIZE).
const MaxDelaySamples = 2000

// DecayTimeSec is the nominal RT60-ish reference the firmware derives its
// default attenuation from (REVERB_DECAY_TIME_SEC), usable as the rt60Sec
// argument of AttenFromRT60. It is not load-bearing: New sets a fixed 0.70
// default Atten and does not use it.
const DecayTimeSec = 1.5

// Reverb is a one-tap feedback comb: buf[head] is read as the delayed
// sample, then overwritten with the new input plus feedback, before the
// head pointer advances. It is owned exclusively by the audio context; the
// control context only ever writes Mix/Atten, each a single atomic word.
type Reverb struct {
	buf  [MaxDelaySamples]fixed.Q
	head int
	len  int

	mixBits   uint32 // atomic-friendly Q12.20 bits for wet/dry mix, 0..1
	attenBits uint32 // atomic-friendly Q12.20 bits for feedback coefficient, 0..1
}

// New creates a reverb sized for loopTimeSec at the given sample rate,
// clamped to MaxDelaySamples.
func New(sampleRateHz int, loopTimeSec float64) *Reverb {
	n := int(loopTimeSec * float64(sampleRateHz))
	if n < 1 {
		n = 1
	}
	if n > MaxDelaySamples {
		n = MaxDelaySamples
	}
	r := &Reverb{len: n}
	r.SetMix(0)
	r.SetAtten(fixed.FromFloat(0.70))
	return r
}

// SetMix sets the wet/dry mix (0..1), called from the control context.
func (r *Reverb) SetMix(mix fixed.Q) { storeQ(&r.mixBits, mix) }

// SetAtten sets the feedback coefficient (0..1), called from the control context.
func (r *Reverb) SetAtten(atten fixed.Q) { storeQ(&r.attenBits, atten) }

// Mix returns the current wet/dry mix.
func (r *Reverb) Mix() fixed.Q { return loadQ(&r.mixBits) }

// Atten returns the current feedback coefficient.
func (r *Reverb) Atten() fixed.Q { return loadQ(&r.attenBits) }

// Process runs one sample through the delay line: d = buf[head];
// buf[head] = x + d*g; head = (head+1) mod L; out = x*(1-mix) + d*mix.
// With Mix() == 0 the reverb is bypassed by contract: out == x bit-for-bit.
func (r *Reverb) Process(x fixed.Q) fixed.Q {
	mix := r.Mix()
	if mix == 0 {
		return x
	}
	g := r.Atten()
	d := r.buf[r.head]
	r.buf[r.head] = fixed.Sat(int64(x) + int64(fixed.Mul(d, g)))
	r.head++
	if r.head >= r.len {
		r.head = 0
	}
	dry := fixed.Mul(x, fixed.One-mix)
	wet := fixed.Mul(d, mix)
	return fixed.Sat(int64(dry) + int64(wet))
}

// Reset clears the delay line (engine_prepare()).
func (r *Reverb) Reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.head = 0
}

func storeQ(addr *uint32, q fixed.Q) {
	atomicStoreUint32(addr, uint32(q))
}

func loadQ(addr *uint32) fixed.Q {
	return fixed.Q(atomicLoadUint32(addr))
}

// AttenFromRT60 derives a feedback coefficient g such that g^(N cycles over
// rt60Sec at loopTimeSec per cycle) reaches approximately -60dB, mirroring
// how the firmware's REVERB_DECAY_TIME_SEC constant informs a default Atten.
func AttenFromRT60(rt60Sec, loopTimeSec float64) fixed.Q {
	if loopTimeSec <= 0 || rt60Sec <= 0 {
		return fixed.FromFloat(0.70)
	}
	cycles := rt60Sec / loopTimeSec
	g := math.Pow(10, -3.0/cycles) // -60dB = 10^(-3)
	return fixed.FromFloat(g)
}
