// Package wavetable holds the single shared wave table sampled by all six
// oscillators: a band-limited, single-cycle periodic waveform of Size
// signed samples in Q12.20.
package wavetable

import (
	"math"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

// Size is the number of samples in one cycle of the wave table.
const Size = 2048

// IndexBits is the number of high phase bits used to index the table
// (log2(Size)); the remaining bits supply the interpolation fraction.
const IndexBits = 11

// Table is an immutable, shared, single-cycle waveform.
type Table struct {
	samples [Size]fixed.Q
}

// Sine builds the default band-limited sine wave table.
func Sine() *Table {
	t := &Table{}
	for i := 0; i < Size; i++ {
		v := math.Sin(2 * math.Pi * float64(i) / float64(Size))
		t.samples[i] = fixed.FromFloat(v * float64(fixed.MaxLevel.Float()))
	}
	return t
}

// BandLimitedHarmonics builds a single-cycle waveform from a set of
// harmonic amplitudes (harmonics[0] is the fundamental), normalized so the
// peak sample hits MaxLevel. This is how additive/subtractive presets
// supply their own timbre without exceeding the anti-alias guard: callers
// should omit harmonics above Nyquist/fundamental for the intended pitch
// range.
func BandLimitedHarmonics(amps []float64) *Table {
	t := &Table{}
	peak := 0.0
	buf := make([]float64, Size)
	for i := 0; i < Size; i++ {
		var v float64
		for h, a := range amps {
			if a == 0 {
				continue
			}
			v += a * math.Sin(2*math.Pi*float64(h+1)*float64(i)/float64(Size))
		}
		buf[i] = v
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	if peak == 0 {
		peak = 1
	}
	for i, v := range buf {
		t.samples[i] = fixed.FromFloat((v / peak) * fixed.MaxLevel.Float())
	}
	return t
}

// Sample performs linear interpolation between two adjacent table entries
// given a 32-bit phase angle: the top IndexBits bits select the base index,
// the next 10 bits supply a Q0.10 interpolation fraction.
func (t *Table) Sample(phase uint32) fixed.Q {
	idx := phase >> (32 - IndexBits)
	frac := (phase >> (32 - IndexBits - 10)) & 0x3FF
	i0 := t.samples[idx]
	i1 := t.samples[(idx+1)%Size]
	// (wave[i+1] - wave[i]) * frac >> 10, matching the firmware's Q0.10 frac.
	delta := int64(i1-i0) * int64(frac) >> 10
	return i0 + fixed.Q(delta)
}
