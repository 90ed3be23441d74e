package mixer

import (
	"math"
	"testing"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

func TestGainTableMuteAndUnity(t *testing.T) {
	if GainTable[0] != 0 {
		t.Errorf("GainTable[0] = %v, want 0", GainTable[0].Float())
	}
	if GainTable[16].Float() > 1.0001 {
		t.Errorf("GainTable[16] = %v, want <= 1.0", GainTable[16].Float())
	}
	if math.Abs(GainTable[16].Float()-1.0) > 1e-4 {
		t.Errorf("GainTable[16] = %v, want ~1.0 (unity)", GainTable[16].Float())
	}
}

func TestGainTableMonotonic(t *testing.T) {
	for i := 1; i < GainSteps; i++ {
		if GainTable[i] < GainTable[i-1] {
			t.Fatalf("GainTable not monotonic at %d: %v < %v", i, GainTable[i].Float(), GainTable[i-1].Float())
		}
	}
}

func TestInputGainClampsOutOfRange(t *testing.T) {
	if InputGain(-1) != GainTable[0] {
		t.Error("expected clamp to entry 0")
	}
	if InputGain(99) != GainTable[GainSteps-1] {
		t.Error("expected clamp to last entry")
	}
}

func TestOutputAmplitudeModes(t *testing.T) {
	env1 := fixed.FromFloat(0.6)
	velo := fixed.FromFloat(0.8)
	expr := fixed.FromFloat(0.3)
	if v := OutputAmplitude(AmpConstMax, env1, velo, expr); v != fixed.One {
		t.Errorf("ConstMax = %v, want 1.0", v.Float())
	}
	if v := OutputAmplitude(AmpConstLow, env1, velo, expr); v != fixed.Half {
		t.Errorf("ConstLow = %v, want 0.5", v.Float())
	}
	if v := OutputAmplitude(AmpEnv1Velocity, env1, velo, expr); math.Abs(v.Float()-0.48) > 0.01 {
		t.Errorf("Env1Velocity = %v, want ~0.48", v.Float())
	}
	if v := OutputAmplitude(AmpExpression, env1, velo, expr); v != expr {
		t.Errorf("Expression = %v, want %v", v.Float(), expr.Float())
	}
}

func TestMixerSumMuteInputContributesNothing(t *testing.T) {
	m := &Mixer{OutGain: fixed.One}
	samples := [6]fixed.Q{fixed.One, fixed.One, fixed.One, fixed.One, fixed.One, fixed.One}
	steps := [6]int{0, 0, 0, 0, 0, 0}
	if out := m.Sum(samples, steps); out != 0 {
		t.Errorf("all-muted mix = %v, want 0", out.Float())
	}
}

func TestMixerSumUnityPassesThrough(t *testing.T) {
	m := &Mixer{OutGain: fixed.One}
	samples := [6]fixed.Q{fixed.FromFloat(0.1), 0, 0, 0, 0, 0}
	steps := [6]int{16, 0, 0, 0, 0, 0}
	out := m.Sum(samples, steps)
	if math.Abs(out.Float()-0.1) > 0.01 {
		t.Errorf("unity single-input mix = %v, want ~0.1", out.Float())
	}
}
