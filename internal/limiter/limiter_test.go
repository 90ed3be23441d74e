package limiter

import (
	"math"
	"testing"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

func TestCeilingZeroPercentStillEnforcesMaxClip(t *testing.T) {
	c := Ceiling(0)
	if math.Abs(c.Float()-MaxClippingLevel) > 1e-4 {
		t.Errorf("Ceiling(0) = %v, want %v", c.Float(), MaxClippingLevel)
	}
}

func TestCeilingNeverExceedsMaxClip(t *testing.T) {
	c := Ceiling(150)
	if c.Float() > MaxClippingLevel+1e-6 {
		t.Errorf("Ceiling(150) = %v, want <= %v", c.Float(), MaxClippingLevel)
	}
}

func TestProcessPassesThroughBelowCeiling(t *testing.T) {
	c := Ceiling(90)
	x := fixed.FromFloat(0.3)
	if Process(x, c) != x {
		t.Error("expected pass-through below ceiling")
	}
}

func TestProcessClampsAboveCeiling(t *testing.T) {
	c := Ceiling(90)
	x := fixed.FromFloat(5.0)
	out := Process(x, c)
	if out != c {
		t.Errorf("Process(5.0) = %v, want ceiling %v", out.Float(), c.Float())
	}
	negOut := Process(-x, c)
	if negOut != -c {
		t.Errorf("Process(-5.0) = %v, want -ceiling %v", negOut.Float(), -c.Float())
	}
}
