package control

import (
	"math"
	"testing"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

func TestNoteFrequencyA4(t *testing.T) {
	f := NoteFrequency(69)
	if math.Abs(f-440.0) > 1e-6 {
		t.Errorf("NoteFrequency(69) = %v, want 440", f)
	}
}

func TestNoteFrequencyMiddleC(t *testing.T) {
	f := NoteFrequency(60)
	want := 440.0 * math.Pow(2, -9.0/12.0)
	if math.Abs(f-want) > 1e-6 {
		t.Errorf("NoteFrequency(60) = %v, want %v", f, want)
	}
}

func TestExpressionLevelFullScale(t *testing.T) {
	l := ExpressionLevel(0x3FFF, false)
	if math.Abs(l.Float()-1.0) > 1e-3 {
		t.Errorf("ExpressionLevel(full, false) = %v, want 1.0", l.Float())
	}
}

func TestExpressionLevelBreathCompensationSaturates(t *testing.T) {
	l := ExpressionLevel(0x3FFF, true)
	if l.Float() > fixed.MaxLevel.Float()+1e-6 {
		t.Errorf("compensated level %v exceeds full scale", l.Float())
	}
	if l.Float() < 0.99 {
		t.Errorf("compensated level %v, want saturated near full scale", l.Float())
	}
}

func TestModulationLevelHalfScale(t *testing.T) {
	l := ModulationLevel(0x1FFF)
	if math.Abs(l.Float()-0.5) > 0.01 {
		t.Errorf("ModulationLevel(half) = %v, want ~0.5", l.Float())
	}
}

func TestPitchBendFactorDisabledIsUnity(t *testing.T) {
	f := PitchBendFactor(8191, false, 2)
	if f != fixed.One {
		t.Errorf("PitchBendFactor(disabled) = %v, want unity", f.Float())
	}
}

func TestPitchBendFactorTwoSemitoneUp(t *testing.T) {
	f := PitchBendFactor(8192, true, 2) // clamps to 8191
	want := math.Pow(2, (8191.0/8192.0)*2.0/12.0)
	if math.Abs(f.Float()-want) > 0.01 {
		t.Errorf("PitchBendFactor = %v, want ~%v", f.Float(), want)
	}
}

func TestPitchBendFactorZeroIsUnity(t *testing.T) {
	f := PitchBendFactor(0, true, 12)
	if math.Abs(f.Float()-1.0) > 0.01 {
		t.Errorf("PitchBendFactor(0) = %v, want 1.0", f.Float())
	}
}

func TestNoteOnFreshAttackWhenIdle(t *testing.T) {
	s := NewNoteState()
	if retrig := s.NoteOn(60, 100); !retrig {
		t.Error("expected retrigger on first note-on")
	}
	if !s.GateOn || s.NoteNumber != 60 {
		t.Error("note state not updated")
	}
}

func TestNoteOnLegatoDoesNotRetrigger(t *testing.T) {
	s := NewNoteState()
	s.SetLegato(true)
	s.NoteOn(60, 100)
	if retrig := s.NoteOn(67, 90); retrig {
		t.Error("expected no retrigger for legato glide onto active note")
	}
	if s.NoteNumber != 67 {
		t.Errorf("NoteNumber = %d, want 67", s.NoteNumber)
	}
}

func TestNoteOnNonLegatoAlwaysRetriggers(t *testing.T) {
	s := NewNoteState()
	s.NoteOn(60, 100)
	if retrig := s.NoteOn(67, 90); !retrig {
		t.Error("expected retrigger when legato is off")
	}
}

func TestNoteOffMatchingNoteReleases(t *testing.T) {
	s := NewNoteState()
	s.NoteOn(60, 100)
	if !s.NoteOff(60) {
		t.Error("expected NoteOff to match active note")
	}
	if s.GateOn {
		t.Error("expected GateOn false after matching NoteOff")
	}
}

func TestNoteOffNonMatchingNoteIsNoOp(t *testing.T) {
	s := NewNoteState()
	s.NoteOn(60, 100)
	if s.NoteOff(61) {
		t.Error("expected NoteOff for different note to be a no-op")
	}
	if !s.GateOn {
		t.Error("expected GateOn to remain true")
	}
}

func TestNoteChangeUpdatesFreqWithoutGateChange(t *testing.T) {
	s := NewNoteState()
	s.NoteOn(60, 100)
	s.NoteChange(64)
	if s.NoteNumber != 64 || !s.GateOn {
		t.Error("NoteChange should update note number and leave gate on")
	}
}
