package config

import "testing"

func TestClampPitchBendRange(t *testing.T) {
	c := Config{PitchBendRange: 0}
	c.Clamp()
	if c.PitchBendRange != 1 {
		t.Errorf("PitchBendRange = %d, want 1", c.PitchBendRange)
	}
	c2 := Config{PitchBendRange: 99}
	c2.Clamp()
	if c2.PitchBendRange != 12 {
		t.Errorf("PitchBendRange = %d, want 12", c2.PitchBendRange)
	}
}

func TestClampReverbPercentages(t *testing.T) {
	c := Config{ReverbMixPc: -5, ReverbAttenPc: 250}
	c.Clamp()
	if c.ReverbMixPc != 0 {
		t.Errorf("ReverbMixPc = %d, want 0", c.ReverbMixPc)
	}
	if c.ReverbAttenPc != 95 {
		t.Errorf("ReverbAttenPc = %d, want 95", c.ReverbAttenPc)
	}

	c2 := Config{ReverbAttenPc: 10}
	c2.Clamp()
	if c2.ReverbAttenPc != 50 {
		t.Errorf("ReverbAttenPc = %d, want 50", c2.ReverbAttenPc)
	}
}

func TestClampMIDIChannel(t *testing.T) {
	c := Config{MIDIChannel: -1}
	c.Clamp()
	if c.MIDIChannel != 0 {
		t.Errorf("MIDIChannel = %d, want 0", c.MIDIChannel)
	}
	c2 := Config{MIDIChannel: 20}
	c2.Clamp()
	if c2.MIDIChannel != 15 {
		t.Errorf("MIDIChannel = %d, want 15", c2.MIDIChannel)
	}
}

func TestExpressionDisabledWhenCCZero(t *testing.T) {
	c := Config{ExpressionCCNum: 0}
	if !c.ExpressionDisabled() {
		t.Error("expected ExpressionDisabled() true for CC 0")
	}
	c.ExpressionCCNum = 2
	if c.ExpressionDisabled() {
		t.Error("expected ExpressionDisabled() false for CC 2")
	}
}

func TestDefaultIsAlreadyInRange(t *testing.T) {
	c := Default()
	before := c
	c.Clamp()
	if c != before {
		t.Error("Default() config should already satisfy Clamp()")
	}
}
