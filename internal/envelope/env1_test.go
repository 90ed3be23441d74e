package envelope

import (
	"testing"

	"github.com/mjbauer/sigma6synth/internal/fixed"
)

func fq(f float64) fixed.Q { return fixed.FromFloat(f) }

func TestEnv1AttackReachesFullScale(t *testing.T) {
	var e Env1
	e.NoteOn(Times{AttackMs: 10, HoldMs: 0, DecayMs: 30, SustainLvl: fq(0.5), ReleaseMs: 20}, false)
	for i := 0; i < 20 && e.Phase() == Attack; i++ {
		e.Tick(1)
	}
	if e.Phase() == Attack {
		t.Fatal("envelope should have left Attack within 20ms for a 10ms attack")
	}
}

func TestEnv1HoldZeroSkipsDecayStaysAtFullScale(t *testing.T) {
	var e Env1
	times := Times{AttackMs: 5, HoldMs: 0, DecayMs: 20, SustainLvl: fq(0.3), ReleaseMs: 10}
	e.NoteOn(times, false)
	for i := 0; i < 100; i++ {
		e.Tick(1)
		if e.Phase() == Decay || e.Phase() == Sustain {
			t.Fatalf("HoldTime==0 must skip Decay entirely, got phase %v at tick %d", e.Phase(), i)
		}
	}
	if e.Level() != fixed.MaxLevel {
		t.Errorf("level = %v, want full-scale hold", e.Level().Float())
	}
}

func TestEnv1ReleaseReachesIdle(t *testing.T) {
	var e Env1
	times := Times{AttackMs: 1, HoldMs: 0, DecayMs: 5, SustainLvl: fq(0.4), ReleaseMs: 5}
	e.NoteOn(times, false)
	for i := 0; i < 100 && e.Phase() != Sustain; i++ {
		e.Tick(1)
	}
	e.NoteOff()
	for i := 0; i < 500 && e.Phase() != Idle; i++ {
		e.Tick(1)
	}
	if e.Phase() != Idle {
		t.Fatal("envelope should reach Idle after release")
	}
	if e.Level() != 0 {
		t.Errorf("level at Idle = %v, want 0", e.Level())
	}
}

func TestEnv1LegatoDoesNotReattack(t *testing.T) {
	var e Env1
	times := Times{AttackMs: 1, HoldMs: 2, DecayMs: 5, SustainLvl: fq(0.4), ReleaseMs: 5}
	e.NoteOn(times, false)
	for i := 0; i < 50 && e.Phase() != Sustain; i++ {
		e.Tick(1)
	}
	if e.Phase() != Sustain {
		t.Fatal("setup: envelope should reach sustain")
	}
	e.NoteOn(times, true)
	if e.Phase() != Sustain {
		t.Error("legato note-on must not re-trigger Attack")
	}
}

func TestEnv1NonIncreasingDuringRelease(t *testing.T) {
	var e Env1
	times := Times{AttackMs: 1, HoldMs: 0, DecayMs: 5, SustainLvl: fq(0.6), ReleaseMs: 50}
	e.NoteOn(times, false)
	for i := 0; i < 50 && e.Phase() != Sustain; i++ {
		e.Tick(1)
	}
	e.NoteOff()
	prev := e.Level()
	for i := 0; i < 200; i++ {
		e.Tick(1)
		if e.Level() > prev {
			t.Fatalf("level increased during release: %v -> %v", prev, e.Level())
		}
		prev = e.Level()
	}
}
