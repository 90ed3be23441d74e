package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedNoteOn(t *testing.T) {
	p := NewParser(2)
	ev, ok, err := p.Feed([]byte{0x90, 60, 100})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventNoteOn, ev.Kind)
	assert.Equal(t, 60, ev.Note)
	assert.Equal(t, 100, ev.Velocity)
}

func TestFeedNoteOnZeroVelocityIsNoteOff(t *testing.T) {
	p := NewParser(2)
	ev, ok, err := p.Feed([]byte{0x90, 60, 0})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventNoteOff, ev.Kind)
	assert.Equal(t, 60, ev.Note)
}

func TestFeedNoteOff(t *testing.T) {
	p := NewParser(2)
	ev, ok, err := p.Feed([]byte{0x80, 60, 0})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventNoteOff, ev.Kind)
}

func TestFeedModulationMSBThenLSB(t *testing.T) {
	p := NewParser(2)
	ev, ok, err := p.Feed([]byte{0xB0, 1, 0x40}) // CC1 MSB
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventModulation, ev.Kind)
	assert.Equal(t, uint16(0x40)<<7, ev.Value14)

	ev, ok, err = p.Feed([]byte{0xB0, 33, 0x10}) // CC33 LSB
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventModulation, ev.Kind)
	assert.Equal(t, uint16(0x40)<<7|0x10, ev.Value14)
}

func TestFeedExpressionOnConfiguredCC(t *testing.T) {
	p := NewParser(11)
	ev, ok, err := p.Feed([]byte{0xB0, 11, 0x7F})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventExpression, ev.Kind)

	ev, ok, err = p.Feed([]byte{0xB0, 43, 0x00}) // 11+32 LSB
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventExpression, ev.Kind)
}

func TestFeedAllSoundOff(t *testing.T) {
	p := NewParser(2)
	for _, ctrl := range []byte{120, 121} {
		ev, ok, err := p.Feed([]byte{0xB0, ctrl, 0})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, EventAllSoundOff, ev.Kind)
	}
}

func TestFeedProgramChange(t *testing.T) {
	p := NewParser(2)
	ev, ok, err := p.Feed([]byte{0xC0, 5})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventProgramChange, ev.Kind)
	assert.Equal(t, 5, ev.Program)
}

func TestFeedPitchBend(t *testing.T) {
	p := NewParser(2)
	// 0xE0, LSB, MSB; center (8192 absolute / 0 relative) is LSB=0, MSB=0x40.
	ev, ok, err := p.Feed([]byte{0xE0, 0x00, 0x40})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventPitchBend, ev.Kind)
}

func TestFeedSysExVendorID(t *testing.T) {
	p := NewParser(2)
	ev, ok, err := p.Feed([]byte{0xF0, 0x73, 0x01, 0x02, 0xF7})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventSysExVendor, ev.Kind)
}

func TestFeedEmptyIsMalformed(t *testing.T) {
	p := NewParser(2)
	_, ok, err := p.Feed(nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFeedUnrecognizedCCIsIgnored(t *testing.T) {
	p := NewParser(2)
	_, ok, err := p.Feed([]byte{0xB0, 64, 127}) // sustain pedal, not routed
	require.NoError(t, err)
	assert.False(t, ok)
}
