package simulator

import (
	"testing"

	"github.com/calvinmclean/motortest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputs(t *testing.T) {
	o := NewOutputs(0)
	assert.True(t, o.Step().Off())

	o.Set(motortest.BackLeft, 42)
	assert.Equal(t, uint8(42), o.Get(motortest.BackLeft))
	assert.Equal(t, motortest.Step{motortest.BackLeft: 42}, o.Step())

	history := o.History()
	require.Len(t, history, 1)
	assert.Equal(t, motortest.BackLeft, history[0].Channel)
	assert.Equal(t, uint8(42), history[0].Duty)
}

func TestOutputsHistoryBounded(t *testing.T) {
	o := NewOutputs(4)
	for i := range 10 {
		o.Set(motortest.FrontLeft, uint8(i))
	}

	history := o.History()
	require.Len(t, history, 4)
	assert.Equal(t, uint8(6), history[0].Duty)
	assert.Equal(t, uint8(9), history[3].Duty)
}

func TestOutputsDriveSequencer(t *testing.T) {
	o := NewOutputs(0)
	seq, err := motortest.New(motortest.DefaultTable, o)
	require.NoError(t, err)

	for i, step := range motortest.DefaultTable {
		assert.Equal(t, i, seq.Tick())
		assert.Equal(t, step, o.Step())
	}
	assert.Len(t, o.History(), len(motortest.DefaultTable)*motortest.NumChannels)
}

func TestOutputsInvalidChannel(t *testing.T) {
	o := NewOutputs(0)

	assert.NotPanics(t, func() {
		o.Set(motortest.Channel(7), 100)
		o.Set(motortest.Channel(-1), 100)
	})
	assert.True(t, o.Step().Off())
	assert.Empty(t, o.History())
}
