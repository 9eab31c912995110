package motortest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTable(t *testing.T) {
	assert.NoError(t, DefaultTable.Validate())
	assert.Len(t, DefaultTable, 12)
	assert.True(t, DefaultTable[0].Off())
	assert.True(t, DefaultTable[len(DefaultTable)-1].Off())

	for i, step := range DefaultTable {
		for _, c := range Channels {
			d := int(step[c])
			assert.Truef(t, d >= 0 && d <= MaxDuty, "step %d %s=%d", i, c, d)
		}
	}
}

func TestClampDuty(t *testing.T) {
	tests := []struct {
		in       int
		expected uint8
	}{
		{-10, 0},
		{0, 0},
		{180, 180},
		{255, 255},
		{256, 255},
		{1000, 255},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClampDuty(tt.in), "ClampDuty(%d)", tt.in)
	}
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "FL=0 FR=180 BL=0 BR=0", Only(180, FrontRight).String())
	assert.Equal(t, "FL=255 FR=255 BL=255 BR=255", Uniform(255).String())
}

func TestParseChannel(t *testing.T) {
	for _, c := range Channels {
		got, ok := ParseChannel(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}

	c, ok := ParseChannel("br")
	assert.True(t, ok)
	assert.Equal(t, BackRight, c)

	_, ok = ParseChannel("XX")
	assert.False(t, ok)
	assert.False(t, Channel(7).Valid())
	assert.Equal(t, "Unknown", Channel(7).String())
}
