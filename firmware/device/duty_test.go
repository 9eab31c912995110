package device

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPWMValue(t *testing.T) {
	tests := []struct {
		name     string
		top      uint32
		duty     uint8
		expected uint32
	}{
		{"Off", 6249, 0, 0},
		{"Test", 6249, 180, 4411},
		{"Full", 6249, 255, 6249},
		{"Half", 510, 128, 256},
		{"MaxTopFull", math.MaxUint32, 255, math.MaxUint32},
		{"MaxTopHalf", math.MaxUint32, 128, 2155905152},
		{"ZeroTop", 0, 255, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pwmValue(tt.top, tt.duty))
		})
	}
}
