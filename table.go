package motortest

import (
	"errors"
	"strconv"
)

var (
	ErrEmptyTable     = errors.New("step table is empty")
	ErrStepOutOfRange = errors.New("step index out of range")
)

// Step holds one duty cycle per Channel
type Step [NumChannels]uint8

// Uniform returns a Step driving every motor at the same duty
func Uniform(duty uint8) Step {
	return Step{duty, duty, duty, duty}
}

// Only returns a Step driving just the listed channels at duty
func Only(duty uint8, channels ...Channel) Step {
	var s Step
	for _, c := range channels {
		s[c] = duty
	}
	return s
}

// Off reports whether every motor is stopped
func (s Step) Off() bool {
	return s == Step{}
}

func (s Step) String() string {
	var b []byte
	for i, c := range Channels {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, c.String()...)
		b = append(b, '=')
		b = strconv.AppendUint(b, uint64(s[c]), 10)
	}
	return string(b)
}

// Table is the ordered test sequence. It is never modified after a Sequencer is created
type Table []Step

// DefaultTable spins each motor alone, then the diagonal pairs, then all four ramping up
var DefaultTable = Table{
	Uniform(0),
	Only(180, FrontRight),
	Only(180, BackRight),
	Only(180, BackLeft),
	Only(180, FrontLeft),
	Uniform(0),
	Only(180, FrontRight, BackLeft),
	Only(180, FrontLeft, BackRight),
	Uniform(120),
	Uniform(180),
	Uniform(255),
	Uniform(0),
}

// Validate checks the table can drive a Sequencer
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	return nil
}
