package motortest

import "strings"

// Channel identifies one of the four motor outputs
type Channel int

const (
	FrontLeft Channel = iota
	FrontRight
	BackLeft
	BackRight
)

// NumChannels is the number of independently driven motors
const NumChannels = 4

// Channels lists every Channel in table order
var Channels = [NumChannels]Channel{FrontLeft, FrontRight, BackLeft, BackRight}

func (c Channel) String() string {
	switch c {
	case FrontLeft:
		return "FL"
	case FrontRight:
		return "FR"
	case BackLeft:
		return "BL"
	case BackRight:
		return "BR"
	default:
		return "Unknown"
	}
}

// Valid reports whether the Channel is one of the four motors
func (c Channel) Valid() bool {
	return c >= FrontLeft && c <= BackRight
}

// ParseChannel converts an abbreviation like "fr" or "BL" into a Channel
func ParseChannel(s string) (Channel, bool) {
	for _, c := range Channels {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return 0, false
}

// MaxDuty is full drive. A duty of 0 is off
const MaxDuty = 255

// ClampDuty clamps v into the range of a valid duty cycle
func ClampDuty(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > MaxDuty {
		return MaxDuty
	}
	return uint8(v)
}

// Outputs is anything that can drive the four motors. Writes are fire-and-forget
type Outputs interface {
	Set(c Channel, duty uint8)
}
