package device

import "github.com/calvinmclean/motortest"

// pwmValue scales a duty in [0, MaxDuty] to a PWM channel value in [0, top]
func pwmValue(top uint32, duty uint8) uint32 {
	return uint32(uint64(top) * uint64(duty) / motortest.MaxDuty)
}
