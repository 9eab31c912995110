//go:build tinygo

package device

import (
	"machine"
	"time"

	"github.com/calvinmclean/motortest"

	"tinygo.org/x/drivers/servo"
)

// OutputConfig maps one motor to a PWM-capable pin and the PWM slice that drives it
type OutputConfig struct {
	Pin machine.Pin
	PWM servo.PWM
}

// Config has the device-level values for the four motor outputs
type Config struct {
	Outputs [motortest.NumChannels]OutputConfig

	// Frequency is the PWM frequency in Hz. The DRV8833 accepts up to 50kHz
	Frequency uint64

	// Interval is how long each step is held
	Interval time.Duration
}
