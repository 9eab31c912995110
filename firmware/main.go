//go:build tinygo

package main

import (
	"context"
	"machine"

	"github.com/calvinmclean/motortest"
	"github.com/calvinmclean/motortest/firmware/commands"
	"github.com/calvinmclean/motortest/firmware/device"
)

func main() {
	// Each DRV8833 input pair shares a PWM slice: GP2/GP3 on PWM1, GP4/GP5 on PWM2
	cfg := device.Config{
		Outputs: [motortest.NumChannels]device.OutputConfig{
			motortest.FrontLeft:  {Pin: machine.GP2, PWM: machine.PWM1},
			motortest.FrontRight: {Pin: machine.GP3, PWM: machine.PWM1},
			motortest.BackLeft:   {Pin: machine.GP4, PWM: machine.PWM2},
			motortest.BackRight:  {Pin: machine.GP5, PWM: machine.PWM2},
		},
		Frequency: 20000,
		Interval:  motortest.DefaultInterval,
	}

	d, err := device.New(cfg, motortest.DefaultTable)
	if err != nil {
		panic(err)
	}

	println("motortest ready, send H for help")

	commands.Run(context.Background(), d)
}
