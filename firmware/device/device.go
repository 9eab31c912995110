//go:build tinygo

package device

import (
	"errors"
	"machine"
	"time"

	"github.com/calvinmclean/motortest"

	"tinygo.org/x/drivers/servo"
)

// Device drives the four motors from the sequencer and tracks whether the sequence is
// paused
type Device struct {
	seq *motortest.Sequencer

	pwms     [motortest.NumChannels]servo.PWM
	channels [motortest.NumChannels]uint8

	interval time.Duration
	paused   bool

	startTime time.Time

	verbose bool
}

// New configures the PWM outputs and turns every motor off
func New(cfg Config, table motortest.Table) (*Device, error) {
	if cfg.Frequency == 0 {
		return nil, errors.New("PWM frequency is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = motortest.DefaultInterval
	}

	d := &Device{
		interval:  cfg.Interval,
		startTime: time.Now(),
	}

	// pins that share a PWM slice must only configure it once
	configured := map[servo.PWM]bool{}
	for _, c := range motortest.Channels {
		out := cfg.Outputs[c]
		if out.PWM == nil {
			return nil, errors.New("missing PWM for " + c.String())
		}

		if !configured[out.PWM] {
			err := out.PWM.Configure(machine.PWMConfig{Period: uint64(time.Second) / cfg.Frequency})
			if err != nil {
				return nil, errors.New("error configuring PWM for " + c.String() + ": " + err.Error())
			}
			configured[out.PWM] = true
		}

		ch, err := out.PWM.Channel(out.Pin)
		if err != nil {
			return nil, errors.New("error getting PWM channel for " + c.String() + ": " + err.Error())
		}

		d.pwms[c] = out.PWM
		d.channels[c] = ch
	}

	seq, err := motortest.New(table, d)
	if err != nil {
		return nil, errors.New("error creating sequencer: " + err.Error())
	}
	d.seq = seq
	d.seq.Initialize()

	return d, nil
}

// Set implements motortest.Outputs by scaling the duty to the PWM slice's top value
func (d *Device) Set(c motortest.Channel, duty uint8) {
	d.pwms[c].Set(d.channels[c], pwmValue(d.pwms[c].Top(), duty))
}

// Tick applies the next step and reports it
func (d *Device) Tick() {
	applied := d.seq.Tick()
	println(d.ts(), motortest.FormatStatus(applied, d.seq.Len(), d.seq.Current()))
}

// Pause stops the sequence from advancing. Motors keep running at their current duty
func (d *Device) Pause() {
	d.paused = true
	println(d.ts(), "paused")
}

// Resume lets the sequence advance again
func (d *Device) Resume() {
	d.paused = false
	println(d.ts(), "resumed")
}

func (d *Device) Paused() bool {
	return d.paused
}

// Reset turns every motor off and goes back to the first step
func (d *Device) Reset() {
	d.seq.Reset()
	println(d.ts(), "reset")
}

// Stop turns every motor off and pauses
func (d *Device) Stop() {
	d.seq.Initialize()
	d.paused = true
	println(d.ts(), "stopped")
}

// GoTo chooses the next step to apply
func (d *Device) GoTo(i int) error {
	err := d.seq.GoTo(i)
	if err != nil {
		return err
	}
	if d.verbose {
		println(d.ts(), "GoTo", i+1)
	}
	return nil
}

func (d *Device) SetInterval(interval time.Duration) {
	d.interval = interval
	if d.verbose {
		println(d.ts(), "SetInterval", interval.String())
	}
}

func (d *Device) Interval() time.Duration {
	return d.interval
}

// Debug prints out details of the Device's state
func (d *Device) Debug() {
	println(d.ts(), motortest.FormatDebug(d.seq.Index(), d.seq.Len(), d.seq.Current(), d.interval, d.paused))
}

// Verbose sets the Device to Verbose mode and increases logging
func (d *Device) Verbose() {
	d.verbose = true
	println(d.ts(), "Set Verbose Mode")
}

func (d *Device) Log(s string) {
	println(s)
}

// ts returns the duration timestamp for logging
func (d *Device) ts() string {
	return "[" + time.Since(d.startTime).Round(time.Millisecond).String() + "]"
}

func (d *Device) Buffered() int {
	return machine.Serial.Buffered()
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}
