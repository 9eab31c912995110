package simulator

import (
	"sync"
	"time"

	"github.com/calvinmclean/motortest"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("simulator")

// DefaultHistorySize is how many writes Outputs remembers when no size is given
const DefaultHistorySize = 256

// Write is a single duty written to one simulated output
type Write struct {
	Channel motortest.Channel
	Duty    uint8
	Time    time.Time
}

// Outputs stands in for the four PWM pins. It keeps the current duty of each channel and
// the most recent writes. It is safe to read while a Sequencer is writing
type Outputs struct {
	mtx     sync.RWMutex
	duties  motortest.Step
	history []Write
	size    int
}

var _ motortest.Outputs = &Outputs{}

// NewOutputs creates Outputs that remember up to historySize writes
func NewOutputs(historySize int) *Outputs {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Outputs{size: historySize}
}

// Set implements motortest.Outputs. Writes to an unknown Channel are dropped
func (o *Outputs) Set(c motortest.Channel, duty uint8) {
	if !c.Valid() {
		log.Warningf("ignoring write of %d to invalid channel %d", duty, int(c))
		return
	}

	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.duties[c] != duty {
		log.Debugf("%s: %d -> %d", c, o.duties[c], duty)
	}
	o.duties[c] = duty

	o.history = append(o.history, Write{Channel: c, Duty: duty, Time: time.Now()})
	if len(o.history) > o.size {
		o.history = o.history[len(o.history)-o.size:]
	}
}

// Get returns the duty currently on c
func (o *Outputs) Get(c motortest.Channel) uint8 {
	o.mtx.RLock()
	defer o.mtx.RUnlock()
	return o.duties[c]
}

// Step returns the duties currently on all channels
func (o *Outputs) Step() motortest.Step {
	o.mtx.RLock()
	defer o.mtx.RUnlock()
	return o.duties
}

// History returns a copy of the remembered writes, oldest first
func (o *Outputs) History() []Write {
	o.mtx.RLock()
	defer o.mtx.RUnlock()

	result := make([]Write, len(o.history))
	copy(result, o.history)
	return result
}
