package motortest

import (
	"context"
	"time"
)

// DefaultInterval is how long each Step is held
const DefaultInterval = 2500 * time.Millisecond

// Sequencer cycles Outputs through a Table. It is not safe for concurrent use; the loop
// that calls Tick owns it
type Sequencer struct {
	table   Table
	outputs Outputs

	// index is the next Step that Tick will apply
	index int

	current Step
}

// New creates a Sequencer positioned at the first Step. The table is copied so later
// changes by the caller have no effect
func New(table Table, outputs Outputs) (*Sequencer, error) {
	err := table.Validate()
	if err != nil {
		return nil, err
	}

	t := make(Table, len(table))
	copy(t, table)

	return &Sequencer{
		table:   t,
		outputs: outputs,
	}, nil
}

// Initialize turns every motor off
func (s *Sequencer) Initialize() {
	s.ApplyStep(Step{})
}

// ApplyStep writes each Channel's duty to its output
func (s *Sequencer) ApplyStep(step Step) {
	for _, c := range Channels {
		s.outputs.Set(c, step[c])
	}
	s.current = step
}

// Tick applies the Step at the current index, then moves to the next one, wrapping at
// the end of the table. It returns the index that was applied
func (s *Sequencer) Tick() int {
	applied := s.index
	s.ApplyStep(s.table[applied])
	s.index = (s.index + 1) % len(s.table)
	return applied
}

// Reset goes back to the first Step and turns every motor off
func (s *Sequencer) Reset() {
	s.index = 0
	s.Initialize()
}

// GoTo sets the Step that the next Tick applies. Outputs are not changed
func (s *Sequencer) GoTo(i int) error {
	if i < 0 || i >= len(s.table) {
		return ErrStepOutOfRange
	}
	s.index = i
	return nil
}

// Index returns the index of the Step that the next Tick applies
func (s *Sequencer) Index() int {
	return s.index
}

// Len returns the number of Steps in the table
func (s *Sequencer) Len() int {
	return len(s.table)
}

// Step returns the Step at index i
func (s *Sequencer) Step(i int) Step {
	return s.table[i]
}

// Current returns the duties most recently written to the outputs
func (s *Sequencer) Current() Step {
	return s.current
}

// Run ticks immediately and then once per interval until ctx is done. onTick, if set,
// is called after each Tick with the applied index. A non-positive interval uses
// DefaultInterval
func (s *Sequencer) Run(ctx context.Context, interval time.Duration, onTick func(int, Step)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		applied := s.Tick()
		if onTick != nil {
			onTick(applied, s.current)
		}
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
