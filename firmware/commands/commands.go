package commands

import (
	"context"
	"errors"
	"time"
)

// pollDelay is how long the loop sleeps between checks for input and tick deadlines
const pollDelay = 10 * time.Millisecond

// inputTimeout is how long a command waits for the rest of its input before it is dropped
const inputTimeout = 2 * time.Second

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control a device
type Controller interface {
	Tick()
	Pause()
	Resume()
	Paused() bool
	Reset()
	Stop()
	GoTo(int) error
	SetInterval(time.Duration)
	Interval() time.Duration
	Debug()
	Verbose()

	// I/O
	Log(string)
	Buffered() int
	ReadByte() (byte, error)
}

var (
	PauseCommand = &Command{
		Flag:        'P',
		InputSize:   0,
		Run:         func(c Controller, b []byte) error { c.Pause(); return nil },
		Description: "Pause the sequence. Outputs keep their current duty.",
	}
	ResumeCommand = &Command{
		Flag:        'R',
		InputSize:   0,
		Run:         func(c Controller, b []byte) error { c.Resume(); return nil },
		Description: "Resume the sequence.",
	}
	NextCommand = &Command{
		Flag:      'N',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Tick()
			return nil
		},
		Description: "Apply the next step now. Works while paused.",
	}
	ResetCommand = &Command{
		Flag:        'Z',
		InputSize:   0,
		Run:         func(c Controller, b []byte) error { c.Reset(); return nil },
		Description: "Turn all motors off and go back to the first step.",
	}
	StopCommand = &Command{
		Flag:        'X',
		InputSize:   0,
		Run:         func(c Controller, b []byte) error { c.Stop(); return nil },
		Description: "Turn all motors off and pause.",
	}
	GoToCommand = &Command{
		Flag:      'G',
		InputSize: 2,
		Run: func(c Controller, b []byte) error {
			n, err := digits(b)
			if err != nil {
				return err
			}
			if n == 0 {
				return errors.New("invalid input: " + string(b))
			}
			return c.GoTo(n - 1)
		},
		Description: "Choose the next step to apply. Input: step number 01-99.",
	}
	IntervalCommand = &Command{
		Flag:      'I',
		InputSize: 2,
		Run: func(c Controller, b []byte) error {
			n, err := digits(b)
			if err != nil {
				return err
			}
			if n == 0 {
				return errors.New("invalid input: " + string(b))
			}
			c.SetInterval(time.Duration(n) * 100 * time.Millisecond)
			return nil
		},
		Description: "Set how long each step is held, in tenths of a second. Input: 01-99.",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			c.Log("Available Commands:")
			for _, cmd := range commands {
				c.Log(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

// digits parses ASCII decimal digits
func digits(b []byte) (int, error) {
	n := 0
	for _, d := range b {
		if d < '0' || d > '9' {
			return 0, errors.New("invalid input: " + string(b))
		}
		n = n*10 + int(d-'0')
	}
	return n, nil
}

var commands = []*Command{
	PauseCommand,
	ResumeCommand,
	NextCommand,
	ResetCommand,
	StopCommand,
	GoToCommand,
	IntervalCommand,
	DebugCommand,
	VerboseCommand,
}

func commandMap() map[byte]*Command {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}
	return cmdMap
}

// Run is the main loop. It handles any pending commands, ticks the Controller whenever
// the interval has passed and it is not paused, then sleeps briefly. It returns when
// ctx is done
func Run(ctx context.Context, c Controller) {
	con := newConsole(c)

	var lastTick time.Time
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		con.runPending(time.Now())

		if !c.Paused() && (lastTick.IsZero() || time.Since(lastTick) >= c.Interval()) {
			c.Tick()
			lastTick = time.Now()
		}

		time.Sleep(pollDelay)
	}
}

// console reads commands a byte at a time. A command whose input has not fully arrived
// is kept until a later call so the loop never blocks on the serial port
type console struct {
	c      Controller
	cmdMap map[byte]*Command

	pending *Command
	input   []byte
	started time.Time
}

func newConsole(c Controller) *console {
	return &console{c: c, cmdMap: commandMap()}
}

// runPending runs every command that is already buffered. A partial command older than
// inputTimeout is discarded
func (con *console) runPending(now time.Time) {
	if con.pending != nil && now.Sub(con.started) > inputTimeout {
		con.c.Log("error: incomplete input for " + string(con.pending.Flag) + ": " + string(con.input))
		con.pending = nil
		con.input = nil
	}

	for con.c.Buffered() > 0 {
		b, err := con.c.ReadByte()
		if err != nil {
			return
		}

		if con.pending == nil {
			cmd, ok := con.cmdMap[b]
			if !ok {
				continue
			}
			con.pending = cmd
			con.input = make([]byte, 0, cmd.InputSize)
			con.started = now
		} else {
			con.input = append(con.input, b)
		}

		if len(con.input) < int(con.pending.InputSize) {
			continue
		}

		cmd, in := con.pending, con.input
		con.pending = nil
		con.input = nil

		err = cmd.Run(con.c, in)
		if err != nil {
			con.c.Log("error: " + err.Error())
		}
	}
}
