package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/calvinmclean/motortest"
	"github.com/calvinmclean/motortest/simulator"

	"github.com/op/go-logging"
	"go.bug.st/serial"
)

var log = logging.MustGetLogger("controller")

// ErrRunning is returned when Run is called more than once on the same Controller
var ErrRunning = errors.New("controller is already running")

// Controller talks to a board running the motor test firmware, or to a simulated one
type Controller struct {
	port io.ReadWriteCloser

	// board is only set when using the simulator
	board *simulator.Board

	running atomic.Bool
}

// New connects to the board described by cfg
func New(cfg Config) (*Controller, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if cfg.SerialPort == SerialPortNone {
		return newSimulated(cfg)
	}

	if cfg.SerialPort == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, err
		}
		cfg.SerialPort = ports[0]
	}

	port, err := serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", cfg.SerialPort, err)
	}
	log.Infof("connected to %s at %d baud", cfg.SerialPort, cfg.BaudRate)

	return &Controller{port: port}, nil
}

func newSimulated(cfg Config) (*Controller, error) {
	table := motortest.DefaultTable
	if cfg.TablePath != "" {
		var err error
		table, err = simulator.LoadTableFile(cfg.TablePath)
		if err != nil {
			return nil, err
		}
	}

	board, err := simulator.NewBoard(table, cfg.Interval)
	if err != nil {
		return nil, fmt.Errorf("error creating simulated board: %w", err)
	}
	board.Start(context.Background())
	log.Infof("using simulated board with %d steps", len(table))

	return &Controller{port: board, board: board}, nil
}

// Simulated returns the simulated board, or nil when connected to hardware
func (c *Controller) Simulated() *simulator.Board {
	return c.board
}

// Close disconnects from the board
func (c *Controller) Close() error {
	return c.port.Close()
}

// Run copies everything the board prints to out and sends each line read from in to the
// board as console input. It returns when in is exhausted, ctx is done, or the board
// disconnects. Copying board output continues until Close, so Run can only be called
// once per Controller
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrRunning
	}

	outputErr := make(chan error, 1)
	go func() {
		_, err := io.Copy(out, c.port)
		outputErr <- err
	}()

	lines := make(chan string)
	inputErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-outputErr:
			if err == nil || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			return fmt.Errorf("error reading from board: %w", err)
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-inputErr:
					if err != nil {
						return fmt.Errorf("error reading input: %w", err)
					}
				default:
				}
				return nil
			}

			err := c.Send(strings.TrimSpace(line))
			if err != nil {
				return err
			}
		}
	}
}

// Send writes raw console input to the board
func (c *Controller) Send(cmd string) error {
	if cmd == "" {
		return nil
	}
	log.Debugf("sending %q", cmd)

	_, err := c.port.Write([]byte(cmd))
	if err != nil {
		return fmt.Errorf("error writing to board: %w", err)
	}
	return nil
}

func (c *Controller) Pause() error  { return c.Send("P") }
func (c *Controller) Resume() error { return c.Send("R") }
func (c *Controller) Next() error   { return c.Send("N") }
func (c *Controller) Reset() error  { return c.Send("Z") }
func (c *Controller) Stop() error   { return c.Send("X") }
func (c *Controller) Debug() error  { return c.Send("D") }
func (c *Controller) Help() error   { return c.Send("H") }

// GoTo chooses the next step the board applies. step is one-based like the status lines
func (c *Controller) GoTo(step int) error {
	if step < 1 || step > 99 {
		return fmt.Errorf("invalid step: %d", step)
	}
	return c.Send("G" + twoDigits(step))
}

// SetInterval changes how long each step is held. The board works in tenths of a second
func (c *Controller) SetInterval(d time.Duration) error {
	n := int(d / (100 * time.Millisecond))
	if n < 1 || n > 99 {
		return fmt.Errorf("interval must be between 100ms and 9.9s: %s", d)
	}
	return c.Send("I" + twoDigits(n))
}

func twoDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) == 1 {
		s = "0" + s
	}
	return s
}
