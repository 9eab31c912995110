package simulator

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/calvinmclean/motortest"
	"github.com/calvinmclean/motortest/firmware/commands"
)

var errBufferEmpty = errors.New("buffer empty")

// Board runs the firmware's command loop against simulated outputs. Its serial side is
// an io.ReadWriteCloser: bytes written to it are console input and reads return the
// console output, one "\r\n" terminated line at a time like the real USB serial port
type Board struct {
	seq     *motortest.Sequencer
	outputs *Outputs

	inputMtx sync.Mutex
	input    []byte

	// the fields below are owned by the command loop
	interval  time.Duration
	paused    bool
	verbose   bool
	startTime time.Time

	pr *io.PipeReader
	pw *io.PipeWriter

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

var (
	_ commands.Controller = &Board{}
	_ io.ReadWriteCloser  = &Board{}
)

// NewBoard creates a Board with all outputs off. Call Start to run it
func NewBoard(table motortest.Table, interval time.Duration) (*Board, error) {
	if interval <= 0 {
		interval = motortest.DefaultInterval
	}

	outputs := NewOutputs(DefaultHistorySize)
	seq, err := motortest.New(table, outputs)
	if err != nil {
		return nil, err
	}
	seq.Initialize()

	pr, pw := io.Pipe()

	return &Board{
		seq:      seq,
		outputs:  outputs,
		interval: interval,
		pr:       pr,
		pw:       pw,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the command loop in the background until ctx is done or the Board is closed
func (b *Board) Start(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)
	b.startTime = time.Now()

	go func() {
		defer close(b.done)
		b.println("motortest simulator ready, send H for help")
		commands.Run(ctx, b)
	}()
}

// Outputs returns the simulated PWM outputs
func (b *Board) Outputs() *Outputs {
	return b.outputs
}

// Read returns console output
func (b *Board) Read(p []byte) (int, error) {
	return b.pr.Read(p)
}

// Write queues console input
func (b *Board) Write(p []byte) (int, error) {
	b.inputMtx.Lock()
	defer b.inputMtx.Unlock()
	b.input = append(b.input, p...)
	return len(p), nil
}

// Close stops the command loop and ends the console output
func (b *Board) Close() error {
	b.closeOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		// unblocks a loop that is waiting for a reader
		_ = b.pr.Close()
		if b.cancel != nil {
			<-b.done
		}
		_ = b.pw.Close()
	})
	return nil
}

func (b *Board) Tick() {
	applied := b.seq.Tick()
	b.println(b.ts(), motortest.FormatStatus(applied, b.seq.Len(), b.seq.Current()))
}

func (b *Board) Pause() {
	b.paused = true
	b.println(b.ts(), "paused")
}

func (b *Board) Resume() {
	b.paused = false
	b.println(b.ts(), "resumed")
}

func (b *Board) Paused() bool {
	return b.paused
}

func (b *Board) Reset() {
	b.seq.Reset()
	b.println(b.ts(), "reset")
}

func (b *Board) Stop() {
	b.seq.Initialize()
	b.paused = true
	b.println(b.ts(), "stopped")
}

func (b *Board) GoTo(i int) error {
	err := b.seq.GoTo(i)
	if err != nil {
		return err
	}
	if b.verbose {
		b.println(b.ts(), "GoTo", strconv.Itoa(i+1))
	}
	return nil
}

func (b *Board) SetInterval(interval time.Duration) {
	b.interval = interval
	if b.verbose {
		b.println(b.ts(), "SetInterval", interval.String())
	}
}

func (b *Board) Interval() time.Duration {
	return b.interval
}

func (b *Board) Debug() {
	b.println(b.ts(), motortest.FormatDebug(b.seq.Index(), b.seq.Len(), b.seq.Current(), b.interval, b.paused))
}

func (b *Board) Verbose() {
	b.verbose = true
	b.println(b.ts(), "Set Verbose Mode")
}

func (b *Board) Log(s string) {
	b.println(s)
}

func (b *Board) Buffered() int {
	b.inputMtx.Lock()
	defer b.inputMtx.Unlock()
	return len(b.input)
}

func (b *Board) ReadByte() (byte, error) {
	b.inputMtx.Lock()
	defer b.inputMtx.Unlock()
	if len(b.input) == 0 {
		return 0, errBufferEmpty
	}
	c := b.input[0]
	b.input = b.input[1:]
	return c, nil
}

// println mimics the builtin println on the board: arguments separated by spaces and a
// CRLF line ending
func (b *Board) println(args ...string) {
	var line []byte
	for i, a := range args {
		if i > 0 {
			line = append(line, ' ')
		}
		line = append(line, a...)
	}
	line = append(line, '\r', '\n')

	_, err := b.pw.Write(line)
	if err != nil && !errors.Is(err, io.ErrClosedPipe) {
		log.Warningf("error writing console output: %v", err)
	}
}

func (b *Board) ts() string {
	return "[" + time.Since(b.startTime).Round(time.Millisecond).String() + "]"
}
