package simulator

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/calvinmclean/motortest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startBoard(t *testing.T, interval time.Duration) (*Board, <-chan string) {
	t.Helper()

	b, err := NewBoard(motortest.DefaultTable, interval)
	require.NoError(t, err)

	b.Start(context.Background())
	t.Cleanup(func() { b.Close() })

	lines := make(chan string, 1000)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(b)
		for scanner.Scan() {
			lines <- strings.TrimRight(scanner.Text(), "\r")
		}
	}()

	return b, lines
}

func waitForLine(t *testing.T, lines <-chan string, contains string) string {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("console closed before %q", contains)
			}
			if strings.Contains(line, contains) {
				return line
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", contains)
		}
	}
}

func TestBoard(t *testing.T) {
	t.Run("FirstStepAppliedImmediately", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)

		waitForLine(t, lines, "ready")
		line := waitForLine(t, lines, "step=1/12")

		status, ok := motortest.ParseStatus(line)
		require.True(t, ok)
		assert.True(t, status.Step.Off())
		assert.True(t, b.Outputs().Step().Off())
	})

	t.Run("PauseAndNext", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)
		waitForLine(t, lines, "step=1/12")

		_, err := b.Write([]byte("PN"))
		require.NoError(t, err)

		waitForLine(t, lines, "paused")
		line := waitForLine(t, lines, "step=2/12")
		assert.Contains(t, line, "FL=0 FR=180 BL=0 BR=0")
		assert.Equal(t, uint8(180), b.Outputs().Get(motortest.FrontRight))
	})

	t.Run("GoToAndStop", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)
		waitForLine(t, lines, "step=1/12")

		_, err := b.Write([]byte("PG11N"))
		require.NoError(t, err)
		waitForLine(t, lines, "step=11/12")
		assert.Equal(t, motortest.Uniform(255), b.Outputs().Step())

		_, err = b.Write([]byte("X"))
		require.NoError(t, err)
		waitForLine(t, lines, "stopped")
		assert.True(t, b.Outputs().Step().Off())
	})

	t.Run("Debug", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)
		waitForLine(t, lines, "step=1/12")

		_, err := b.Write([]byte("PD"))
		require.NoError(t, err)

		line := waitForLine(t, lines, "next=")
		assert.Contains(t, line, "next=2/12 FL=0 FR=0 BL=0 BR=0 interval=1h0m0s paused")
	})

	t.Run("InvalidInputReported", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)
		waitForLine(t, lines, "step=1/12")

		_, err := b.Write([]byte("G99"))
		require.NoError(t, err)
		waitForLine(t, lines, "error: step index out of range")
	})

	t.Run("IntervalSpeedsUpSequence", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)
		waitForLine(t, lines, "step=1/12")

		_, err := b.Write([]byte("I01"))
		require.NoError(t, err)
		waitForLine(t, lines, "step=2/12")
		waitForLine(t, lines, "step=3/12")
	})

	t.Run("UnfinishedCommandKeepsTicking", func(t *testing.T) {
		b, lines := startBoard(t, 50*time.Millisecond)
		waitForLine(t, lines, "step=2/12")

		_, err := b.Write([]byte("G"))
		require.NoError(t, err)
		waitForLine(t, lines, "step=5/12")

		// the remaining digits still complete the command
		_, err = b.Write([]byte("11P"))
		require.NoError(t, err)
		_, err = b.Write([]byte("N"))
		require.NoError(t, err)
		waitForLine(t, lines, "step=11/12")
	})

	t.Run("CloseEndsConsole", func(t *testing.T) {
		b, lines := startBoard(t, time.Hour)
		waitForLine(t, lines, "step=1/12")

		require.NoError(t, b.Close())

		select {
		case _, ok := <-lines:
			for ok {
				_, ok = <-lines
			}
		case <-time.After(2 * time.Second):
			t.Fatal("console still open after Close")
		}
	})
}

func TestNewBoardEmptyTable(t *testing.T) {
	_, err := NewBoard(motortest.Table{}, time.Second)
	assert.ErrorIs(t, err, motortest.ErrEmptyTable)
}
