package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/calvinmclean/motortest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotorUIWrite(t *testing.T) {
	ui := NewMotorUI()

	_, ok := ui.Latest()
	assert.False(t, ok)

	n, err := ui.Write([]byte("motortest ready, send H for help\r\n[0s] step=1/12 FL=0 FR=0"))
	require.NoError(t, err)
	assert.Equal(t, 58, n)

	status, ok := ui.Latest()
	assert.False(t, ok, "incomplete line must not be parsed")

	_, err = ui.Write([]byte(" BL=0 BR=0\r\n[2.5s] step=2/12 FL=0 FR=180 BL=0 BR=0\r\n[2.6s] paused\r\n"))
	require.NoError(t, err)

	status, ok = ui.Latest()
	require.True(t, ok)
	assert.Equal(t, motortest.Status{Index: 1, Len: 12, Step: motortest.Only(180, motortest.FrontRight)}, status)

	select {
	case <-ui.updated:
	default:
		t.Fatal("expected an update signal")
	}
}

func TestControllerWrapper(t *testing.T) {
	var buf bytes.Buffer
	c := &controllerWrapper{writer: &buf}

	c.Pause()
	c.Resume()
	c.Next()
	c.Reset()
	c.Stop()
	c.SetInterval(25)
	c.SetInterval(5)
	c.GoTo(3)

	assert.Equal(t, "P\nR\nN\nZ\nX\nI25\nI05\nG03\n", buf.String())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00.0", formatElapsed(0))
	assert.Equal(t, "00:02.5", formatElapsed(2500*time.Millisecond))
	assert.Equal(t, "01:02.3", formatElapsed(62300*time.Millisecond))
}

func TestFormatTenths(t *testing.T) {
	assert.Equal(t, "2.5s", formatTenths(25))
	assert.Equal(t, "0.1s", formatTenths(1))
}
