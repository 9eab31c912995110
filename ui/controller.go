package ui

import (
	"fmt"
	"io"
)

// controllerWrapper turns button presses into console lines for controller.Run
type controllerWrapper struct {
	writer io.Writer
}

func (c *controllerWrapper) send(cmd string) {
	fmt.Fprintf(c.writer, "%s\n", cmd)
}

func (c *controllerWrapper) Pause()  { c.send("P") }
func (c *controllerWrapper) Resume() { c.send("R") }
func (c *controllerWrapper) Next()   { c.send("N") }
func (c *controllerWrapper) Reset()  { c.send("Z") }
func (c *controllerWrapper) Stop()   { c.send("X") }

// SetInterval takes tenths of a second, 1-99
func (c *controllerWrapper) SetInterval(tenths float64) {
	fmt.Fprintf(c.writer, "I%02.0f\n", tenths)
}

// GoTo takes a one-based step number
func (c *controllerWrapper) GoTo(step int) {
	fmt.Fprintf(c.writer, "G%02d\n", step)
}
