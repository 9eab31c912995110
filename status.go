package motortest

import (
	"strconv"
	"strings"
	"time"
)

// Status is what the board reports after applying a Step
type Status struct {
	// Index is the applied step, zero-based
	Index int
	Len   int
	Step  Step
}

// FormatStatus renders a status line like "step=2/12 FL=0 FR=180 BL=0 BR=0". The step
// number is one-based
func FormatStatus(applied, n int, step Step) string {
	return "step=" + strconv.Itoa(applied+1) + "/" + strconv.Itoa(n) + " " + step.String()
}

// FormatDebug renders the state printed by the debug command, e.g.
// "next=3/12 FL=0 FR=180 BL=0 BR=0 interval=2.5s paused"
func FormatDebug(next, n int, current Step, interval time.Duration, paused bool) string {
	s := "next=" + strconv.Itoa(next+1) + "/" + strconv.Itoa(n) + " " + current.String()
	s += " interval=" + interval.String()
	if paused {
		s += " paused"
	}
	return s
}

// ParseStatus finds a status line anywhere in line, so log prefixes like "[2.5s]" are
// allowed. It returns false if line has no complete status
func ParseStatus(line string) (Status, bool) {
	start := strings.Index(line, "step=")
	if start < 0 {
		return Status{}, false
	}

	fields := strings.Fields(line[start:])
	if len(fields) < 1+NumChannels {
		return Status{}, false
	}

	pos, total, ok := strings.Cut(strings.TrimPrefix(fields[0], "step="), "/")
	if !ok {
		return Status{}, false
	}
	num, err := strconv.Atoi(pos)
	if err != nil {
		return Status{}, false
	}
	n, err := strconv.Atoi(total)
	if err != nil || num < 1 || num > n {
		return Status{}, false
	}

	status := Status{Index: num - 1, Len: n}
	seen := 0
	for _, f := range fields[1 : 1+NumChannels] {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return Status{}, false
		}
		c, ok := ParseChannel(name)
		if !ok {
			return Status{}, false
		}
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 || v > MaxDuty {
			return Status{}, false
		}
		status.Step[c] = uint8(v)
		seen |= 1 << c
	}

	if seen != 1<<NumChannels-1 {
		return Status{}, false
	}

	return status, true
}
