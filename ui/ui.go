package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/motortest"
)

// MotorUI shows the duty of each motor. It is an io.Writer so the board's console
// output can be copied straight into it
type MotorUI struct {
	mtx     sync.Mutex
	partial []byte
	latest  motortest.Status
	seen    bool

	// updated is signalled when latest changes
	updated chan struct{}
}

func NewMotorUI() *MotorUI {
	return &MotorUI{updated: make(chan struct{}, 1)}
}

// Write implements io.Writer. Only complete status lines change what is shown
func (ui *MotorUI) Write(p []byte) (int, error) {
	ui.mtx.Lock()
	defer ui.mtx.Unlock()

	ui.partial = append(ui.partial, p...)
	for {
		i := bytes.IndexByte(ui.partial, '\n')
		if i < 0 {
			break
		}
		line := string(ui.partial[:i])
		ui.partial = ui.partial[i+1:]

		status, ok := motortest.ParseStatus(line)
		if !ok {
			continue
		}
		ui.latest = status
		ui.seen = true

		select {
		case ui.updated <- struct{}{}:
		default:
		}
	}

	return len(p), nil
}

// Latest returns the last status written and whether there has been one
func (ui *MotorUI) Latest() (motortest.Status, bool) {
	ui.mtx.Lock()
	defer ui.mtx.Unlock()
	return ui.latest, ui.seen
}

func createBar(c motortest.Channel) (*fyne.Container, *widget.ProgressBar) {
	bar := widget.NewProgressBar()
	bar.Min = 0
	bar.Max = motortest.MaxDuty
	bar.TextFormatter = func() string {
		return fmt.Sprintf("%.0f", bar.Value)
	}

	return container.NewBorder(nil, nil, widget.NewLabel(c.String()), nil, bar), bar
}

func createIntervalSlider(onSet func(float64)) *fyne.Container {
	defaultValue := float64(motortest.DefaultInterval / (100 * time.Millisecond))
	valueLabel := widget.NewLabel(formatTenths(defaultValue))

	slider := widget.NewSlider(1, 99)
	slider.Step = 1
	slider.SetValue(defaultValue)
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(formatTenths(value))
	}
	slider.OnChangeEnded = onSet

	return container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Interval"),
			valueLabel,
		),
		slider,
	)
}

func formatTenths(v float64) string {
	return strconv.FormatFloat(v/10, 'f', 1, 64) + "s"
}

// Show creates the monitor window. Buttons write console commands to w
func (ui *MotorUI) Show(ctx context.Context, app fyne.App, w io.Writer) fyne.Window {
	window := app.NewWindow("Motor Test")
	c := &controllerWrapper{writer: w}

	var bars [motortest.NumChannels]*widget.ProgressBar
	front := container.NewGridWithColumns(2)
	back := container.NewGridWithColumns(2)
	for _, ch := range motortest.Channels {
		row, bar := createBar(ch)
		bars[ch] = bar
		if ch == motortest.FrontLeft || ch == motortest.FrontRight {
			front.Add(row)
		} else {
			back.Add(row)
		}
	}

	stepLabel := widget.NewLabel("step -/-")
	stepTimer := newTimer()
	stepTimer.Go(ctx)

	goToEntry := widget.NewEntry()
	goToEntry.SetPlaceHolder("step")
	goToEntry.OnSubmitted = func(s string) {
		goToEntry.SetText("")

		step, err := strconv.Atoi(s)
		if err != nil || step < 1 || step > 99 {
			fmt.Println("Invalid input. Please enter a step number from 1 to 99.")
			return
		}
		c.GoTo(step)
	}

	buttons := container.NewGridWithColumns(5,
		widget.NewButton("Pause", c.Pause),
		widget.NewButton("Resume", c.Resume),
		widget.NewButton("Next", c.Next),
		widget.NewButton("Reset", c.Reset),
		widget.NewButton("Stop", c.Stop),
	)

	content := container.NewVBox(
		container.NewHBox(
			stepLabel,
			layout.NewSpacer(),
			container.NewPadded(stepTimer.text),
		),
		widget.NewCard("Front", "", front),
		widget.NewCard("Back", "", back),
		buttons,
		container.NewBorder(nil, nil, widget.NewLabel("Go to"), widget.NewButton("Go", func() {
			goToEntry.OnSubmitted(goToEntry.Text)
		}), goToEntry),
		createIntervalSlider(c.SetInterval),
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ui.updated:
			}

			status, _ := ui.Latest()
			stepTimer.Set(time.Now())
			fyne.Do(func() {
				for _, ch := range motortest.Channels {
					bars[ch].SetValue(float64(status.Step[ch]))
				}
				stepLabel.SetText(fmt.Sprintf("step %d/%d", status.Index+1, status.Len))
			})
		}
	}()

	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 320))
	window.Show()
	return window
}
