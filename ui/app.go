package ui

import (
	"context"
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/calvinmclean/motortest/controller"
)

// Run shows the configuration window when askConfig is set, connects, and shows the
// monitor until it is closed or ctx is done
func Run(ctx context.Context, cfg controller.Config, askConfig bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application := app.NewWithID("com.calvinmclean.motortest")

	var c *controller.Controller
	start := func() {
		var err error
		c, err = controller.New(cfg)
		if err != nil {
			window := application.NewWindow("Motor Test")
			window.Show()
			showError(application, window, err)
			return
		}

		r, w := io.Pipe()
		motorUI := NewMotorUI()
		window := motorUI.Show(ctx, application, w)
		window.SetOnClosed(cancel)

		go func() {
			defer r.Close()
			err := c.Run(ctx, r, io.MultiWriter(os.Stdout, motorUI))
			if err != nil {
				fyne.Do(func() { showError(application, window, err) })
			}
		}()
	}

	if askConfig {
		cw := NewConfigWindow(application)
		cw.OnSubmit = start
		cw.Show(&cfg)
	} else {
		start()
	}

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	application.Run()

	if c != nil {
		c.Close()
	}
}
