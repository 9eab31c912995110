package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/calvinmclean/motortest/controller"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

var (
	log    = logging.MustGetLogger("motortest")
	format = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`)
)

var (
	cfg controller.Config

	logLevel  string
	port      string
	baudRate  int
	interval  time.Duration
	tablePath string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "motortest",
		Short:        "Bench test the four drone motors",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogging(logLevel)
			if err != nil {
				return err
			}
			return loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARNING, ERROR")
	flags.StringVarP(&port, "port", "p", "", "serial port of the board, or \""+controller.SerialPortNone+"\" for the simulator (env MOTORTEST_SERIAL_PORT)")
	flags.IntVar(&baudRate, "baud", 0, "serial baud rate (env MOTORTEST_BAUD_RATE, default 115200)")
	flags.DurationVar(&interval, "interval", 0, "simulator step interval (env MOTORTEST_INTERVAL, default 2.5s)")
	flags.StringVarP(&tablePath, "table", "t", "", "simulator step table YAML file (env MOTORTEST_TABLE)")

	root.AddCommand(
		newMonitorCommand(),
		newSimulateCommand(),
		newTableCommand(),
		newPortsCommand(),
		newUICommand(),
	)

	return root
}

func setupLogging(level string) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)

	return nil
}

// loadConfig reads the environment and then applies any flags that were set
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = controller.ConfigFromEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.SerialPort = port
	}
	if flags.Changed("baud") {
		cfg.BaudRate = baudRate
	}
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if flags.Changed("table") {
		cfg.TablePath = tablePath
	}

	return cfg.Validate()
}
