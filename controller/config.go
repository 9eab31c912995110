package controller

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config has everything needed to connect to a board
type Config struct {
	// SerialPort is the board's port. An empty port uses the first USB serial port and
	// SerialPortNone uses the simulator
	SerialPort string `env:"MOTORTEST_SERIAL_PORT"`
	BaudRate   int    `env:"MOTORTEST_BAUD_RATE" envDefault:"115200"`

	// Interval and TablePath only apply to the simulator. The firmware's table is fixed
	Interval  time.Duration `env:"MOTORTEST_INTERVAL" envDefault:"2500ms"`
	TablePath string        `env:"MOTORTEST_TABLE"`
}

// ConfigFromEnv reads Config from MOTORTEST_* environment variables
func ConfigFromEnv() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config from environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later when connecting
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate: %d", c.BaudRate)
	}
	if c.Interval < 0 {
		return fmt.Errorf("invalid interval: %s", c.Interval)
	}
	return nil
}
