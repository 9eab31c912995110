package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, Config{BaudRate: 115200, Interval: 2500 * time.Millisecond}, cfg)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("MOTORTEST_SERIAL_PORT", "/dev/ttyACM0")
		t.Setenv("MOTORTEST_BAUD_RATE", "9600")
		t.Setenv("MOTORTEST_INTERVAL", "1s")
		t.Setenv("MOTORTEST_TABLE", "table.yaml")

		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, Config{
			SerialPort: "/dev/ttyACM0",
			BaudRate:   9600,
			Interval:   time.Second,
			TablePath:  "table.yaml",
		}, cfg)
	})

	t.Run("InvalidBaudRate", func(t *testing.T) {
		t.Setenv("MOTORTEST_BAUD_RATE", "fast")

		_, err := ConfigFromEnv()
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{BaudRate: 115200}.Validate())
	assert.Error(t, Config{BaudRate: -1}.Validate())
	assert.Error(t, Config{BaudRate: 115200, Interval: -time.Second}.Validate())
}
