package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSimulate(t *testing.T) {
	out, err := runCommand(t, "simulate", "--interval", "1ms", "--ticks", "13", "--log-level", "ERROR")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "step=1/12 FL=0 FR=0 BL=0 BR=0", lines[0])
	assert.Equal(t, "step=2/12 FL=0 FR=180 BL=0 BR=0", lines[1])
	assert.Equal(t, "step=12/12 FL=0 FR=0 BL=0 BR=0", lines[11])
	assert.Equal(t, "step=1/12 FL=0 FR=0 BL=0 BR=0", lines[12])
}

func TestSimulateWithTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - {fl: 10}\n  - {br: 20}\n"), 0o600))

	out, err := runCommand(t, "simulate", "--table", path, "--interval", "1ms", "--ticks", "2", "--log-level", "ERROR")
	require.NoError(t, err)
	assert.Equal(t, "step=1/2 FL=10 FR=0 BL=0 BR=0\nstep=2/2 FL=0 FR=0 BL=0 BR=20\n", out)
}

func TestTable(t *testing.T) {
	out, err := runCommand(t, "table", "print")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "steps:\n"))

	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	out, err = runCommand(t, "table", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "step=11/12 FL=255 FR=255 BL=255 BR=255")
	assert.Contains(t, out, "12 steps OK")

	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - {fr: 999}\n"), 0o600))
	_, err = runCommand(t, "table", "validate", path)
	assert.ErrorContains(t, err, "FR duty 999 out of range")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runCommand(t, "table", "print", "--log-level", "LOUD")
	assert.ErrorContains(t, err, "invalid log level")
}
