package simulator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/calvinmclean/motortest"

	"gopkg.in/yaml.v3"
)

// tableFile is the YAML layout of a step table:
//
//	steps:
//	  - {fl: 0, fr: 180, bl: 0, br: 0}
type tableFile struct {
	Steps []stepEntry `yaml:"steps"`
}

type stepEntry struct {
	FL int `yaml:"fl"`
	FR int `yaml:"fr"`
	BL int `yaml:"bl"`
	BR int `yaml:"br"`
}

func (e stepEntry) values() [motortest.NumChannels]int {
	return [motortest.NumChannels]int{
		motortest.FrontLeft:  e.FL,
		motortest.FrontRight: e.FR,
		motortest.BackLeft:   e.BL,
		motortest.BackRight:  e.BR,
	}
}

// LoadTable reads a YAML step table. Unknown keys, duties outside [0,255] and empty
// tables are errors
func LoadTable(r io.Reader) (motortest.Table, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var tf tableFile
	err := decoder.Decode(&tf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding table: %w", err)
	}

	table := make(motortest.Table, 0, len(tf.Steps))
	for i, entry := range tf.Steps {
		var step motortest.Step
		for c, v := range entry.values() {
			duty := motortest.ClampDuty(v)
			if int(duty) != v {
				return nil, fmt.Errorf("step %d: %s duty %d out of range [0,%d]", i+1, motortest.Channel(c), v, motortest.MaxDuty)
			}
			step[c] = duty
		}
		table = append(table, step)
	}

	err = table.Validate()
	if err != nil {
		return nil, err
	}

	return table, nil
}

// LoadTableFile reads a YAML step table from path
func LoadTableFile(path string) (motortest.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading table file: %w", err)
	}

	table, err := LoadTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid table %q: %w", path, err)
	}
	return table, nil
}

// MarshalTable encodes a table in the format read by LoadTable
func MarshalTable(table motortest.Table) ([]byte, error) {
	tf := tableFile{Steps: make([]stepEntry, 0, len(table))}
	for _, step := range table {
		tf.Steps = append(tf.Steps, stepEntry{
			FL: int(step[motortest.FrontLeft]),
			FR: int(step[motortest.FrontRight]),
			BL: int(step[motortest.BackLeft]),
			BR: int(step[motortest.BackRight]),
		})
	}
	return yaml.Marshal(tf)
}
