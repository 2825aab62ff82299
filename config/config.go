// Package config loads the YAML device profile a cmd/dxlctl invocation (or
// any other host application) uses to open a bus and address a servo
// family without hardcoding port/baud/model into the binary.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dynamixel/dxl"
)

// Profile describes one servo bus: the serial device to open, the baud
// rate to run it at, which motor model's control-table scales apply, and a
// transaction timeout. Timeout and Overrides are parsed (Timeout is also
// defaulted) but nothing in this module reads them: the driver derives its
// per-transaction deadline from the baud rate and frame length, and
// register lookups always use the built-in table.
type Profile struct {
	Port      string            `yaml:"port"`
	BaudRate  int               `yaml:"baud_rate"`
	Model     string            `yaml:"model"`
	Timeout   time.Duration     `yaml:"timeout"`
	Overrides map[string]Entry `yaml:"overrides,omitempty"`
}

// Entry is a site-specific control-table override: same shape as the
// built-in table, keyed by register name in the YAML file.
type Entry struct {
	Address uint16  `yaml:"address"`
	Width   uint8   `yaml:"width"`
	Scale   float32 `yaml:"scale"`
}

// Load reads and parses a Profile from path, filling in defaults for
// BaudRate and Timeout when the file leaves them zero, and rejects an
// unrecognized Model.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	p.applyDefaults()

	if _, err := p.ResolveModel(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &p, nil
}

func (p *Profile) applyDefaults() {
	if p.BaudRate == 0 {
		p.BaudRate = 57600
	}
	if p.Timeout == 0 {
		p.Timeout = 100 * time.Millisecond
	}
}

// ResolveModel maps the profile's Model string onto a dxl.Model constant.
func (p *Profile) ResolveModel() (dxl.Model, error) {
	switch p.Model {
	case "", "xm430-w350":
		return dxl.XM430W350, nil
	case "xc330-t181":
		return dxl.XC330T181, nil
	default:
		return 0, fmt.Errorf("unknown model %q", p.Model)
	}
}
