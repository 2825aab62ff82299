package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dynamixel/dxl"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	path := writeProfile(t, `
port: /dev/ttyUSB0
baud_rate: 1000000
model: xc330-t181
timeout: 50ms
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q, want /dev/ttyUSB0", p.Port)
	}
	if p.BaudRate != 1000000 {
		t.Errorf("BaudRate = %d, want 1000000", p.BaudRate)
	}
	if p.Timeout != 50*time.Millisecond {
		t.Errorf("Timeout = %v, want 50ms", p.Timeout)
	}

	model, err := p.ResolveModel()
	if err != nil {
		t.Fatalf("ResolveModel failed: %v", err)
	}
	if model != dxl.XC330T181 {
		t.Errorf("ResolveModel() = %v, want XC330T181", model)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeProfile(t, "port: /dev/ttyUSB0\n")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.BaudRate != 57600 {
		t.Errorf("default BaudRate = %d, want 57600", p.BaudRate)
	}
	if p.Timeout != 100*time.Millisecond {
		t.Errorf("default Timeout = %v, want 100ms", p.Timeout)
	}
}

func TestLoadRejectsUnknownModel(t *testing.T) {
	path := writeProfile(t, "port: /dev/ttyUSB0\nmodel: mx-28\n")

	if _, err := Load(path); err == nil {
		t.Error("Load should reject an unrecognized model")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/profile.yaml"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
