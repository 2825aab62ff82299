package dxl

import "testing"

func TestControlTableAddresses(t *testing.T) {
	tests := []struct {
		name Name
		addr uint16
		width uint8
	}{
		{TorqueEnable, 64, 1},
		{GoalPosition, 116, 4},
		{PresentPosition, 132, 4},
		{OperatingMode, 11, 1},
		{ID, 7, 1},
		{BaudRate, 8, 1},
	}

	for _, tt := range tests {
		if got := Address(tt.name); got != tt.addr {
			t.Errorf("Address(%d) = %d, want %d", tt.name, got, tt.addr)
		}
		if got := Width(tt.name); got != tt.width {
			t.Errorf("Width(%d) = %d, want %d", tt.name, got, tt.width)
		}
	}
}

func TestPresentCurrentScaleVariesByModel(t *testing.T) {
	xm := Scale(PresentCurrent, XM430W350)
	xc := Scale(PresentCurrent, XC330T181)
	if xm == xc {
		t.Errorf("PresentCurrent scale should differ by model: XM430=%v XC330=%v", xm, xc)
	}
	if xc != 1.0 {
		t.Errorf("XC330T181 PresentCurrent scale = %v, want 1.0", xc)
	}
}

func TestOperatingModeConstants(t *testing.T) {
	seen := map[uint8]bool{}
	for _, v := range []uint8{
		OpModeCurrent, OpModeVelocity, OpModePosition,
		OpModeExtendedPosition, OpModeCurrentBasedPosition, OpModePWM,
	} {
		if seen[v] {
			t.Errorf("duplicate operating mode value %d", v)
		}
		seen[v] = true
	}
}
