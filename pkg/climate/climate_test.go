// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package climate

import "testing"

func TestOpMode_String(t *testing.T) {
	tests := []struct {
		mode OpMode
		want string
	}{
		{ModeOff, "Off"},
		{ModeAuto, "Auto"},
		{ModeCool, "Cool"},
		{ModeHeat, "Heat"},
		{ModeDry, "Dry"},
		{ModeFan, "Fan"},
		{OpMode(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("OpMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestFanLevel_String(t *testing.T) {
	tests := []struct {
		level FanLevel
		want  string
	}{
		{FanAuto, "Auto"},
		{FanMin, "Min"},
		{FanLow, "Low"},
		{FanMedium, "Medium"},
		{FanHigh, "High"},
		{FanMax, "Max"},
		{FanLevel(-3), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("FanLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestState_String(t *testing.T) {
	s := State{
		Protocol: "TECHNIBEL_AC",
		Power:    true,
		Mode:     ModeHeat,
		Degrees:  24,
		Celsius:  true,
		Fan:      FanLow,
		SwingV:   SwingVOff,
		Sleep:    SleepOff,
	}
	want := "TECHNIBEL_AC: Power=true, Mode=Heat, Temp=24C, Fan=Low, SwingV=Off, Sleep=-1"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
