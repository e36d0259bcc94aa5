// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

import "testing"

// ============================================================
// Bit primitive tests
// ============================================================

func TestBitPrimitives_RoundTrip(t *testing.T) {
	var state uint64

	writeBits(&state, 24, 7, 20)
	if got := readBits(state, 24, 7); got != 20 {
		t.Errorf("readBits(24,7) = %d, want 20", got)
	}

	writeBit(&state, 47, true)
	if !readBit(state, 47) {
		t.Error("bit 47 should be set")
	}
	writeBit(&state, 47, false)
	if readBit(state, 47) {
		t.Error("bit 47 should be clear")
	}
}

func TestBitPrimitives_WriteMasksValue(t *testing.T) {
	var state uint64
	// Values wider than the field must not leak into neighboring bits
	writeBits(&state, 8, 4, 0xFF)
	if state != 0xF00 {
		t.Errorf("state = 0x%X, want 0xF00", state)
	}
}

// ============================================================
// Default state
// ============================================================

func TestNew_DefaultState(t *testing.T) {
	ac := New()

	if ac.Power() {
		t.Error("default power should be off")
	}
	if got := ac.Mode(); got != ModeCool {
		t.Errorf("default mode = %d, want Cool (%d)", got, ModeCool)
	}
	if got := ac.Fan(); got != FanLow {
		t.Errorf("default fan = %d, want Low (%d)", got, FanLow)
	}
	if got := ac.Temp(); got != 20 {
		t.Errorf("default temp = %d, want 20", got)
	}
	if ac.TempUnit() {
		t.Error("default unit should be Celsius")
	}
	if ac.Swing() || ac.Sleep() {
		t.Error("swing and sleep should default off")
	}
	if ac.TimerEnabled() || ac.Timer() != 0 {
		t.Error("timer should default off")
	}
}

func TestRaw_DefaultMatchesResetState(t *testing.T) {
	ac := New()
	if got := ac.Raw(); got != ResetState {
		t.Errorf("default Raw() = 0x%014X, want 0x%014X", got, uint64(ResetState))
	}
}

func TestReset_RestoresDefault(t *testing.T) {
	ac := New()
	ac.On()
	ac.SetMode(ModeHeat)
	ac.SetTemp(86, true)
	ac.SetTimer(600)

	ac.Reset()
	if got := ac.Raw(); got != ResetState {
		t.Errorf("Raw() after Reset = 0x%014X, want 0x%014X", got, uint64(ResetState))
	}
}

// ============================================================
// Temperature clamping
// ============================================================

func TestSetTemp_ClampBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		degrees    uint8
		fahrenheit bool
		want       uint8
	}{
		{"below min C", 15, false, 16},
		{"min C", 16, false, 16},
		{"max C", 30, false, 30},
		{"above max C", 31, false, 30},
		{"below min F", 60, true, 61},
		{"min F", 61, true, 61},
		{"max F", 86, true, 86},
		{"above max F", 87, true, 86},
		{"zero C", 0, false, 16},
		{"way above F", 255, true, 86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := New()
			ac.SetTemp(tt.degrees, tt.fahrenheit)
			if got := ac.Temp(); got != tt.want {
				t.Errorf("SetTemp(%d, fahrenheit=%t): Temp() = %d, want %d",
					tt.degrees, tt.fahrenheit, got, tt.want)
			}
			if got := ac.TempUnit(); got != tt.fahrenheit {
				t.Errorf("TempUnit() = %t, want %t", got, tt.fahrenheit)
			}
		})
	}
}

// ============================================================
// Mode and fan interaction
// ============================================================

func TestSetMode_InvalidFallsBackToCool(t *testing.T) {
	ac := New()
	ac.SetMode(ModeHeat)
	ac.SetMode(0b0011) // not a one-hot code
	if got := ac.Mode(); got != ModeCool {
		t.Errorf("Mode() = %d, want Cool (%d)", got, ModeCool)
	}
	ac.SetMode(0)
	if got := ac.Mode(); got != ModeCool {
		t.Errorf("Mode() = %d, want Cool (%d)", got, ModeCool)
	}
}

func TestSetFan_DryForcesLow(t *testing.T) {
	ac := New()
	ac.SetMode(ModeDry)
	ac.SetFan(FanHigh)
	if got := ac.Fan(); got != FanLow {
		t.Errorf("Fan() in dry mode = %d, want Low (%d)", got, FanLow)
	}
}

func TestSetMode_DryCorrectsExistingFan(t *testing.T) {
	ac := New()
	ac.SetFan(FanHigh)
	ac.SetMode(ModeDry)
	if got := ac.Fan(); got != FanLow {
		t.Errorf("Fan() after switching to dry = %d, want Low (%d)", got, FanLow)
	}
}

func TestSetFan_ClampsToBounds(t *testing.T) {
	ac := New()
	ac.SetFan(0)
	if got := ac.Fan(); got != FanLow {
		t.Errorf("Fan() = %d, want Low (%d)", got, FanLow)
	}
	ac.SetFan(0b111)
	if got := ac.Fan(); got != FanHigh {
		t.Errorf("Fan() = %d, want High (%d)", got, FanHigh)
	}
}

func TestSetMode_RestoresRememberedTemp(t *testing.T) {
	ac := New()
	ac.SetTemp(27, false)

	// Mode switches must not corrupt the previously chosen temperature
	ac.SetMode(ModeFan)
	if got := ac.Temp(); got != 27 {
		t.Errorf("Temp() after mode switch = %d, want 27", got)
	}
	ac.SetMode(ModeHeat)
	if got := ac.Temp(); got != 27 {
		t.Errorf("Temp() after second mode switch = %d, want 27", got)
	}
	if ac.TempUnit() {
		t.Error("unit should still be Celsius")
	}
}

func TestSetMode_RestoresRememberedUnit(t *testing.T) {
	ac := New()
	ac.SetTemp(75, true)
	ac.SetMode(ModeCool)
	if got := ac.Temp(); got != 75 {
		t.Errorf("Temp() = %d, want 75", got)
	}
	if !ac.TempUnit() {
		t.Error("unit should still be Fahrenheit after mode switch")
	}
}

// ============================================================
// Timer
// ============================================================

func TestSetTimer_HourTruncation(t *testing.T) {
	tests := []struct {
		name        string
		minutes     uint16
		wantMinutes uint16
		wantEnabled bool
	}{
		{"zero clears", 0, 0, false},
		{"sub-hour lost", 59, 0, false},
		{"exact hour", 60, 60, true},
		{"rounds down", 90, 60, true},
		{"two hours", 120, 120, true},
		{"max", 1440, 1440, true},
		{"clamped to max", 1500, 1440, true},
		{"way over", 65535, 1440, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := New()
			ac.SetTimer(tt.minutes)
			if got := ac.Timer(); got != tt.wantMinutes {
				t.Errorf("SetTimer(%d): Timer() = %d, want %d", tt.minutes, got, tt.wantMinutes)
			}
			if got := ac.TimerEnabled(); got != tt.wantEnabled {
				t.Errorf("SetTimer(%d): TimerEnabled() = %t, want %t", tt.minutes, got, tt.wantEnabled)
			}
		})
	}
}

func TestTimer_ZeroWhenDisabled(t *testing.T) {
	ac := New()
	ac.SetTimer(120)
	ac.SetTimerEnabled(false)
	// Hours are still stored, but a disabled timer reads as zero
	if got := ac.Timer(); got != 0 {
		t.Errorf("Timer() with enable bit clear = %d, want 0", got)
	}
}

// ============================================================
// Raw access
// ============================================================

func TestSetRaw_ExposesCapturedFields(t *testing.T) {
	src := New()
	src.On()
	src.SetMode(ModeHeat)
	src.SetTemp(25, false)
	src.SetFan(FanMedium)
	src.SetSwing(true)
	raw := src.Raw()

	dst := New()
	dst.SetRaw(raw)
	if !dst.Power() {
		t.Error("power should be on")
	}
	if got := dst.Mode(); got != ModeHeat {
		t.Errorf("Mode() = %d, want Heat (%d)", got, ModeHeat)
	}
	if got := dst.Temp(); got != 25 {
		t.Errorf("Temp() = %d, want 25", got)
	}
	if got := dst.Fan(); got != FanMedium {
		t.Errorf("Fan() = %d, want Medium (%d)", got, FanMedium)
	}
	if !dst.Swing() {
		t.Error("swing should be on")
	}
}

func TestRaw_AlwaysCarriesHeader(t *testing.T) {
	ac := New()
	ac.SetRaw(0) // wipe everything, header included
	raw := ac.Raw()
	if got := raw >> HeaderOffset; got != Header {
		t.Errorf("header byte = 0x%02X, want 0x%02X", got, Header)
	}
}
