// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

// Raw bit-packing primitives. These are the only way the packed record is
// read or written; they carry no protocol semantics and do no validation.

// readBits extracts width bits starting at offset (LSB-based).
func readBits(state uint64, offset, width uint) uint64 {
	mask := uint64(1)<<width - 1
	return (state >> offset) & mask
}

// writeBits replaces width bits starting at offset with value.
func writeBits(state *uint64, offset, width uint, value uint64) {
	mask := (uint64(1)<<width - 1) << offset
	*state = (*state &^ mask) | ((value << offset) & mask)
}

// readBit reports whether the bit at pos is set.
func readBit(state uint64, pos uint) bool {
	return state>>pos&1 == 1
}

// writeBit sets or clears the bit at pos.
func writeBit(state *uint64, pos uint, on bool) {
	if on {
		*state |= uint64(1) << pos
	} else {
		*state &^= uint64(1) << pos
	}
}

// AC holds the packed remote state plus the session-remembered temperature
// intent. The remembered fields let a mode switch restore the temperature the
// user last asked for instead of whatever the record currently holds.
//
// Setters never fail: out-of-range input is clamped or replaced with a safe
// default so the record always encodes a legal frame. An AC is not safe for
// concurrent use.
type AC struct {
	state      uint64
	savedTemp  uint8
	savedTempF bool
}

// New returns an AC in the power-off default state
// (Cool, low fan, 20 degC, swing/sleep off, no timer).
func New() *AC {
	ac := &AC{}
	ac.Reset()
	return ac
}

// Reset restores the power-off default state.
func (ac *AC) Reset() {
	ac.savedTemp = 20 // degC
	ac.savedTempF = false

	ac.state = 0
	ac.Off()
	ac.SetTemp(ac.savedTemp, ac.savedTempF)
	ac.SetMode(ModeCool)
	ac.SetFan(FanLow)
	ac.SetSwing(false)
	ac.SetSleep(false)
	ac.SetTimer(0)
}

// Raw returns the packed record with the header signature and a freshly
// computed checksum applied. This is the wire value to encode.
func (ac *AC) Raw() uint64 {
	writeBits(&ac.state, HeaderOffset, HeaderSize, Header)
	writeBits(&ac.state, ChecksumOffset, ChecksumSize, uint64(CalcChecksum(ac.state)))
	return ac.state
}

// SetRaw replaces the packed record with a captured wire value.
// The checksum is not verified here; use ValidChecksum for that.
func (ac *AC) SetRaw(state uint64) {
	ac.state = state
}

// On sets the requested power state to on.
func (ac *AC) On() { ac.SetPower(true) }

// Off sets the requested power state to off.
func (ac *AC) Off() { ac.SetPower(false) }

// SetPower changes the power setting.
func (ac *AC) SetPower(on bool) {
	writeBit(&ac.state, PowerBit, on)
}

// Power returns the power setting.
func (ac *AC) Power() bool {
	return readBit(ac.state, PowerBit)
}

// SetTempUnit sets the temperature unit bit (true = Fahrenheit).
func (ac *AC) SetTempUnit(fahrenheit bool) {
	writeBit(&ac.state, TempUnitBit, fahrenheit)
}

// TempUnit reports whether the temperature unit is Fahrenheit.
func (ac *AC) TempUnit() bool {
	return readBit(ac.state, TempUnitBit)
}

// SetTemp sets the target temperature in the given unit. Out-of-range values
// saturate to the nearest legal bound for that unit. The requested value and
// unit are remembered so mode switches can restore them.
func (ac *AC) SetTemp(degrees uint8, fahrenheit bool) {
	lo, hi := uint8(TempMinC), uint8(TempMaxC)
	if fahrenheit {
		lo, hi = TempMinF, TempMaxF
	}
	ac.SetTempUnit(fahrenheit)
	temp := degrees
	if temp < lo {
		temp = lo
	}
	if temp > hi {
		temp = hi
	}
	ac.savedTemp = temp
	ac.savedTempF = fahrenheit
	writeBits(&ac.state, TempOffset, TempSize, uint64(temp))
}

// Temp returns the target temperature in the unit reported by TempUnit.
func (ac *AC) Temp() uint8 {
	return uint8(readBits(ac.state, TempOffset, TempSize))
}

// SetFan sets the fan speed. Dry mode only supports low fan, so any other
// speed is silently corrected to low while Dry is active. Values outside the
// defined codes clamp to the nearest speed.
func (ac *AC) SetFan(speed uint8) {
	if ac.Mode() == ModeDry && speed != FanLow {
		ac.SetFan(FanLow)
		return
	}
	switch {
	case speed > FanHigh:
		ac.SetFan(FanHigh)
	case speed < FanLow:
		ac.SetFan(FanLow)
	default:
		writeBits(&ac.state, FanOffset, FanSize, uint64(speed))
	}
}

// Fan returns the native fan speed code.
func (ac *AC) Fan() uint8 {
	return uint8(readBits(ac.state, FanOffset, FanSize))
}

// SetMode sets the operating mode. Unknown modes fall back to Cool. Setting
// a mode re-applies the fan speed (to enforce the Dry/low-fan rule) and
// restores the remembered temperature and unit.
func (ac *AC) SetMode(mode uint8) {
	switch mode {
	case ModeCool, ModeDry, ModeFan, ModeHeat:
	default:
		ac.SetMode(ModeCool)
		return
	}
	writeBits(&ac.state, ModeOffset, ModeSize, uint64(mode))
	ac.SetFan(ac.Fan())
	ac.SetTemp(ac.savedTemp, ac.savedTempF)
}

// Mode returns the native operating mode code.
func (ac *AC) Mode() uint8 {
	return uint8(readBits(ac.state, ModeOffset, ModeSize))
}

// SetSwing changes the vertical swing setting.
func (ac *AC) SetSwing(on bool) {
	writeBit(&ac.state, SwingBit, on)
}

// Swing returns the vertical swing setting.
func (ac *AC) Swing() bool {
	return readBit(ac.state, SwingBit)
}

// SetSleep changes the sleep setting.
func (ac *AC) SetSleep(on bool) {
	writeBit(&ac.state, SleepBit, on)
}

// Sleep returns the sleep setting.
func (ac *AC) Sleep() bool {
	return readBit(ac.state, SleepBit)
}

// SetTimerEnabled changes the off-timer enable bit directly. SetTimer
// normally derives this from the hour count.
func (ac *AC) SetTimerEnabled(on bool) {
	writeBit(&ac.state, TimerEnableBit, on)
}

// TimerEnabled returns the off-timer enable bit.
func (ac *AC) TimerEnabled() bool {
	return readBit(ac.state, TimerEnableBit)
}

// SetTimer sets the off timer from a duration in minutes. The protocol only
// carries whole hours, so the value rounds down and anything under an hour
// clears the timer. Values beyond 24 hours clamp to 24.
func (ac *AC) SetTimer(minutes uint16) {
	hours := minutes / 60
	if hours > TimerMax {
		hours = TimerMax
	}
	writeBits(&ac.state, TimerHoursOffset, TimerHoursSize, uint64(hours))
	ac.SetTimerEnabled(hours > 0)
}

// Timer returns the remaining off-timer in minutes, 0 when disabled.
func (ac *AC) Timer() uint16 {
	if !ac.TimerEnabled() {
		return 0
	}
	return uint16(readBits(ac.state, TimerHoursOffset, TimerHoursSize)) * 60
}
