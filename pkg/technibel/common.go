// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

import "github.com/Calorique/frostbeam/pkg/climate"

// Conversions between the native one-hot codes and the common climate
// vocabulary. Every function is total: values with no native equivalent
// degrade to a protocol default, never an error.

// ConvertMode maps a common operating mode to its native code.
// Unsupported modes fall back to Cool.
func ConvertMode(mode climate.OpMode) uint8 {
	switch mode {
	case climate.ModeCool:
		return ModeCool
	case climate.ModeHeat:
		return ModeHeat
	case climate.ModeDry:
		return ModeDry
	case climate.ModeFan:
		return ModeFan
	default:
		return ModeCool
	}
}

// CommonMode maps a native mode code to the common vocabulary.
// Unknown codes report as Auto.
func CommonMode(mode uint8) climate.OpMode {
	switch mode {
	case ModeCool:
		return climate.ModeCool
	case ModeHeat:
		return climate.ModeHeat
	case ModeDry:
		return climate.ModeDry
	case ModeFan:
		return climate.ModeFan
	default:
		return climate.ModeAuto
	}
}

// ConvertFan maps a common fan tier to its native speed code.
// Tiers outside the three supported speeds collapse to the nearest one.
func ConvertFan(level climate.FanLevel) uint8 {
	switch level {
	case climate.FanMin, climate.FanLow:
		return FanLow
	case climate.FanMedium:
		return FanMedium
	case climate.FanHigh, climate.FanMax:
		return FanHigh
	default:
		return FanLow
	}
}

// CommonFanSpeed maps a native speed code to the common vocabulary.
// Unknown codes report as Low.
func CommonFanSpeed(speed uint8) climate.FanLevel {
	switch speed {
	case FanHigh:
		return climate.FanHigh
	case FanMedium:
		return climate.FanMedium
	default:
		return climate.FanLow
	}
}

// ConvertSwing maps a common vertical swing position to the native on/off
// bit. The hardware only sweeps or holds, so anything but Off means on.
func ConvertSwing(swing climate.SwingV) bool {
	return swing != climate.SwingVOff
}

// CommonSwing maps the native swing bit to the common vocabulary.
func CommonSwing(on bool) climate.SwingV {
	if on {
		return climate.SwingVAuto
	}
	return climate.SwingVOff
}

// ToCommon renders the current state as a common-vocabulary record.
// Features the protocol cannot express carry their unsupported sentinels.
func (ac *AC) ToCommon() climate.State {
	sleep := climate.SleepOff
	if ac.Sleep() {
		sleep = 0
	}
	return climate.State{
		Protocol: Protocol,
		Model:    climate.ModelUnset,
		Power:    ac.Power(),
		Mode:     CommonMode(ac.Mode()),
		Degrees:  float64(ac.Temp()),
		Celsius:  !ac.TempUnit(),
		Fan:      CommonFanSpeed(ac.Fan()),
		SwingV:   CommonSwing(ac.Swing()),
		SwingH:   false,
		Sleep:    sleep,
		Clock:    climate.ClockUnset,
	}
}
