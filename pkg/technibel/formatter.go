// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

import (
	"fmt"
	"strings"
)

// String renders every setting in a fixed order for logs and debugging.
// The output is not meant to be parsed back.
func (ac *AC) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Power: %s", onOff(ac.Power()))
	fmt.Fprintf(&b, ", Mode: %d (%s)", ac.Mode(), modeName(ac.Mode()))
	fmt.Fprintf(&b, ", Fan: %d (%s)", ac.Fan(), fanName(ac.Fan()))
	unit := "C"
	if ac.TempUnit() {
		unit = "F"
	}
	fmt.Fprintf(&b, ", Temp: %d%s", ac.Temp(), unit)
	fmt.Fprintf(&b, ", Sleep: %s", onOff(ac.Sleep()))
	fmt.Fprintf(&b, ", Swing(V): %s", onOff(ac.Swing()))
	if ac.TimerEnabled() {
		fmt.Fprintf(&b, ", Timer: %02d:%02d", ac.Timer()/60, ac.Timer()%60)
	} else {
		b.WriteString(", Timer: Off")
	}

	return b.String()
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

func modeName(mode uint8) string {
	switch mode {
	case ModeCool:
		return "Cool"
	case ModeDry:
		return "Dry"
	case ModeFan:
		return "Fan"
	case ModeHeat:
		return "Heat"
	default:
		return "Unknown"
	}
}

func fanName(speed uint8) string {
	switch speed {
	case FanLow:
		return "Low"
	case FanMedium:
		return "Medium"
	case FanHigh:
		return "High"
	default:
		return "Unknown"
	}
}
