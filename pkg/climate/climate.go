// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

// Package climate defines a protocol-agnostic description of a climate
// control unit's settings. Remote protocol packages convert their native
// packed representations to and from this vocabulary so higher layers can
// work with one state record regardless of the remote in use.
package climate

import "fmt"

// OpMode is an operating mode in the common vocabulary.
type OpMode int

// Operating modes
const (
	ModeOff OpMode = iota - 1
	ModeAuto
	ModeCool
	ModeHeat
	ModeDry
	ModeFan
)

// String returns the mode's display name
func (m OpMode) String() string {
	switch m {
	case ModeOff:
		return "Off"
	case ModeAuto:
		return "Auto"
	case ModeCool:
		return "Cool"
	case ModeHeat:
		return "Heat"
	case ModeDry:
		return "Dry"
	case ModeFan:
		return "Fan"
	default:
		return "Unknown"
	}
}

// FanLevel is a fan speed tier in the common vocabulary.
type FanLevel int

// Fan speed tiers
const (
	FanAuto FanLevel = iota
	FanMin
	FanLow
	FanMedium
	FanHigh
	FanMax
)

// String returns the fan level's display name
func (f FanLevel) String() string {
	switch f {
	case FanAuto:
		return "Auto"
	case FanMin:
		return "Min"
	case FanLow:
		return "Low"
	case FanMedium:
		return "Medium"
	case FanHigh:
		return "High"
	case FanMax:
		return "Max"
	default:
		return "Unknown"
	}
}

// SwingV is a vertical louver position in the common vocabulary.
type SwingV int

// Vertical swing positions
const (
	SwingVOff SwingV = iota - 1
	SwingVAuto
	SwingVHighest
	SwingVHigh
	SwingVMiddle
	SwingVLow
	SwingVLowest
)

// String returns the swing position's display name
func (s SwingV) String() string {
	switch s {
	case SwingVOff:
		return "Off"
	case SwingVAuto:
		return "Auto"
	case SwingVHighest:
		return "Highest"
	case SwingVHigh:
		return "High"
	case SwingVMiddle:
		return "Middle"
	case SwingVLow:
		return "Low"
	case SwingVLowest:
		return "Lowest"
	default:
		return "Unknown"
	}
}

// Sentinel values for features a protocol does not support.
const (
	SleepOff    = -1 // Sleep: minutes, -1 when off/unsupported
	ClockUnset  = -1 // Clock: minutes past midnight, -1 when unsupported
	ModelUnset  = -1 // Model: protocol model variant, -1 when unsupported
)

// State is the full common-vocabulary settings record. Protocols that do not
// support a given feature report its sentinel "off/unsupported" value.
type State struct {
	Protocol string
	Model    int
	Power    bool
	Mode     OpMode
	Degrees  float64
	Celsius  bool
	Fan      FanLevel
	SwingV   SwingV
	SwingH   bool
	Turbo    bool
	Light    bool
	Filter   bool
	Econo    bool
	Quiet    bool
	Clean    bool
	Beep     bool
	Sleep    int
	Clock    int
}

// String returns a one-line rendering of the supported settings.
func (s State) String() string {
	unit := "C"
	if !s.Celsius {
		unit = "F"
	}
	return fmt.Sprintf("%s: Power=%t, Mode=%s, Temp=%.0f%s, Fan=%s, SwingV=%s, Sleep=%d",
		s.Protocol, s.Power, s.Mode, s.Degrees, unit, s.Fan, s.SwingV, s.Sleep)
}
