// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

// Package technibel implements the Technibel air conditioner infrared remote
// protocol: the 56-bit packed state record, its setters and protocol
// constraints, the integrity checksum, and the encode/decode transforms
// between the packed record and a mark/space pulse train.
//
// The packed record is exactly the wire value. Bit offsets count from the
// least significant bit, which is also the first bit on the wire:
//
//	 0..7   checksum
//	 8..15  always zero
//	16..20  timer hours (0-24)
//	21..23  always zero
//	24..30  temperature (16-30 degC or 61-86 degF)
//	31      always zero
//	32..34  fan speed (one-hot)
//	35      always zero
//	36      sleep
//	37      swing (vertical)
//	38      temperature unit (0=Celsius, 1=Fahrenheit)
//	39      timer enabled
//	40..43  operating mode (one-hot)
//	44..46  fan/temp/timer change flags (unused, always zero)
//	47      power
//	48..55  header signature (0x18)
package technibel

import "time"

// Protocol is the identifier reported in decode results.
const Protocol = "TECHNIBEL_AC"

// Bits is the canonical frame length in data bits.
const Bits = 56

// Bit layout offsets and widths (LSB-based)
const (
	ChecksumOffset   = 0
	ChecksumSize     = 8
	TimerHoursOffset = 16
	TimerHoursSize   = 5
	TempOffset       = 24
	TempSize         = 7
	FanOffset        = 32
	FanSize          = 3
	SleepBit         = 36
	SwingBit         = 37
	TempUnitBit      = 38
	TimerEnableBit   = 39
	ModeOffset       = 40
	ModeSize         = 4
	PowerBit         = 47
	HeaderOffset     = 48
	HeaderSize       = 8
)

// Header is the fixed signature written into bits 48..55 of every frame.
const Header = 0x18

// Native one-hot operating mode codes
const (
	ModeCool = 0b0001
	ModeDry  = 0b0010
	ModeFan  = 0b0100
	ModeHeat = 0b1000
)

// Native one-hot fan speed codes
const (
	FanLow    = 0b001
	FanMedium = 0b010
	FanHigh   = 0b100
)

// Temperature bounds per unit, degrees
const (
	TempMinC = 16
	TempMaxC = 30
	TempMinF = 61
	TempMaxF = 86
)

// TimerMax is the largest supported off-timer value, in hours.
const TimerMax = 24

// ResetState is the packed record for the power-off default:
// Cool mode, low fan, 20 degC, swing/sleep off, no timer.
const ResetState = 0x180101140000EA

// Waveform timing. Marks are identical everywhere; only the space after a
// data mark distinguishes a one bit from a zero bit.
const (
	HeaderMark  = 8836 * time.Microsecond
	HeaderSpace = 4380 * time.Microsecond
	BitMark     = 523 * time.Microsecond
	OneSpace    = 1696 * time.Microsecond
	ZeroSpace   = 564 * time.Microsecond
	MessageGap  = 100 * time.Millisecond
)

// Carrier modulation constants
const (
	CarrierHz = 38000
	DutyCycle = 50 // percent
)

// Decode defaults
const (
	// DefaultTolerance is the match window for mark/space comparison,
	// in percent of the expected duration.
	DefaultTolerance = 25
	// DefaultMarkExcess widens mark comparisons uniformly to absorb the
	// receiver hardware's tendency to stretch marks into spaces.
	DefaultMarkExcess = 50 * time.Microsecond
)

// frameOverhead is the number of timing entries beyond the data bit pairs:
// header mark, header space, and the trailing gap.
const frameOverhead = 3
