// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoMatch is the base error for every decode failure. A caller that sees
// it should treat the capture as "not this protocol" and may hand the same
// buffer to another protocol's decoder; no partial state is ever produced.
var ErrNoMatch = errors.New("technibel: no match")

// Result is a successful decode. The protocol has no address/command
// sub-fields, so those are always zero.
type Result struct {
	Protocol string
	Bits     int
	Value    uint64
	Address  uint64
	Command  uint64
}

// Decoder validates captured pulse trains and extracts the wire value.
//
// Tolerance is the match window in percent of each expected duration.
// MarkExcess uniformly widens mark comparisons to absorb receiver stretch.
// Strict requires the requested bit count to equal the protocol's canonical
// length.
type Decoder struct {
	Tolerance  int
	MarkExcess time.Duration
	Strict     bool
}

// NewDecoder creates a decoder with the protocol's default tolerance and
// mark excess, in strict mode.
func NewDecoder() *Decoder {
	return &Decoder{
		Tolerance:  DefaultTolerance,
		MarkExcess: DefaultMarkExcess,
		Strict:     true,
	}
}

// Decode attempts to decode a full capture as a Technibel frame of the
// canonical bit count, starting at the first entry.
func (d *Decoder) Decode(pulses []time.Duration) (*Result, error) {
	return d.DecodeAt(pulses, 0, Bits)
}

// DecodeAt attempts to decode nbits data bits starting at offset. Any
// framing or timing mismatch fails the whole decode.
func (d *Decoder) DecodeAt(pulses []time.Duration, offset, nbits int) (*Result, error) {
	if len(pulses)-offset < 2*nbits+frameOverhead {
		return nil, fmt.Errorf("%w: capture too short (%d entries, need %d)",
			ErrNoMatch, len(pulses)-offset, 2*nbits+frameOverhead)
	}
	if d.Strict && nbits != Bits {
		return nil, fmt.Errorf("%w: strict decode wants %d bits, got %d", ErrNoMatch, Bits, nbits)
	}

	i := offset

	// Header
	if !d.matchMark(pulses[i], HeaderMark) {
		return nil, fmt.Errorf("%w: header mark %v", ErrNoMatch, pulses[i])
	}
	i++
	if !d.matchSpace(pulses[i], HeaderSpace) {
		return nil, fmt.Errorf("%w: header space %v", ErrNoMatch, pulses[i])
	}
	i++

	// Data bits, least significant first
	var data uint64
	for bit := 0; bit < nbits; bit++ {
		if !d.matchMark(pulses[i], BitMark) {
			return nil, fmt.Errorf("%w: bit %d mark %v", ErrNoMatch, bit, pulses[i])
		}
		i++
		switch {
		case d.matchSpace(pulses[i], OneSpace):
			data |= uint64(1) << bit
		case d.matchSpace(pulses[i], ZeroSpace):
			// zero bit
		default:
			return nil, fmt.Errorf("%w: bit %d space %v", ErrNoMatch, bit, pulses[i])
		}
		i++
	}

	// Footer mark, then the trailing gap if it was captured. Gaps are only
	// bounded from below: the transmitter may idle arbitrarily long.
	if !d.matchMark(pulses[i], BitMark) {
		return nil, fmt.Errorf("%w: footer mark %v", ErrNoMatch, pulses[i])
	}
	i++
	if i < len(pulses) {
		if !d.matchAtLeast(pulses[i], MessageGap) {
			return nil, fmt.Errorf("%w: trailing gap %v", ErrNoMatch, pulses[i])
		}
	}

	return &Result{
		Protocol: Protocol,
		Bits:     nbits,
		Value:    data,
	}, nil
}

// matchMark compares a measured mark against an expected duration, widened
// by the mark excess margin on both sides of the tolerance window.
func (d *Decoder) matchMark(measured, expected time.Duration) bool {
	return measured >= d.lowerBound(expected)-d.MarkExcess &&
		measured <= d.upperBound(expected)+d.MarkExcess
}

// matchSpace compares a measured space against an expected duration.
func (d *Decoder) matchSpace(measured, expected time.Duration) bool {
	return measured >= d.lowerBound(expected) && measured <= d.upperBound(expected)
}

// matchAtLeast checks only the lower bound, for trailing gaps.
func (d *Decoder) matchAtLeast(measured, expected time.Duration) bool {
	return measured >= d.lowerBound(expected)
}

func (d *Decoder) lowerBound(expected time.Duration) time.Duration {
	return expected - expected*time.Duration(d.Tolerance)/100
}

func (d *Decoder) upperBound(expected time.Duration) time.Duration {
	return expected + expected*time.Duration(d.Tolerance)/100
}
