// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

import "time"

// Encoder turns packed records into mark/space pulse trains ready for a
// waveform transport. Durations alternate mark, space, starting with the
// header mark. Repeat counts extra full re-transmissions of the same train.
type Encoder struct {
	Repeat int
}

// NewEncoder creates an encoder with no repeats.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode produces the pulse train for the AC's current state. The header
// signature and checksum are applied to the record as part of the read.
func (e *Encoder) Encode(ac *AC) []time.Duration {
	return e.EncodeRaw(ac.Raw(), Bits)
}

// EncodeRaw produces the pulse train for an arbitrary wire value of nbits
// data bits, scanned least-significant-bit first: header mark and space, one
// fixed mark per bit followed by a long space for a one or a short space for
// a zero, then a final mark and the inter-message gap.
func (e *Encoder) EncodeRaw(data uint64, nbits int) []time.Duration {
	trainLen := 2*nbits + 4 // header pair + bit pairs + footer mark + gap
	pulses := make([]time.Duration, 0, trainLen*(e.Repeat+1))

	for n := 0; n <= e.Repeat; n++ {
		pulses = append(pulses, HeaderMark, HeaderSpace)
		for i := 0; i < nbits; i++ {
			pulses = append(pulses, BitMark)
			if data>>i&1 == 1 {
				pulses = append(pulses, OneSpace)
			} else {
				pulses = append(pulses, ZeroSpace)
			}
		}
		pulses = append(pulses, BitMark, MessageGap)
	}
	return pulses
}
