// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

// CalcChecksum computes the integrity byte for a packed record: the two's
// complement negation of the mod-256 sum of the 8-bit payload chunks between
// the timer-hours offset and the header offset. The header and the checksum
// byte itself are excluded.
func CalcChecksum(state uint64) uint8 {
	var sum uint8
	for offset := uint(TimerHoursOffset); offset < HeaderOffset; offset += 8 {
		sum += uint8(readBits(state, offset, 8))
	}
	return ^sum + 1
}

// ValidChecksum reports whether the checksum byte stored in a packed record
// matches its payload. Decoding does not verify this; callers decide whether
// a captured frame must pass.
func ValidChecksum(state uint64) bool {
	return uint8(readBits(state, ChecksumOffset, ChecksumSize)) == CalcChecksum(state)
}
