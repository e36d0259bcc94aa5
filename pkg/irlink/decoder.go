// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package irlink

import (
	"fmt"
	"time"
)

// Decoder implements the link protocol frame decoder state machine.
// Feed it one byte at a time; it re-synchronizes on every START byte.
type Decoder struct {
	state       int
	buffer      []byte
	bufferIndex int
	escapeNext  bool
	frame       *Frame
	payloadLen  int
	rawBuffer   []byte // Accumulate raw bytes including framing
}

// NewDecoder creates a new link frame decoder
func NewDecoder() *Decoder {
	return &Decoder{
		state:     stateIdle,
		buffer:    make([]byte, MaxFrameSize),
		rawBuffer: make([]byte, 0, MaxFrameSize*2),
	}
}

// Reset resets the decoder state to idle
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.bufferIndex = 0
	d.escapeNext = false
	d.frame = nil
	d.payloadLen = 0
	d.rawBuffer = d.rawBuffer[:0]
}

// GetRawBytes returns the accumulated raw bytes since the last frame
func (d *Decoder) GetRawBytes() []byte {
	return d.rawBuffer
}

// DecodeByte processes a single byte through the decoder state machine.
// Returns a completed frame, or nil if the frame is incomplete.
// Returns an error if decoding fails.
func (d *Decoder) DecodeByte(b byte) (*Frame, error) {
	// Always accumulate raw bytes for verification
	d.rawBuffer = append(d.rawBuffer, b)

	// Handle byte stuffing
	if b == EscByte && !d.escapeNext {
		d.escapeNext = true
		return nil, nil
	}

	originalB := b
	if d.escapeNext {
		b ^= EscXor
		d.escapeNext = false
	}

	// Handle framing bytes
	if originalB == StartByte && !d.escapeNext {
		d.Reset()
		d.rawBuffer = append(d.rawBuffer[:0], originalB)
		d.state = stateLenHigh
		return nil, nil
	}

	if originalB == EndByte && !d.escapeNext {
		if d.state == stateCRC2 {
			// Frame complete - validate CRC
			frame := d.frame
			calculatedCRC := CalculateCRC(d.buffer[:d.bufferIndex])

			if frame.crc != calculatedCRC {
				err := fmt.Errorf("CRC mismatch: expected 0x%04X, got 0x%04X", calculatedCRC, frame.crc)
				d.Reset()
				return nil, err
			}

			frame.timestamp = time.Now()

			d.Reset()
			return frame, nil
		}
		d.Reset()
		return nil, fmt.Errorf("unexpected END byte in state %d", d.state)
	}

	// State machine
	switch d.state {
	case stateIdle:
		// Waiting for START byte
		return nil, nil

	case stateLenHigh:
		d.payloadLen = int(b) << 8
		d.buffer[d.bufferIndex] = b
		d.bufferIndex++
		d.state = stateLenLow
		return nil, nil

	case stateLenLow:
		d.payloadLen |= int(b)
		if d.payloadLen > MaxPayloadSize {
			d.Reset()
			return nil, fmt.Errorf("invalid length: %d (max %d)", d.payloadLen, MaxPayloadSize)
		}
		d.frame = &Frame{length: uint16(d.payloadLen), cborPayload: make([]byte, 0, d.payloadLen)}
		d.buffer[d.bufferIndex] = b
		d.bufferIndex++
		if d.payloadLen == 0 {
			d.state = stateCRC1
		} else {
			d.state = statePayload
		}
		return nil, nil

	case statePayload:
		// Check for buffer overflow before accepting byte
		if d.bufferIndex >= MaxFrameSize {
			d.Reset()
			return nil, fmt.Errorf("buffer overflow: frame exceeds max size")
		}
		d.frame.cborPayload = append(d.frame.cborPayload, b)
		d.buffer[d.bufferIndex] = b
		d.bufferIndex++
		if len(d.frame.cborPayload) >= d.payloadLen {
			d.state = stateCRC1
		}
		return nil, nil

	case stateCRC1:
		d.frame.crc = uint16(b) << 8
		d.state = stateCRC2
		return nil, nil

	case stateCRC2:
		d.frame.crc |= uint16(b)
		// Wait for END byte
		return nil, nil

	default:
		d.Reset()
		return nil, fmt.Errorf("invalid state: %d", d.state)
	}
}
