// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package irlink

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Encoder encodes link frames for transmission.
// Handles CBOR encoding, byte stuffing, and CRC calculation.
type Encoder struct{}

// NewEncoder creates a new frame encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode encodes a Frame to wire format.
func (e *Encoder) Encode(f *Frame) ([]byte, error) {
	return EncodeFrameFromValues(f.Type(), f.PayloadMap())
}

// EncodeFrameFromValues creates a complete wire-formatted frame.
// Returns the bytes ready for transmission, including framing and stuffing.
func EncodeFrameFromValues(msgType uint8, payloadMap map[int]interface{}) ([]byte, error) {
	cborPayload, err := encodeCBORPayload(msgType, payloadMap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode CBOR payload: %w", err)
	}

	if len(cborPayload) > MaxPayloadSize {
		return nil, fmt.Errorf("CBOR payload too large: %d bytes (max %d)", len(cborPayload), MaxPayloadSize)
	}

	// Data section: 2 length bytes (big-endian) + CBOR payload.
	// This is what gets CRC'd and byte-stuffed.
	data := make([]byte, 2+len(cborPayload))
	data[0] = byte(len(cborPayload) >> 8)
	data[1] = byte(len(cborPayload) & 0xFF)
	copy(data[2:], cborPayload)

	crc := CalculateCRC(data)
	data = append(data, byte(crc>>8), byte(crc&0xFF))

	stuffed := stuffBytes(data)

	frame := make([]byte, 0, len(stuffed)+2)
	frame = append(frame, StartByte)
	frame = append(frame, stuffed...)
	frame = append(frame, EndByte)

	return frame, nil
}

// MustEncodeFrame encodes a Frame, panicking on error. Intended for frames
// built by the message constructors in this package, which cannot fail.
func MustEncodeFrame(f *Frame) []byte {
	data, err := EncodeFrameFromValues(f.Type(), f.PayloadMap())
	if err != nil {
		panic(fmt.Sprintf("irlink: encode error: %v", err))
	}
	return data
}

// encodeCBORPayload creates the CBOR-encoded payload for a message.
func encodeCBORPayload(msgType uint8, payloadMap map[int]interface{}) ([]byte, error) {
	var msg interface{}
	if len(payloadMap) == 0 {
		msg = []interface{}{uint64(msgType), nil}
	} else {
		msg = []interface{}{uint64(msgType), payloadMap}
	}
	return cbor.Marshal(msg)
}

// stuffBytes applies byte stuffing to escape special bytes.
// Special bytes (START, END, ESC) are replaced with ESC + (byte XOR EscXor).
func stuffBytes(data []byte) []byte {
	result := make([]byte, 0, len(data)*2)
	for _, b := range data {
		if b == StartByte || b == EndByte || b == EscByte {
			result = append(result, EscByte, b^EscXor)
		} else {
			result = append(result, b)
		}
	}
	return result
}

// UnstuffBytes removes byte stuffing from escaped data.
// This is the inverse of stuffBytes.
func UnstuffBytes(data []byte) ([]byte, error) {
	result := make([]byte, 0, len(data))
	escapeNext := false

	for _, b := range data {
		if escapeNext {
			result = append(result, b^EscXor)
			escapeNext = false
		} else if b == EscByte {
			escapeNext = true
		} else {
			result = append(result, b)
		}
	}

	if escapeNext {
		return nil, fmt.Errorf("incomplete escape sequence at end of data")
	}

	return result, nil
}
