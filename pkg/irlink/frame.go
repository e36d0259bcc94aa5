// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package irlink

import "time"

// Frame represents a decoded link frame
type Frame struct {
	length      uint16
	cborPayload []byte // Raw CBOR bytes: [msg_type, payload_map]
	crc         uint16
	timestamp   time.Time

	// Cached parsed values (lazy parsing)
	msgType    uint8
	payloadMap map[int]interface{}
	parsed     bool
	parseErr   error
}

// NewFrame creates a frame from already-decoded wire fields
func NewFrame(length uint16, cborPayload []byte, crc uint16) *Frame {
	return &Frame{
		length:      length,
		cborPayload: cborPayload,
		crc:         crc,
		timestamp:   time.Now(),
	}
}

// NewFrameWithPayload creates a frame from a message type and payload map.
// The CBOR encoding and CRC are computed when the frame is encoded.
func NewFrameWithPayload(msgType uint8, payload map[int]interface{}) *Frame {
	return &Frame{
		msgType:    msgType,
		payloadMap: payload,
		parsed:     true,
		timestamp:  time.Now(),
	}
}

// ensureParsed parses the CBOR payload if not already done
func (f *Frame) ensureParsed() {
	if f.parsed {
		return
	}
	f.parsed = true
	if len(f.cborPayload) == 0 {
		return
	}
	f.msgType, f.payloadMap, f.parseErr = ParseCBORMessage(f.cborPayload)
}

// Length returns the frame's CBOR payload length
func (f *Frame) Length() uint16 {
	return f.length
}

// Type returns the frame's message type (parsed from CBOR)
func (f *Frame) Type() uint8 {
	f.ensureParsed()
	return f.msgType
}

// Payload returns the raw CBOR payload bytes
func (f *Frame) Payload() []byte {
	return f.cborPayload
}

// PayloadMap returns the decoded CBOR payload map (nil for empty payloads)
func (f *Frame) PayloadMap() map[int]interface{} {
	f.ensureParsed()
	return f.payloadMap
}

// ParseError returns any error from parsing the CBOR payload
func (f *Frame) ParseError() error {
	f.ensureParsed()
	return f.parseErr
}

// CRC returns the frame's CRC value
func (f *Frame) CRC() uint16 {
	return f.crc
}

// Timestamp returns the frame's decode timestamp
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}
