// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

// Package irlink implements the framed wire protocol spoken to a frostbeam
// infrared transceiver dongle over a byte stream (serial or WebSocket).
//
// A frame is START | stuffed(length, CBOR payload, CRC) | END, where the
// CBOR payload is a two element array [msg_type, payload_map]. The dongle
// side is a request/response peer: it transmits pulse trains on request and
// streams back captured trains while a capture is armed.
package irlink

// Protocol framing bytes
const (
	StartByte = 0x7E
	EndByte   = 0x7F
	EscByte   = 0x7D
	EscXor    = 0x20
)

// Frame size limits. A 56-bit train with repeats is a few hundred CBOR
// bytes, so the payload length is carried as two big-endian bytes.
const (
	MaxPayloadSize = 2048
	MaxFrameSize   = MaxPayloadSize + 4 // length (2) + CRC (2)
)

// CRC-16-CCITT configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Message types - Requests (host → dongle) 0x10-0x1F
const (
	MsgTransmitRequest = 0x10
	MsgCaptureStart    = 0x11
	MsgCaptureStop     = 0x12
	MsgPingRequest     = 0x1F
)

// Message types - Responses (dongle → host) 0x30-0x3F
const (
	MsgTransmitDone = 0x30
	MsgCaptureData  = 0x31
	MsgPingResponse = 0x3F
)

// Message types - Errors (dongle → host) 0xE0-0xEF
const (
	MsgErrorBadFrame = 0xE0
	MsgErrorBusy     = 0xE1
)

// Decoder states (internal)
const (
	stateIdle = iota
	stateLenHigh
	stateLenLow
	statePayload
	stateCRC1
	stateCRC2
)
