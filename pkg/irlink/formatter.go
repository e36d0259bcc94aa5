// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package irlink

import "fmt"

// FormatMessageType returns the human-readable name for a message type
func FormatMessageType(msgType uint8) string {
	switch msgType {
	case MsgTransmitRequest:
		return "TRANSMIT_REQUEST"
	case MsgCaptureStart:
		return "CAPTURE_START"
	case MsgCaptureStop:
		return "CAPTURE_STOP"
	case MsgPingRequest:
		return "PING_REQUEST"
	case MsgTransmitDone:
		return "TRANSMIT_DONE"
	case MsgCaptureData:
		return "CAPTURE_DATA"
	case MsgPingResponse:
		return "PING_RESPONSE"
	case MsgErrorBadFrame:
		return "ERROR_BAD_FRAME"
	case MsgErrorBusy:
		return "ERROR_BUSY"
	default:
		return "UNKNOWN"
	}
}

// FormatFrame formats a frame header into a human-readable line
func FormatFrame(f *Frame) string {
	timestamp := f.Timestamp().Format("15:04:05.000")
	return fmt.Sprintf("[%s] %s (0x%02X) len=%d", timestamp, FormatMessageType(f.Type()), f.Type(), f.Length())
}
