// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package irlink

import (
	"fmt"
	"time"
)

// Transmission is the request/response contract of the waveform transport:
// a mark/space pulse train plus the carrier parameters to modulate it with.
type Transmission struct {
	// Pulses alternate mark, space, starting with a mark.
	Pulses []time.Duration
	// CarrierHz is the modulation frequency for marks.
	CarrierHz uint32
	// DutyCycle is the carrier duty cycle in percent (1-100).
	DutyCycle uint8
	// Repeat is the number of extra full re-transmissions.
	Repeat int
}

// Payload map keys, per message type
const (
	keyCarrierHz = 0
	keyDutyCycle = 1
	keyRepeat    = 2
	keyPulses    = 3

	keyTimeoutMs = 0 // CAPTURE_START
	keyUptimeMs  = 0 // PING_RESPONSE
	keyErrorCode = 0 // ERROR_*
	keyErrorText = 1
)

// NewTransmitRequest creates a TRANSMIT_REQUEST frame (0x10) carrying a
// pulse train. Durations are sent as whole microseconds.
func NewTransmitRequest(tx Transmission) *Frame {
	micros := make([]interface{}, len(tx.Pulses))
	for i, p := range tx.Pulses {
		micros[i] = uint64(p / time.Microsecond)
	}
	payload := map[int]interface{}{
		keyCarrierHz: uint64(tx.CarrierHz),
		keyDutyCycle: uint64(tx.DutyCycle),
		keyRepeat:    uint64(tx.Repeat),
		keyPulses:    micros,
	}
	return NewFrameWithPayload(MsgTransmitRequest, payload)
}

// TransmissionFromFrame parses a TRANSMIT_REQUEST frame back into a
// Transmission. Useful for loopback tests and for dongle-side firmware.
func TransmissionFromFrame(f *Frame) (Transmission, error) {
	if f.Type() != MsgTransmitRequest {
		return Transmission{}, fmt.Errorf("not a TRANSMIT_REQUEST frame: type 0x%02X", f.Type())
	}
	m := f.PayloadMap()
	carrier, ok := GetMapUint(m, keyCarrierHz)
	if !ok {
		return Transmission{}, fmt.Errorf("TRANSMIT_REQUEST missing carrier frequency")
	}
	duty, ok := GetMapUint(m, keyDutyCycle)
	if !ok || duty == 0 || duty > 100 {
		return Transmission{}, fmt.Errorf("TRANSMIT_REQUEST bad duty cycle: %d", duty)
	}
	repeat, _ := GetMapUint(m, keyRepeat)
	micros, ok := GetMapUintSlice(m, keyPulses)
	if !ok || len(micros) == 0 {
		return Transmission{}, fmt.Errorf("TRANSMIT_REQUEST missing pulse train")
	}
	pulses := make([]time.Duration, len(micros))
	for i, us := range micros {
		pulses[i] = time.Duration(us) * time.Microsecond
	}
	return Transmission{
		Pulses:    pulses,
		CarrierHz: uint32(carrier),
		DutyCycle: uint8(duty),
		Repeat:    int(repeat),
	}, nil
}

// NewCaptureStart creates a CAPTURE_START frame (0x11). While armed, the
// dongle answers with one CAPTURE_DATA frame per pulse train it sees.
// A zero timeout arms the capture until CAPTURE_STOP.
func NewCaptureStart(timeout time.Duration) *Frame {
	var payload map[int]interface{}
	if timeout > 0 {
		payload = map[int]interface{}{
			keyTimeoutMs: uint64(timeout / time.Millisecond),
		}
	}
	return NewFrameWithPayload(MsgCaptureStart, payload)
}

// NewCaptureStop creates a CAPTURE_STOP frame (0x12).
func NewCaptureStop() *Frame {
	return NewFrameWithPayload(MsgCaptureStop, nil)
}

// NewCaptureData creates a CAPTURE_DATA frame (0x31) carrying a captured
// pulse train. Host code only needs this for tests and loopback tooling.
func NewCaptureData(pulses []time.Duration) *Frame {
	micros := make([]interface{}, len(pulses))
	for i, p := range pulses {
		micros[i] = uint64(p / time.Microsecond)
	}
	payload := map[int]interface{}{
		keyPulses: micros,
	}
	return NewFrameWithPayload(MsgCaptureData, payload)
}

// CaptureFromFrame parses a CAPTURE_DATA frame into the captured pulse
// train, microseconds on the wire to durations.
func CaptureFromFrame(f *Frame) ([]time.Duration, error) {
	if f.Type() != MsgCaptureData {
		return nil, fmt.Errorf("not a CAPTURE_DATA frame: type 0x%02X", f.Type())
	}
	micros, ok := GetMapUintSlice(f.PayloadMap(), keyPulses)
	if !ok {
		return nil, fmt.Errorf("CAPTURE_DATA missing pulse train")
	}
	pulses := make([]time.Duration, len(micros))
	for i, us := range micros {
		pulses[i] = time.Duration(us) * time.Microsecond
	}
	return pulses, nil
}

// NewPingRequest creates a PING_REQUEST frame (0x1F).
// The dongle responds with PING_RESPONSE containing its uptime.
func NewPingRequest() *Frame {
	return NewFrameWithPayload(MsgPingRequest, nil)
}

// UptimeFromFrame parses a PING_RESPONSE frame into the dongle's uptime.
func UptimeFromFrame(f *Frame) (time.Duration, error) {
	if f.Type() != MsgPingResponse {
		return 0, fmt.Errorf("not a PING_RESPONSE frame: type 0x%02X", f.Type())
	}
	ms, ok := GetMapUint(f.PayloadMap(), keyUptimeMs)
	if !ok {
		return 0, fmt.Errorf("PING_RESPONSE missing uptime")
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// ErrorFromFrame parses an error frame into its code and detail text.
func ErrorFromFrame(f *Frame) (code uint64, detail string, err error) {
	switch f.Type() {
	case MsgErrorBadFrame, MsgErrorBusy:
	default:
		return 0, "", fmt.Errorf("not an error frame: type 0x%02X", f.Type())
	}
	code, _ = GetMapUint(f.PayloadMap(), keyErrorCode)
	detail, _ = GetMapString(f.PayloadMap(), keyErrorText)
	return code, detail, nil
}
