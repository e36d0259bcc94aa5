// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package irlink

import (
	"testing"
	"time"
)

// throughWire encodes a frame and decodes it back through the state machine,
// so message round trips exercise the full wire path.
func throughWire(t *testing.T, f *Frame) *Frame {
	t.Helper()
	decoded, err := feedBytes(t, NewDecoder(), MustEncodeFrame(f))
	if err != nil {
		t.Fatalf("wire round trip: %v", err)
	}
	if decoded == nil {
		t.Fatal("wire round trip produced no frame")
	}
	return decoded
}

func TestTransmitRequest_RoundTrip(t *testing.T) {
	in := Transmission{
		Pulses: []time.Duration{
			8836 * time.Microsecond,
			4380 * time.Microsecond,
			523 * time.Microsecond,
			1696 * time.Microsecond,
			// Equals the START byte once CBOR-encoded, forcing stuffing
			126 * time.Microsecond,
		},
		CarrierHz: 38000,
		DutyCycle: 50,
		Repeat:    2,
	}

	out, err := TransmissionFromFrame(throughWire(t, NewTransmitRequest(in)))
	if err != nil {
		t.Fatalf("TransmissionFromFrame: %v", err)
	}
	if out.CarrierHz != in.CarrierHz {
		t.Errorf("CarrierHz = %d, want %d", out.CarrierHz, in.CarrierHz)
	}
	if out.DutyCycle != in.DutyCycle {
		t.Errorf("DutyCycle = %d, want %d", out.DutyCycle, in.DutyCycle)
	}
	if out.Repeat != in.Repeat {
		t.Errorf("Repeat = %d, want %d", out.Repeat, in.Repeat)
	}
	if len(out.Pulses) != len(in.Pulses) {
		t.Fatalf("pulse count = %d, want %d", len(out.Pulses), len(in.Pulses))
	}
	for i := range in.Pulses {
		if out.Pulses[i] != in.Pulses[i] {
			t.Errorf("pulse %d = %v, want %v", i, out.Pulses[i], in.Pulses[i])
		}
	}
}

func TestTransmissionFromFrame_WrongType(t *testing.T) {
	if _, err := TransmissionFromFrame(NewPingRequest()); err == nil {
		t.Error("expected error for non-transmit frame")
	}
}

func TestTransmissionFromFrame_BadDutyCycle(t *testing.T) {
	f := NewFrameWithPayload(MsgTransmitRequest, map[int]interface{}{
		keyCarrierHz: uint64(38000),
		keyDutyCycle: uint64(101),
		keyPulses:    []interface{}{uint64(500)},
	})
	if _, err := TransmissionFromFrame(throughWire(t, f)); err == nil {
		t.Error("expected error for duty cycle over 100")
	}
}

func TestTransmissionFromFrame_MissingPulses(t *testing.T) {
	f := NewFrameWithPayload(MsgTransmitRequest, map[int]interface{}{
		keyCarrierHz: uint64(38000),
		keyDutyCycle: uint64(50),
	})
	if _, err := TransmissionFromFrame(throughWire(t, f)); err == nil {
		t.Error("expected error for missing pulse train")
	}
}

func TestCaptureStart_Timeout(t *testing.T) {
	f := throughWire(t, NewCaptureStart(5*time.Second))
	if f.Type() != MsgCaptureStart {
		t.Fatalf("Type() = 0x%02X, want 0x%02X", f.Type(), MsgCaptureStart)
	}
	ms, ok := GetMapUint(f.PayloadMap(), keyTimeoutMs)
	if !ok || ms != 5000 {
		t.Errorf("timeout = %d ms (%t), want 5000", ms, ok)
	}
}

func TestCaptureStart_NoTimeout(t *testing.T) {
	// A zero timeout arms the capture indefinitely and sends no payload
	f := throughWire(t, NewCaptureStart(0))
	if f.PayloadMap() != nil {
		t.Errorf("payload = %v, want nil", f.PayloadMap())
	}
}

func TestCaptureData_RoundTrip(t *testing.T) {
	in := []time.Duration{
		9000 * time.Microsecond,
		4500 * time.Microsecond,
		600 * time.Microsecond,
	}
	out, err := CaptureFromFrame(throughWire(t, NewCaptureData(in)))
	if err != nil {
		t.Fatalf("CaptureFromFrame: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("pulse count = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("pulse %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestCaptureFromFrame_WrongType(t *testing.T) {
	if _, err := CaptureFromFrame(NewCaptureStop()); err == nil {
		t.Error("expected error for non-capture frame")
	}
}

func TestUptimeFromFrame(t *testing.T) {
	f := NewFrameWithPayload(MsgPingResponse, map[int]interface{}{
		keyUptimeMs: uint64(123456),
	})
	uptime, err := UptimeFromFrame(throughWire(t, f))
	if err != nil {
		t.Fatalf("UptimeFromFrame: %v", err)
	}
	if uptime != 123456*time.Millisecond {
		t.Errorf("uptime = %v, want %v", uptime, 123456*time.Millisecond)
	}
}

func TestUptimeFromFrame_WrongType(t *testing.T) {
	if _, err := UptimeFromFrame(NewPingRequest()); err == nil {
		t.Error("expected error for non-ping-response frame")
	}
}

func TestErrorFromFrame(t *testing.T) {
	f := NewFrameWithPayload(MsgErrorBusy, map[int]interface{}{
		keyErrorCode: uint64(2),
		keyErrorText: "transmit in progress",
	})
	code, detail, err := ErrorFromFrame(throughWire(t, f))
	if err != nil {
		t.Fatalf("ErrorFromFrame: %v", err)
	}
	if code != 2 {
		t.Errorf("code = %d, want 2", code)
	}
	if detail != "transmit in progress" {
		t.Errorf("detail = %q, want %q", detail, "transmit in progress")
	}
}

func TestErrorFromFrame_WrongType(t *testing.T) {
	if _, _, err := ErrorFromFrame(NewPingRequest()); err == nil {
		t.Error("expected error for non-error frame")
	}
}
