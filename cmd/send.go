// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Calorique

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Calorique/frostbeam/pkg/irlink"
	"github.com/Calorique/frostbeam/pkg/technibel"
	"github.com/spf13/cobra"
)

var (
	sendPowerOn    bool
	sendMode       string
	sendTemp       uint8
	sendFahrenheit bool
	sendFan        string
	sendSwing      bool
	sendSleep      bool
	sendTimerMins  uint16
	sendRepeat     int
	sendTimeout    int
	sendDryRun     bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Compose an A/C state and transmit it through the dongle",
	Long: `Compose a Technibel A/C state from flags and transmit the encoded frame.

Out-of-range settings are clamped to the nearest legal value, the same way the
handset behaves: temperatures saturate at the unit's bounds, dry mode forces
the fan to low, and timers round down to whole hours.

With --dry-run the frame is encoded and printed without opening a connection.`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendPowerOn, "on", false, "Power on (omit to send a power-off frame)")
	sendCmd.Flags().StringVar(&sendMode, "mode", "cool", "Operating mode: cool, heat, dry, fan")
	sendCmd.Flags().Uint8Var(&sendTemp, "temp", 20, "Target temperature in degrees")
	sendCmd.Flags().BoolVar(&sendFahrenheit, "fahrenheit", false, "Interpret --temp as degrees Fahrenheit")
	sendCmd.Flags().StringVar(&sendFan, "fan", "low", "Fan speed: low, medium, high")
	sendCmd.Flags().BoolVar(&sendSwing, "swing", false, "Enable vertical swing")
	sendCmd.Flags().BoolVar(&sendSleep, "sleep", false, "Enable sleep mode")
	sendCmd.Flags().Uint16Var(&sendTimerMins, "timer", 0, "Off timer in minutes (rounds down to whole hours, max 24h)")
	sendCmd.Flags().IntVar(&sendRepeat, "repeat", 0, "Extra re-transmissions of the frame")
	sendCmd.Flags().IntVar(&sendTimeout, "timeout", 5, "Seconds to wait for the dongle's acknowledgement")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "Encode and print the frame without transmitting")
}

// parseMode maps a mode flag value to its native code, empty string reports
// the accepted values.
func parseMode(s string) (uint8, error) {
	switch strings.ToLower(s) {
	case "cool":
		return technibel.ModeCool, nil
	case "heat":
		return technibel.ModeHeat, nil
	case "dry":
		return technibel.ModeDry, nil
	case "fan":
		return technibel.ModeFan, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (use cool, heat, dry or fan)", s)
	}
}

// parseFan maps a fan flag value to its native code.
func parseFan(s string) (uint8, error) {
	switch strings.ToLower(s) {
	case "low":
		return technibel.FanLow, nil
	case "medium", "med":
		return technibel.FanMedium, nil
	case "high":
		return technibel.FanHigh, nil
	default:
		return 0, fmt.Errorf("unknown fan speed %q (use low, medium or high)", s)
	}
}

// composeState builds the AC state from the send flags.
func composeState() (*technibel.AC, error) {
	mode, err := parseMode(sendMode)
	if err != nil {
		return nil, err
	}
	fan, err := parseFan(sendFan)
	if err != nil {
		return nil, err
	}

	ac := technibel.New()
	ac.SetPower(sendPowerOn)
	ac.SetTemp(sendTemp, sendFahrenheit)
	ac.SetMode(mode)
	ac.SetFan(fan)
	ac.SetSwing(sendSwing)
	ac.SetSleep(sendSleep)
	ac.SetTimer(sendTimerMins)
	return ac, nil
}

func runSend(cmd *cobra.Command, args []string) error {
	ac, err := composeState()
	if err != nil {
		return err
	}

	encoder := &technibel.Encoder{Repeat: sendRepeat}
	pulses := encoder.Encode(ac)

	fmt.Printf("State:  %s\n", ac)
	fmt.Printf("Frame:  0x%014X (%d bits, %d pulses)\n", ac.Raw(), technibel.Bits, len(pulses))

	if sendDryRun {
		fmt.Println(formatPulses(pulses))
		return nil
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()
	fmt.Printf("Connection: %s\n", connInfo)

	request := irlink.NewTransmitRequest(irlink.Transmission{
		Pulses:    pulses,
		CarrierHz: technibel.CarrierHz,
		DutyCycle: technibel.DutyCycle,
		Repeat:    0, // repeats are already unrolled into the train
	})
	if _, err := conn.Write(irlink.MustEncodeFrame(request)); err != nil {
		return fmt.Errorf("send failed: %v", err)
	}

	frame, err := awaitFrame(conn, irlink.MsgTransmitDone, time.Duration(sendTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("no acknowledgement: %v", err)
	}
	fmt.Printf("Transmitted (%s)\n", irlink.FormatFrame(frame))
	return nil
}

// formatPulses renders a pulse train as comma separated microsecond counts,
// wrapped for readability.
func formatPulses(pulses []time.Duration) string {
	var b strings.Builder
	b.WriteString("Pulses (us):")
	for i, p := range pulses {
		if i%16 == 0 {
			b.WriteString("\n  ")
		}
		fmt.Fprintf(&b, "%d", p/time.Microsecond)
		if i != len(pulses)-1 {
			b.WriteString(", ")
		}
	}
	return b.String()
}

// awaitFrame reads link frames from the connection until one of the wanted
// type arrives or the timeout elapses. Error frames from the dongle abort
// the wait immediately.
func awaitFrame(conn Connection, want uint8, timeout time.Duration) (*irlink.Frame, error) {
	type result struct {
		frame *irlink.Frame
		err   error
	}
	ch := make(chan result, 1)

	go func() {
		decoder := irlink.NewDecoder()
		buf := make([]byte, 256)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				ch <- result{nil, err}
				return
			}
			for _, b := range buf[:n] {
				frame, err := decoder.DecodeByte(b)
				if err != nil {
					// Garbage between frames; the decoder re-syncs on START
					continue
				}
				if frame == nil {
					continue
				}
				if frame.Type() == want {
					ch <- result{frame, nil}
					return
				}
				if code, detail, err := irlink.ErrorFromFrame(frame); err == nil {
					ch <- result{nil, fmt.Errorf("dongle error 0x%02X: %s", code, detail)}
					return
				}
				// Unrelated frame (stale capture data etc.) - keep waiting
			}
		}
	}()

	select {
	case r := <-ch:
		return r.frame, r.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("timeout after %s", timeout)
	}
}
