// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Calorique

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Calorique/frostbeam/pkg/irlink"
	"github.com/Calorique/frostbeam/pkg/technibel"
	"github.com/spf13/cobra"
)

var (
	decodeFile      string
	decodeTolerance int
	decodeNoStrict  bool
	decodeTimeout   int
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Capture one frame from the dongle (or a file) and decode it",
	Long: `Decode a captured pulse train as a Technibel A/C frame.

By default the dongle is armed for a single capture and the first pulse train
it reports is decoded. With --file, decoding runs offline on a text file of
raw timings: whitespace or comma separated mark/space durations in
microseconds, '#' starts a comment.

The checksum is verified after a successful decode but does not fail it; the
verdict is printed alongside the decoded state.`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "Decode raw timings from a file instead of the dongle")
	decodeCmd.Flags().IntVar(&decodeTolerance, "tolerance", technibel.DefaultTolerance, "Timing match tolerance in percent")
	decodeCmd.Flags().BoolVar(&decodeNoStrict, "no-strict", false, "Allow non-canonical bit counts")
	decodeCmd.Flags().IntVar(&decodeTimeout, "timeout", 30, "Seconds to wait for a capture")
}

func runDecode(cmd *cobra.Command, args []string) error {
	var pulses []time.Duration
	var err error

	if decodeFile != "" {
		pulses, err = readPulseFile(decodeFile)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d timings from %s\n", len(pulses), decodeFile)
	} else {
		pulses, err = captureOnce(time.Duration(decodeTimeout) * time.Second)
		if err != nil {
			return err
		}
		fmt.Printf("Captured %d timings\n", len(pulses))
	}

	decoder := technibel.NewDecoder()
	decoder.Tolerance = decodeTolerance
	decoder.Strict = !decodeNoStrict

	result, err := decoder.Decode(pulses)
	if err != nil {
		return fmt.Errorf("decode failed: %v", err)
	}

	printResult(result)
	return nil
}

// printResult renders a decode result, the decoded state and the checksum verdict.
func printResult(result *technibel.Result) {
	fmt.Printf("Protocol: %s\n", result.Protocol)
	fmt.Printf("Bits:     %d\n", result.Bits)
	fmt.Printf("Value:    0x%014X\n", result.Value)

	ac := technibel.New()
	ac.SetRaw(result.Value)
	fmt.Printf("State:    %s\n", ac)
	fmt.Printf("Common:   %s\n", ac.ToCommon())

	if technibel.ValidChecksum(result.Value) {
		fmt.Println("Checksum: OK")
	} else {
		fmt.Printf("Checksum: MISMATCH (expected 0x%02X)\n", technibel.CalcChecksum(result.Value))
	}
}

// captureOnce arms the dongle and waits for a single captured pulse train.
func captureOnce(timeout time.Duration) ([]time.Duration, error) {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Println("Waiting for a frame... point the remote at the dongle")

	start := irlink.NewCaptureStart(timeout)
	if _, err := conn.Write(irlink.MustEncodeFrame(start)); err != nil {
		return nil, fmt.Errorf("failed to arm capture: %v", err)
	}

	frame, err := awaitFrame(conn, irlink.MsgCaptureData, timeout)
	if err != nil {
		return nil, err
	}
	return irlink.CaptureFromFrame(frame)
}

// readPulseFile parses a text file of mark/space durations in microseconds.
func readPulseFile(path string) ([]time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	var pulses []time.Duration
	for lineNo, line := range strings.Split(string(data), "\n") {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ',' || r == '\r'
		}) {
			us, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad duration %q", path, lineNo+1, field)
			}
			pulses = append(pulses, time.Duration(us)*time.Microsecond)
		}
	}
	if len(pulses) == 0 {
		return nil, fmt.Errorf("%s: no timings found", path)
	}
	return pulses, nil
}
