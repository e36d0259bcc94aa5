// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Calorique

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Calorique/frostbeam/pkg/irlink"
	"github.com/Calorique/frostbeam/pkg/technibel"
	"github.com/spf13/cobra"
)

var monitorShowRaw bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously capture and decode frames from the dongle",
	Long: `Arm the dongle for continuous capture and print every frame it reports.

Pulse trains that decode as Technibel frames are printed with their full
state; anything else is reported as unrecognized. Stop with Ctrl-C.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&monitorShowRaw, "raw", false, "Also print the raw timings of every capture")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Frostbeam - IR Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Println("Press Ctrl-C to stop")
	fmt.Println()

	// Continuous capture (no timeout)
	if _, err := conn.Write(irlink.MustEncodeFrame(irlink.NewCaptureStart(0))); err != nil {
		return fmt.Errorf("failed to arm capture: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	frameCh := make(chan *irlink.Frame)
	errCh := make(chan error, 1)
	go readFrames(conn, frameCh, errCh)

	decoder := technibel.NewDecoder()
	captures, decoded := 0, 0

	for {
		select {
		case <-sigCh:
			fmt.Printf("\n%d captures, %d decoded\n", captures, decoded)
			// Best effort; the dongle also disarms when the link drops
			conn.Write(irlink.MustEncodeFrame(irlink.NewCaptureStop()))
			return nil

		case err := <-errCh:
			return fmt.Errorf("connection lost: %v", err)

		case frame := <-frameCh:
			if frame.Type() != irlink.MsgCaptureData {
				continue
			}
			captures++
			pulses, err := irlink.CaptureFromFrame(frame)
			if err != nil {
				fmt.Printf("%s - malformed capture: %v\n", irlink.FormatFrame(frame), err)
				continue
			}
			timestamp := frame.Timestamp().Format("15:04:05.000")
			if monitorShowRaw {
				fmt.Println(formatPulses(pulses))
			}
			result, err := decoder.Decode(pulses)
			if err != nil {
				fmt.Printf("[%s] %d timings: %v\n", timestamp, len(pulses), err)
				continue
			}
			decoded++
			ac := technibel.New()
			ac.SetRaw(result.Value)
			checksum := "OK"
			if !technibel.ValidChecksum(result.Value) {
				checksum = "BAD CHECKSUM"
			}
			fmt.Printf("[%s] %s 0x%014X [%s]\n", timestamp, result.Protocol, result.Value, checksum)
			fmt.Printf("  %s\n", ac)
		}
	}
}

// readFrames pumps decoded link frames from the connection into a channel.
func readFrames(conn Connection, frameCh chan<- *irlink.Frame, errCh chan<- error) {
	decoder := irlink.NewDecoder()
	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		for _, b := range buf[:n] {
			frame, err := decoder.DecodeByte(b)
			if err != nil {
				continue // decoder re-syncs on the next START byte
			}
			if frame != nil {
				frameCh <- frame
			}
		}
	}
}
