// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Calorique

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Calorique/frostbeam/pkg/irlink"
	"github.com/spf13/cobra"
)

var (
	pingTimeout int
	pingCount   int
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the transceiver dongle is alive",
	Long: `Send PING_REQUEST frames to the dongle and wait for PING_RESPONSE.

This is useful for verifying:
  - The serial or WebSocket connection is established
  - The dongle firmware is processing frames
  - Bidirectional frame flow works

Exit codes:
  0 - All pings successful
  1 - One or more pings failed/timed out
  2 - Connection error`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().IntVar(&pingTimeout, "timeout", 5, "Timeout in seconds for each ping")
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of pings to send")
}

func runPing(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Frostbeam - Dongle Ping\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds per ping\n", pingTimeout)
	fmt.Printf("Count: %d pings\n\n", pingCount)

	successCount := 0
	failCount := 0

	for i := 1; i <= pingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, pingCount)

		wireBytes := irlink.MustEncodeFrame(irlink.NewPingRequest())

		startTime := time.Now()
		if _, err := conn.Write(wireBytes); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		frame, err := awaitFrame(conn, irlink.MsgPingResponse, time.Duration(pingTimeout)*time.Second)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			failCount++
			continue
		}

		rtt := time.Since(startTime)
		uptime, err := irlink.UptimeFromFrame(frame)
		if err != nil {
			fmt.Printf("OK rtt=%s (uptime unavailable: %v)\n", rtt.Round(time.Millisecond), err)
		} else {
			fmt.Printf("OK rtt=%s uptime=%s\n", rtt.Round(time.Millisecond), uptime.Round(time.Second))
		}
		successCount++
	}

	fmt.Printf("\n%d/%d pings successful\n", successCount, pingCount)
	if failCount > 0 {
		os.Exit(1)
	}
	return nil
}
