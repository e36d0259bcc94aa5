// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique
//
// Frostbeam - Technibel A/C infrared remote toolkit
//
// A CLI tool for composing, sending and decoding Technibel air conditioner
// remote frames through a frostbeam IR transceiver dongle.

package main

import (
	"os"

	"github.com/Calorique/frostbeam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
