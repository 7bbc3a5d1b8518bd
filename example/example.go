// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package example demonstrates enumerating a 1-Wire bus tunneled over a
// UART.
package example

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/onewireuart"
	"github.com/GermanBionicSystems/onewireuart/serialport"
	"periph.io/x/host/v3"
)

// Example opens the UART at devicePath, enumerates every device on the
// bus it drives, and prints their ROM codes.
func Example(devicePath string) {
	// Make sure periph is initialized, in case a periph device driver is
	// later built on top of the Handle.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	transport := serialport.New(devicePath)
	h, err := onewireuart.New(transport)
	if err != nil {
		log.Fatal(err)
	}
	defer h.Halt()

	fmt.Println(h.String())

	roms := make([]onewireuart.ROM, 8)
	n, err := h.SearchDevices(roms)
	if err != nil && n == 0 {
		log.Fatal(err)
	}
	if n > len(roms) {
		fmt.Printf("found %d devices, only %d fit in the buffer\n", n, len(roms))
		n = len(roms)
	}
	for i := 0; i < n; i++ {
		rom := roms[i]
		valid := "valid"
		if !rom.Valid() {
			valid = "INVALID CRC"
		}
		fmt.Printf("%s (%s)\n", rom, valid)
	}
}
