// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package onewireuart implements a 1-Wire bus master by tunneling the
// 1-Wire line-level protocol over a full-duplex UART.
//
// A UART's byte framing already produces the timed low/high transitions
// 1-Wire needs: each 1-Wire bit becomes one UART byte at 115200 baud, and
// the reset pulse becomes one UART byte at 9600 baud. The master transmits
// a fixed byte pattern and reads back whatever the open-drain bus echoes;
// a slave pulling the line low during the master's time slot is what a
// receiving microcontroller could never reliably bit-bang on its own.
//
// The UART itself is abstracted behind LLTransport, implemented outside
// this package (see the serialport subpackage for one concrete backend).
// Handle implements periph.io/x/conn/v3/onewire.Bus, so any existing
// periph 1-Wire device driver can be layered on top without modification.
package onewireuart
