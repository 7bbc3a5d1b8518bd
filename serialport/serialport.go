// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package serialport implements onewireuart.LLTransport over a real UART
// using github.com/tarm/serial.
package serialport

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// Transport is an onewireuart.LLTransport backed by a physical UART
// device such as /dev/ttyUSB0.
//
// The underlying POSIX termios API this package's serial library wraps
// has no call to change a port's baud rate once opened; the only portable
// way to do it is to close the port and reopen it at the new rate. Every
// SetBaudRate call that changes the rate pays that cost, so a search
// enumeration that switches
// baud on every reset also reopens the port on every reset.
type Transport struct {
	name    string
	baud    int
	timeout time.Duration
	port    *serial.Port
}

// New returns a Transport for the named serial device (e.g.
// "/dev/ttyUSB0"). The port is not opened until Init is called.
func New(name string) *Transport {
	return &Transport{name: name, timeout: 3 * time.Second}
}

// Init opens the port at the 115200 baud used for ordinary bus traffic.
func (t *Transport) Init() error {
	return t.open(115200)
}

// Deinit closes the port.
func (t *Transport) Deinit() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

// SetBaudRate reopens the port at the requested baud, since the
// underlying driver cannot change baud on an already-open port.
func (t *Transport) SetBaudRate(baud int) error {
	if t.baud == baud && t.port != nil {
		return nil
	}
	return t.open(baud)
}

func (t *Transport) open(baud int) error {
	if t.port != nil {
		if err := t.port.Close(); err != nil {
			return err
		}
		t.port = nil
	}
	cfg := &serial.Config{
		Name:        t.name,
		Baud:        baud,
		ReadTimeout: t.timeout,
		Size:        serial.DefaultSize,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}
	p, err := serial.OpenPort(cfg)
	if err != nil {
		return fmt.Errorf("serialport: open %s at %d baud: %w", t.name, baud, err)
	}
	t.port = p
	t.baud = baud
	return nil
}

// TxRx writes tx and reads exactly len(tx) bytes back into rx. tx and rx
// may be the same slice; the write is flushed in full before any byte is
// read, matching the full-duplex byte-for-byte protocol the bus expects.
func (t *Transport) TxRx(tx, rx []byte) error {
	if t.port == nil {
		return fmt.Errorf("serialport: %s not open", t.name)
	}
	if _, err := t.port.Write(tx); err != nil {
		return fmt.Errorf("serialport: write: %w", err)
	}
	n := 0
	for n < len(rx) {
		read, err := t.port.Read(rx[n:])
		if err != nil {
			return fmt.Errorf("serialport: read: %w", err)
		}
		if read == 0 {
			return fmt.Errorf("serialport: read: no data before timeout")
		}
		n += read
	}
	return nil
}

// String implements fmt.Stringer.
func (t *Transport) String() string {
	return fmt.Sprintf("serialport.Transport{%s}", t.name)
}
