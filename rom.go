// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import (
	"encoding/binary"
	"fmt"

	"github.com/GermanBionicSystems/onewireuart/common"
	"periph.io/x/conn/v3/onewire"
)

// ROM is a 1-Wire device's 64-bit lasered ROM code: one family byte, a
// 48-bit serial number, and a CRC8 byte, in the order the device shifts
// them onto the bus, LSB first.
type ROM [8]byte

// Family returns the ROM's 1-byte family code, identifying the device
// type (e.g. 0x28 for a DS18B20).
func (r ROM) Family() byte {
	return r[0]
}

// CRC returns the ROM's trailing CRC8 byte as shifted onto the bus.
func (r ROM) CRC() byte {
	return r[7]
}

// Valid reports whether the ROM's CRC8 byte matches the Dallas/Maxim CRC8
// of the preceding 7 bytes.
func (r ROM) Valid() bool {
	return common.DallasCRC8(r[:7]) == r[7]
}

// Address returns the ROM as a periph.io/x/conn/v3/onewire.Address, which
// packs the same 8 bytes little-endian into a uint64.
func (r ROM) Address() onewire.Address {
	return onewire.Address(binary.LittleEndian.Uint64(r[:]))
}

// String renders the ROM the way 1-Wire device datasheets print it:
// family byte, serial, CRC, most significant byte first.
func (r ROM) String() string {
	return fmt.Sprintf("%02X:%02X%02X%02X%02X%02X%02X:%02X",
		r[0], r[6], r[5], r[4], r[3], r[2], r[1], r[7])
}

// romFromAddress packs an onewire.Address back into its wire byte order.
func romFromAddress(a onewire.Address) ROM {
	var r ROM
	binary.LittleEndian.PutUint64(r[:], uint64(a))
	return r
}

// MatchROMRaw addresses the single device with the given ROM so that only
// it responds to the commands that follow, without acquiring the Handle's
// lock. All other devices on the bus go silent until the next reset.
func (h *Handle) MatchROMRaw(rom ROM) error {
	if err := h.ResetRaw(); err != nil {
		return err
	}
	if _, err := h.WriteByteRaw(CmdMatchROM); err != nil {
		return err
	}
	for _, b := range rom {
		if _, err := h.WriteByteRaw(b); err != nil {
			return err
		}
	}
	return nil
}

// SkipROMRaw addresses every device on the bus at once, without acquiring
// the Handle's lock. It is only useful when a single device is present, or
// when every device is meant to act on the following command identically
// (e.g. a broadcast CONVERT_T).
func (h *Handle) SkipROMRaw() error {
	if err := h.ResetRaw(); err != nil {
		return err
	}
	_, err := h.WriteByteRaw(CmdSkipROM)
	return err
}
