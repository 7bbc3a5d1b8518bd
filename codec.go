// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

// sendBit writes a single 1-Wire bit and returns what the bus echoed back.
// Every 1-Wire bit is exactly one UART byte: to send logical 1, transmit
// 0xFF; to send logical 0, transmit 0x00. The decoded return bit is 1 iff
// the byte the bus echoed back is 0xFF — any lower value means a slave
// pulled the line low during the slot.
func (h *Handle) sendBit(bit byte) (byte, error) {
	tx := byte(0x00)
	if bit != 0 {
		tx = 0xFF
	}
	buf := []byte{tx}
	if err := h.llDrv.TxRx(buf, buf); err != nil {
		return 0, ErrTxRx
	}
	if buf[0] == 0xFF {
		return 1, nil
	}
	return 0, nil
}

// WriteBitRaw writes a single 1-Wire bit and returns what the bus echoed
// back, without acquiring the Handle's lock.
func (h *Handle) WriteBitRaw(bit byte) (byte, error) {
	return h.sendBit(bit)
}

// ReadBitRaw reads a single bit from the bus, without acquiring the
// Handle's lock. Reading is writing 1 and observing whether a slave pulled
// the line low during the slot.
func (h *Handle) ReadBitRaw() (byte, error) {
	return h.sendBit(1)
}

// WriteByteRaw writes byte b onto the bus and reconstructs what the bus
// echoed back, without acquiring the Handle's lock.
//
// Writing a 1-Wire byte means exchanging eight UART bytes, one per bit,
// LSB first: element i of the transmit buffer is 0xFF if bit i of b is set,
// else 0x00. All eight are exchanged in a single transport call so the
// bus sees one uninterrupted byte-time-slot sequence.
func (h *Handle) WriteByteRaw(b byte) (byte, error) {
	var tr [8]byte
	for i := range tr {
		if b&(1<<uint(i)) != 0 {
			tr[i] = 0xFF
		}
	}
	if err := h.llDrv.TxRx(tr[:], tr[:]); err != nil {
		return 0, ErrTxRx
	}
	var r byte
	for i, v := range tr {
		if v == 0xFF {
			r |= 1 << uint(i)
		}
	}
	return r, nil
}

// ReadByteRaw reads one byte from the bus, without acquiring the Handle's
// lock. Reading a 1-Wire byte is exactly writing 0xFF: all eight transmit
// bytes are 0xFF, and the pattern the bus echoes back encodes what the
// slaves drove.
func (h *Handle) ReadByteRaw() (byte, error) {
	return h.WriteByteRaw(0xFF)
}
