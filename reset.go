// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

// ResetRaw issues a 1-Wire reset pulse and checks for a presence pulse,
// without acquiring the Handle's lock.
//
// The reset pulse is unique among bus operations in needing a slower baud
// to match 1-Wire's ~480us reset pulse width: the UART switches to 9600
// baud for one byte, then back to 115200 for every byte that follows. The
// baud is always restored before returning, even if the exchange itself
// failed, so a failed reset never leaves the transport at the wrong speed
// for the next operation.
func (h *Handle) ResetRaw() error {
	if err := h.llDrv.SetBaudRate(baudReset); err != nil {
		return ErrBaud
	}
	b := []byte{resetByte}
	txErr := h.llDrv.TxRx(b, b)
	baudErr := h.llDrv.SetBaudRate(baudData)

	if txErr != nil {
		return ErrTxRx
	}
	if baudErr != nil {
		return ErrBaud
	}

	switch b[0] {
	case 0x00:
		// The bus reads as shorted, or the driver faulted.
		return ErrPresence
	case resetByte:
		// The reset byte bounced back unchanged: nothing pulled the line
		// low, so no slave is present.
		return ErrPresence
	default:
		return nil
	}
}
