// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import "errors"

// txrxError reports that the transport's TxRx exchange failed.
type txrxError string

func (e txrxError) Error() string  { return string(e) }
func (e txrxError) BusError() bool { return true }

// baudError reports that the transport failed to switch baud rate.
type baudError string

func (e baudError) Error() string  { return string(e) }
func (e baudError) BusError() bool { return true }

// presenceError reports a reset that completed without a presence pulse,
// or a bus short.
type presenceError string

func (e presenceError) Error() string  { return string(e) }
func (e presenceError) BusError() bool { return true }

// noDeviceError reports that a search pass found no (more) devices.
type noDeviceError string

func (e noDeviceError) Error() string  { return string(e) }
func (e noDeviceError) BusError() bool { return true }

// Sentinel errors for the operations in this package. Compare against
// these with errors.Is; composite operations return the sentinel of the
// failing primitive unchanged.
var (
	// ErrTxRx is returned when the transport's TxRx exchange fails.
	ErrTxRx error = txrxError("onewireuart: transport tx/rx failed")
	// ErrBaud is returned when the transport fails to change baud rate.
	ErrBaud error = baudError("onewireuart: transport baud rate change failed")
	// ErrPresence is returned when a reset completes without a slave
	// presence pulse, or the bus reads as shorted.
	ErrPresence error = presenceError("onewireuart: no presence pulse detected")
	// ErrNoDevice is returned when a search pass finds no more devices.
	// When it is returned because the enumeration was already complete,
	// the search state has been reset to a fresh enumeration, so the
	// caller may simply search again. When no device answered partway
	// through a pass, the state keeps the discrepancy recorded so far.
	ErrNoDevice error = noDeviceError("onewireuart: no device")
	// ErrGeneric covers failures that don't fit a more specific sentinel,
	// such as a nil transport or a transport that fails to initialize.
	ErrGeneric = errors.New("onewireuart: operation failed")
)
