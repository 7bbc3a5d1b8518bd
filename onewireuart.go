// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import (
	"fmt"
	"sync"
)

// LLTransport is the low-level UART driver this package tunnels 1-Wire bit
// timing over. Implementations live outside this package; they own
// whatever device handle or state they need themselves, since Go carries
// that state in the receiver rather than in a void* user argument.
//
// TxRx must be full-duplex: it drives len(tx) bytes out the UART's TX line
// while simultaneously sampling the same number of bytes from RX, with TX
// physically tied to RX at the open-drain transistor on the 1-Wire pin. tx
// and rx may be the same slice. Calls may block; this package makes no
// assumption about whether the implementation polls or sleeps, only that
// one call's bytes are fully flushed to the wire before the next call
// begins — 1-Wire bit timing depends on that synchrony.
type LLTransport interface {
	// Init prepares the transport for use. It is called once by New or
	// NewLocked before any other method.
	Init() error
	// Deinit releases the transport. It is called once by Handle.Halt;
	// no other method may be called afterward.
	Deinit() error
	// SetBaudRate switches the UART to the given baud rate. This package
	// only ever requests 9600 (for the reset pulse) or 115200 (for every
	// other byte exchanged).
	SetBaudRate(baud int) error
	// TxRx exchanges len(tx) bytes full-duplex. rx[i] holds whatever the
	// bus echoed while tx[i] was being transmitted.
	TxRx(tx, rx []byte) error
}

// 1-Wire ROM commands, written as the first byte after a reset. Commands
// other than CmdSearchROM/CmdAlarmSearch are not interpreted by this
// package; they are exposed as constants and accepted as parameters to
// SearchWithCommand and friends.
const (
	CmdSearchROM   = 0xF0 // begin binary-tree enumeration
	CmdReadROM     = 0x33 // read the ROM of the single device on the bus
	CmdMatchROM    = 0x55 // address one device by ROM
	CmdSkipROM     = 0xCC // address all devices
	CmdAlarmSearch = 0xEC // enumerate only devices with an alarm flag set
)

const resetByte = 0xF0

const (
	baudReset = 9600
	baudData  = 115200
)

// Sentinel values for Handle.lastDiscrepancy: firstDevice means "no search
// yet, start fresh", lastDevice means "enumeration complete". Any other
// value 1..64 names the bit position the next search pass must flip.
const (
	firstDevice byte = 0xFF
	lastDevice  byte = 0x00
)

// locker is satisfied by both *sync.Mutex and noopLocker, letting Handle
// carry either a real lock or a zero-overhead no-op without branching on
// a nil check in every guarded method. See guarded.go.
type locker interface {
	Lock()
	Unlock()
}

// Handle is a handle to one physical 1-Wire bus. It is created by New or
// NewLocked and must be released with Halt when no longer needed.
//
// A Handle is not safe for concurrent use unless constructed with
// NewLocked. Either way, Handle implements periph.io/x/conn/v3/onewire.Bus,
// so it can be used directly by any 1-Wire device driver written against
// that interface.
type Handle struct {
	llDrv LLTransport
	mu    locker

	// lastDiscrepancy and rom are the search state machine's memory
	// between calls: the bit position the next pass must flip, and the
	// previously discovered ROM, whose bits the tie-break logic in
	// search.go reuses. rom is meaningful only immediately after a
	// successful search; the search returns a copy of it, which later
	// bus traffic does not change.
	lastDiscrepancy byte
	rom             ROM
}

// New returns a Handle over llDrv with no internal locking; callers are
// responsible for serializing access themselves if needed.
func New(llDrv LLTransport) (*Handle, error) {
	return newHandle(llDrv, noopLocker{})
}

// NewLocked returns a Handle over llDrv whose guarded methods
// (Reset, WriteByte, SearchROM, ...) serialize access with an internal mutex
// held for the duration of the whole operation, including a multi-byte
// search pass. Use the Raw-suffixed methods to batch several primitives
// under one lock acquisition without lock thrash.
func NewLocked(llDrv LLTransport) (*Handle, error) {
	return newHandle(llDrv, &sync.Mutex{})
}

func newHandle(llDrv LLTransport, l locker) (*Handle, error) {
	if llDrv == nil {
		return nil, fmt.Errorf("onewireuart: %w: nil transport", ErrGeneric)
	}
	if err := llDrv.Init(); err != nil {
		return nil, fmt.Errorf("onewireuart: init: %w: %v", ErrGeneric, err)
	}
	return &Handle{llDrv: llDrv, mu: l, lastDiscrepancy: firstDevice}, nil
}

// Halt releases the transport. The Handle is invalid afterward.
func (h *Handle) Halt() error {
	return h.llDrv.Deinit()
}

// String implements fmt.Stringer.
func (h *Handle) String() string {
	return fmt.Sprintf("onewireuart.Handle{%v}", h.llDrv)
}
