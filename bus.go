// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/onewire"
)

// Tx performs a bus transaction: reset, write len(w) bytes, then read
// len(r) bytes. It implements periph.io/x/conn/v3/onewire.Bus.
//
// This transport has no strong pull-up transistor to switch, so power is
// accepted for interface compatibility but StrongPullup is a no-op: a
// parasitic-powered device relying on it will not be fed extra current
// during the operation.
func (h *Handle) Tx(w, r []byte, power onewire.Pullup) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ResetRaw(); err != nil {
		return err
	}
	for _, b := range w {
		if _, err := h.WriteByteRaw(b); err != nil {
			return err
		}
	}
	for i := range r {
		b, err := h.ReadByteRaw()
		if err != nil {
			return err
		}
		r[i] = b
	}
	return nil
}

// SearchTriplet performs a single bit search triplet: it reads one bit and
// its complement, decides which branch to pick using direction when the
// two disagree, writes that choice back, and reports what it saw. It
// implements the triplet primitive periph.io/x/conn/v3/onewire.Search
// looks for on a Bus, the same way ds248x.Dev.SearchTriplet exposes its
// chip's native 1WT command; the caller (onewire.Search) owns the
// last-discrepancy bookkeeping and supplies direction for this package's
// own fast SearchWithCommandRaw to stay independent of it.
func (h *Handle) SearchTriplet(direction byte) (onewire.TripletResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, err := h.ReadBitRaw()
	if err != nil {
		return onewire.TripletResult{}, err
	}
	bCpl, err := h.ReadBitRaw()
	if err != nil {
		return onewire.TripletResult{}, err
	}

	chosen := direction
	if b != bCpl {
		chosen = b
	}
	if _, err := h.sendBit(chosen); err != nil {
		return onewire.TripletResult{}, err
	}

	return onewire.TripletResult{
		GotZero: b == 0,
		GotOne:  bCpl == 0,
		Taken:   chosen,
	}, nil
}

// Search performs a full bus enumeration and returns the address of every
// device found (or, if alarmOnly is true, every device with its alarm
// flag set). It implements periph.io/x/conn/v3/onewire.Bus by delegating
// to the generic onewire.Search helper, which drives the reset and ROM
// command through Tx and walks the tree one bit at a time through
// SearchTriplet above — the same path ds248x.Dev.Search takes rather than
// reimplementing the discrepancy bookkeeping a second time.
func (h *Handle) Search(alarmOnly bool) ([]onewire.Address, error) {
	return onewire.Search(h, alarmOnly)
}

var (
	_ onewire.Bus   = (*Handle)(nil)
	_ conn.Resource = (*Handle)(nil)
)
