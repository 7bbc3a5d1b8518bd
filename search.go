// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

// SearchResetRaw resets the search state machine so the next search call
// starts a fresh enumeration, without acquiring the Handle's lock.
func (h *Handle) SearchResetRaw() error {
	h.lastDiscrepancy = firstDevice
	h.rom = ROM{}
	return nil
}

// SearchROMRaw runs one pass of the enumeration using the default
// SEARCH_ROM command, without acquiring the Handle's lock.
func (h *Handle) SearchROMRaw() (ROM, error) {
	return h.SearchWithCommandRaw(CmdSearchROM)
}

// SearchWithCommandRaw runs one pass of the 1-Wire ROM search, without
// acquiring the Handle's lock. To enumerate every device on the bus, call
// it repeatedly until it returns ErrNoDevice; to restart enumeration from
// scratch, call SearchResetRaw first.
//
// This is the Maxim AN187 binary-tree walk collapsed to a single
// discrepancy byte: each call walks 64 bit-slot pairs, discovering one ROM
// and recording the highest bit position at which responding devices
// disagreed and the 0 branch was taken, so the next call knows which
// branch of the tree to explore.
func (h *Handle) SearchWithCommandRaw(cmd byte) (ROM, error) {
	if h.lastDiscrepancy == lastDevice {
		h.SearchResetRaw()
		return ROM{}, ErrNoDevice
	}

	if err := h.ResetRaw(); err != nil {
		return ROM{}, err
	}
	if _, err := h.WriteByteRaw(cmd); err != nil {
		return ROM{}, err
	}

	nextDiscrepancy := lastDevice
	id := h.rom[:]

	// firstDevice means no previous pass: every collision is unexplored.
	lastDiscrepancy := int(h.lastDiscrepancy)
	if h.lastDiscrepancy == firstDevice {
		lastDiscrepancy = 0
	}

	for idBitNumber := 1; idBitNumber <= 64; idBitNumber++ {
		byteIdx := (idBitNumber - 1) / 8

		b, err := h.ReadBitRaw()
		if err != nil {
			return ROM{}, err
		}
		bCpl, err := h.ReadBitRaw()
		if err != nil {
			return ROM{}, err
		}

		var chosen byte
		switch {
		case b == 1 && bCpl == 1:
			// No slave responded to either slot: either nothing is on
			// the bus, or every device was put to sleep by a previous
			// search branch.
			h.lastDiscrepancy = nextDiscrepancy
			return ROM{}, ErrNoDevice
		case b == 0 && bCpl == 0:
			// Collision: some responders have 0 here, others have 1.
			switch {
			case idBitNumber < lastDiscrepancy:
				// Reuse whichever branch the previous pass took here.
				// id[byteIdx] still holds the previous pass's bit at
				// this position, since this byte hasn't been
				// overwritten yet this pass. A reused 0 still has its
				// 1 branch left to explore.
				chosen = id[byteIdx] & 0x01
				if chosen == 0 {
					nextDiscrepancy = byte(idBitNumber)
				}
			case idBitNumber == lastDiscrepancy:
				// This is the branch we promised to flip to on this
				// pass.
				chosen = 1
			default:
				// An unexplored branch: take 0 now, remember to flip
				// it to 1 on some future pass.
				chosen = 0
				nextDiscrepancy = byte(idBitNumber)
			}
		default:
			// b != bCpl: every responder agrees, and the bit they
			// agree on is simply b.
			chosen = b
		}

		if _, err := h.sendBit(chosen); err != nil {
			return ROM{}, err
		}

		id[byteIdx] = (id[byteIdx] >> 1) | (chosen << 7)
	}

	h.lastDiscrepancy = nextDiscrepancy
	var out ROM
	copy(out[:], h.rom[:])
	return out, nil
}
