// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import (
	"fmt"
)

// simBus is a fake LLTransport simulating a shared 1-Wire bus with a fixed
// set of devices, playing the role of a scripted transport that is too
// combinatorial to write out by hand: a search pass is 192 single-byte
// transactions whose content depends on every device's address, so this
// models the wired-AND electrical behavior directly instead of
// prerecording one trace per scenario.
type simBus struct {
	roms [][8]byte

	baud int

	// state carried between calls within one reset..search-pass cycle
	phase       simPhase
	active      [][8]byte
	bitPos      int
	subslot     int
	txrxFailAt  int // TxRx call number (1-based) at which to fail, 0 = never
	txrxFailErr error
	calls       int
}

type simPhase int

const (
	simPhaseIdle simPhase = iota
	simPhaseAfterReset
	simPhaseAwaitCommand
	simPhaseSearch
)

func newSimBus(roms ...[8]byte) *simBus {
	return &simBus{roms: roms, phase: simPhaseIdle}
}

func (s *simBus) Init() error   { return nil }
func (s *simBus) Deinit() error { return nil }

func (s *simBus) SetBaudRate(baud int) error {
	s.baud = baud
	if baud == baudData && s.phase == simPhaseAfterReset {
		s.phase = simPhaseAwaitCommand
	}
	return nil
}

func romBit(rom [8]byte, pos int) byte {
	return (rom[pos/8] >> uint(pos%8)) & 1
}

func (s *simBus) TxRx(tx, rx []byte) error {
	s.calls++
	if s.txrxFailAt != 0 && s.calls == s.txrxFailAt {
		return s.txrxFailErr
	}

	switch {
	case s.baud == baudReset && len(tx) == 1:
		if len(s.roms) == 0 {
			rx[0] = resetByte
		} else {
			rx[0] = 0xE0
		}
		s.phase = simPhaseAfterReset
		return nil

	case s.phase == simPhaseAwaitCommand && len(tx) == 8:
		var cmd byte
		for i, v := range tx {
			if v == 0xFF {
				cmd |= 1 << uint(i)
			}
			rx[i] = v
		}
		if cmd == CmdSearchROM || cmd == CmdAlarmSearch {
			s.phase = simPhaseSearch
			s.active = append([][8]byte(nil), s.roms...)
			s.bitPos = 0
			s.subslot = 0
		} else {
			s.phase = simPhaseIdle
		}
		return nil

	case s.phase == simPhaseSearch && len(tx) == 1:
		return s.searchSlot(tx, rx)

	case s.phase == simPhaseIdle:
		// Address bytes following MatchROM/SkipROM, or ordinary bus
		// traffic once a device is selected: echoed back verbatim,
		// since this fake models ROM search discrimination, not device
		// memory functions.
		copy(rx, tx)
		return nil
	}
	return fmt.Errorf("simBus: unexpected TxRx(tx=%v) in phase %v at baud %d", tx, s.phase, s.baud)
}

func (s *simBus) searchSlot(tx, rx []byte) error {
	switch s.subslot {
	case 0:
		allOne := true
		for _, r := range s.active {
			if romBit(r, s.bitPos) != 1 {
				allOne = false
				break
			}
		}
		if allOne {
			rx[0] = 0xFF
		} else {
			rx[0] = 0x00
		}
		s.subslot = 1
	case 1:
		allZero := true
		for _, r := range s.active {
			if romBit(r, s.bitPos) != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			rx[0] = 0xFF
		} else {
			rx[0] = 0x00
		}
		s.subslot = 2
	case 2:
		chosen := byte(0)
		if tx[0] == 0xFF {
			chosen = 1
		}
		var kept [][8]byte
		for _, r := range s.active {
			if romBit(r, s.bitPos) == chosen {
				kept = append(kept, r)
			}
		}
		s.active = kept
		rx[0] = tx[0]
		s.bitPos++
		s.subslot = 0
		if s.bitPos == 64 {
			s.phase = simPhaseIdle
		}
	}
	return nil
}

func rom(b0, b1, b2, b3, b4, b5, b6, b7 byte) [8]byte {
	return [8]byte{b0, b1, b2, b3, b4, b5, b6, b7}
}
