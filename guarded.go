// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

// noopLocker is the locker a Handle built with New (as opposed to
// NewLocked) carries: it plays the role the C original's OW_CFG_OS
// preprocessor switch played, compiling out mutex calls entirely, without
// resorting to a build tag or a nil check in every guarded method.
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// Every public operation below exists in two forms: a Raw variant that
// assumes the caller already holds the lock (or that none is configured),
// and a guarded variant that acquires it, calls the raw form, and releases
// it. The enumeration helpers in enumerate.go always use the guarded form
// and call raw primitives while holding the lock, so the user callback in
// SearchWithCommandCallback runs under the lock like every other
// multi-byte operation.

// Reset issues a 1-Wire reset pulse and checks for a presence pulse. See
// ResetRaw.
func (h *Handle) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ResetRaw()
}

// WriteByte writes b onto the bus and returns what the bus echoed back.
// See WriteByteRaw.
func (h *Handle) WriteByte(b byte) (byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.WriteByteRaw(b)
}

// ReadByte reads one byte from the bus. See ReadByteRaw.
func (h *Handle) ReadByte() (byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ReadByteRaw()
}

// WriteBit writes a single bit onto the bus and returns what it read back.
// See WriteBitRaw.
func (h *Handle) WriteBit(bit byte) (byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.WriteBitRaw(bit)
}

// ReadBit reads a single bit from the bus. See ReadBitRaw.
func (h *Handle) ReadBit() (byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ReadBitRaw()
}

// MatchROM addresses the single device with the given ROM; all other
// devices go silent until the next reset. See MatchROMRaw.
func (h *Handle) MatchROM(rom ROM) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.MatchROMRaw(rom)
}

// SkipROM addresses all devices on the bus simultaneously. See SkipROMRaw.
func (h *Handle) SkipROM() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.SkipROMRaw()
}

// SearchReset resets the search state machine so the next SearchROM or
// SearchWithCommand call starts a fresh enumeration. See SearchResetRaw.
func (h *Handle) SearchReset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.SearchResetRaw()
}

// SearchROM runs one pass of the SEARCH_ROM enumeration. See SearchROMRaw.
//
// This is the single-pass primitive spec'd in terms of the default
// SEARCH_ROM command; Handle.Search (bus.go) is the separate, higher-level,
// onewire.Bus-compatible enumeration built on SearchTriplet instead.
func (h *Handle) SearchROM() (ROM, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.SearchROMRaw()
}

// SearchWithCommand runs one pass of the enumeration using cmd instead of
// the default SEARCH_ROM. See SearchWithCommandRaw.
func (h *Handle) SearchWithCommand(cmd byte) (ROM, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.SearchWithCommandRaw(cmd)
}
