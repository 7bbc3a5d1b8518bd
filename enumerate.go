// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import "errors"

// SearchCallback is invoked once per ROM discovered by SearchWithCallback
// or SearchWithCommandCallback, and once more with rom == nil after the
// scan ends (whether it ran to completion, aborted on error, or the
// caller returned false), signaling that no further ROM is coming.
// Returning false stops the enumeration early, before the bus is
// searched for any further device; the final nil-ROM call still happens.
type SearchCallback func(rom *ROM, arg any) bool

// SearchDevices enumerates every device on the bus using the default
// SEARCH_ROM command and fills out with the ROMs found, up to len(out).
// It returns the number of ROMs found. Enumeration still runs to
// completion even if more devices are found than len(out); the extra
// ones are simply not recorded.
func (h *Handle) SearchDevices(out []ROM) (int, error) {
	return h.SearchDevicesWithCommand(CmdSearchROM, out)
}

// SearchDevicesWithCommand is SearchDevices with the ROM command to issue
// on each pass (e.g. CmdAlarmSearch to enumerate only alarmed devices).
func (h *Handle) SearchDevicesWithCommand(cmd byte, out []ROM) (int, error) {
	n := 0
	_, err := h.SearchWithCommandCallback(cmd, func(rom *ROM, _ any) bool {
		if rom == nil {
			return true
		}
		if n < len(out) {
			out[n] = *rom
		}
		n++
		return true
	}, nil)
	return n, err
}

// SearchWithCallback enumerates every device on the bus using the default
// SEARCH_ROM command, invoking cb once per ROM found. It returns the
// number of devices found.
func (h *Handle) SearchWithCallback(cb SearchCallback, arg any) (int, error) {
	return h.SearchWithCommandCallback(CmdSearchROM, cb, arg)
}

// SearchWithCommandCallback drives repeated search passes to completion,
// acquiring the Handle's lock once for the whole enumeration rather than
// once per pass, and invokes cb for every ROM discovered along the way,
// followed by one final cb(nil, arg) once the scan ends. It stops
// scanning when the bus reports enumeration complete, when cb returns
// false, or on the first transport error — but the terminal nil-ROM call
// to cb always happens.
//
// Each call resets the search state machine before its first pass, so
// calling again after a mid-enumeration transport error restarts the
// enumeration from the first device.
func (h *Handle) SearchWithCommandCallback(cmd byte, cb SearchCallback, arg any) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.SearchResetRaw()

	n := 0
	var retErr error
	for {
		rom, err := h.SearchWithCommandRaw(cmd)
		if err != nil {
			if errors.Is(err, ErrNoDevice) {
				if n > 0 {
					err = nil
				}
			}
			retErr = err
			break
		}
		n++
		if !cb(&rom, arg) {
			break
		}
		if h.lastDiscrepancy == lastDevice {
			break
		}
	}
	cb(nil, arg)
	return n, retErr
}
