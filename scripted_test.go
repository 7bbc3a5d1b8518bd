// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewireuart

import (
	"bytes"
	"errors"
	"testing"
)

// step is one expected call in a scriptedTransport's script, in the style
// of periph.io/x/conn/v3/i2c/i2ctest.Playback: a fake replays a
// prerecorded trace instead of talking to real hardware, and fails the
// test the moment the code under test deviates from it.
type step struct {
	baud int    // non-zero: expect SetBaudRate(baud)
	tx   []byte // otherwise: expect TxRx with this tx (nil skips the check)
	rx   []byte // bytes to hand back through rx
	err  error  // error to return from this step, if any
}

// scriptedTransport is a fake LLTransport that replays a fixed script of
// expected calls, failing the test on any mismatch or overrun.
type scriptedTransport struct {
	t     *testing.T
	steps []step
	pos   int
}

func (s *scriptedTransport) Init() error   { return nil }
func (s *scriptedTransport) Deinit() error { return nil }

func (s *scriptedTransport) next() (step, bool) {
	s.t.Helper()
	if s.pos >= len(s.steps) {
		s.t.Fatalf("scriptedTransport: call %d exceeds script of length %d", s.pos, len(s.steps))
		return step{}, false
	}
	st := s.steps[s.pos]
	s.pos++
	return st, true
}

func (s *scriptedTransport) SetBaudRate(baud int) error {
	s.t.Helper()
	st, ok := s.next()
	if !ok {
		return errors.New("scriptedTransport: exhausted")
	}
	if st.baud == 0 {
		s.t.Fatalf("scriptedTransport: step %d expected TxRx, got SetBaudRate(%d)", s.pos-1, baud)
	}
	if st.baud != baud {
		s.t.Fatalf("scriptedTransport: step %d expected SetBaudRate(%d), got SetBaudRate(%d)", s.pos-1, st.baud, baud)
	}
	return st.err
}

func (s *scriptedTransport) TxRx(tx, rx []byte) error {
	s.t.Helper()
	st, ok := s.next()
	if !ok {
		return errors.New("scriptedTransport: exhausted")
	}
	if st.baud != 0 {
		s.t.Fatalf("scriptedTransport: step %d expected SetBaudRate(%d), got TxRx(%v)", s.pos-1, st.baud, tx)
	}
	if st.tx != nil && !bytes.Equal(st.tx, tx) {
		s.t.Fatalf("scriptedTransport: step %d expected tx %v, got %v", s.pos-1, st.tx, tx)
	}
	if len(st.rx) != len(rx) {
		s.t.Fatalf("scriptedTransport: step %d rx length mismatch: script has %d, call wants %d", s.pos-1, len(st.rx), len(rx))
	}
	copy(rx, st.rx)
	return st.err
}

func (s *scriptedTransport) done() {
	s.t.Helper()
	if s.pos != len(s.steps) {
		s.t.Fatalf("scriptedTransport: script has %d unused steps", len(s.steps)-s.pos)
	}
}

func newScripted(t *testing.T, steps []step) *scriptedTransport {
	return &scriptedTransport{t: t, steps: steps}
}
