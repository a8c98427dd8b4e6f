package gxwebserial

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"bytes"
	"sync"
	"time"
)

// synchronousMediaBase buffers received data while the media is in
// synchronous mode so that Receive can wait for a terminator or byte count.
type synchronousMediaBase struct {
	mu   sync.Mutex
	cond *sync.Cond
	buf  []byte
}

func newGXSynchronousMediaBase() *synchronousMediaBase {
	s := &synchronousMediaBase{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Append adds received data to the buffer and wakes pending Search calls.
func (s *synchronousMediaBase) Append(data []byte) {
	if len(data) == 0 {
		return
	}
	s.mu.Lock()
	s.buf = append(s.buf, data...)
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Search waits until the buffer contains the terminator or at least count
// bytes and returns the end index of the match. A waitTime of zero or less
// waits indefinitely. -1 is returned when waitTime elapses first.
func (s *synchronousMediaBase) Search(terminator []byte, count int, waitTime time.Duration) int {
	var deadline time.Time
	if waitTime > 0 {
		deadline = time.Now().Add(waitTime)
		// Wake the waiter when the deadline passes.
		t := time.AfterFunc(waitTime, s.cond.Broadcast)
		defer t.Stop()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if len(terminator) != 0 {
			if i := bytes.Index(s.buf, terminator); i >= 0 {
				return i + len(terminator)
			}
		} else if count > 0 && len(s.buf) >= count {
			return count
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return -1
		}
		s.cond.Wait()
	}
}

// Get removes and returns the first index bytes of the buffer. A negative
// index drains the whole buffer.
func (s *synchronousMediaBase) Get(index int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index > len(s.buf) {
		index = len(s.buf)
	}
	ret := make([]byte, index)
	copy(ret, s.buf[:index])
	s.buf = s.buf[index:]
	return ret
}

// Reset drops any buffered data.
func (s *synchronousMediaBase) Reset() {
	s.mu.Lock()
	s.buf = nil
	s.mu.Unlock()
}

// Size returns the number of buffered bytes.
func (s *synchronousMediaBase) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}
