// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package winchan

// Waker is the only thing the channel's core expects from a host scheduler:
// a way to be told "something changed, poll me again". It plays the role of
// a future's task handle.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to the Waker interface.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() {
	f()
}

// NopWaker never does anything. Useful for tests that only care about the
// Ready/NotReady result and never expect to actually be woken.
var NopWaker Waker = WakerFunc(func() {})

// ChanWaker is a convenience Waker for hosts that want to park a goroutine
// on a channel instead of re-polling in a loop, mirroring the wakeup
// channels smux keeps per stream (chReaderWakeup, chWriterWakeup, chUpdate).
// The zero value is not usable; construct with NewChanWaker.
type ChanWaker chan struct{}

// NewChanWaker returns a ChanWaker with the single-slot buffering the
// channel's core relies on: at most one outstanding notification is ever
// queued, matching the single-waiter parking rule in the core state
// machine.
func NewChanWaker() ChanWaker {
	return make(ChanWaker, 1)
}

// Wake delivers a non-blocking notification, exactly like smux's
// wakeupReader/wakeupWriter: if a notification is already pending, this is
// a no-op rather than a block.
func (c ChanWaker) Wake() {
	select {
	case c <- struct{}{}:
	default:
	}
}
