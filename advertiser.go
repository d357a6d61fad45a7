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

// WindowAdvertiser is a single-consumer lazy sequence of positive window
// increments. A sender (or whatever owns the send side of a host
// transport) polls it to learn when new credit has become available, the
// same role smux's sendWindowUpdate notifications play but inverted: here
// the increments are pulled, not pushed.
type WindowAdvertiser struct {
	window *Window
}

// Poll returns the next credit increment. If incr > 0, ready is true and
// the caller may offer that much additional window to its peer. If
// nothing is available yet, waker is parked and Poll returns (0, false,
// false); the caller should stop polling until waker fires. If the
// channel has become permanently orphaned — sender, receiver, and every
// outstanding Chunk are all gone — Poll returns (0, false, true) and will
// keep doing so on every subsequent call.
func (a *WindowAdvertiser) Poll(waker Waker) (incr int, ready bool, done bool) {
	incr, ready = a.window.PollIncrement(waker)
	if ready {
		return incr, true, false
	}
	if a.window.orphaned() {
		return 0, false, true
	}
	return 0, false, false
}
