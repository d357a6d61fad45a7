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

import "sync"

// Window tracks flow-control credit for one direction of a byte channel.
//
// advertised is credit already handed to the sender but not yet claimed.
// pending is credit that has accrued but hasn't been surfaced through
// PollIncrement yet. underflow is debt that must be paid back (by future
// increments) before any of it can be advertised again; it exists so that
// Shrink can rescind *future* capacity without invalidating credit the
// sender may already be relying on.
type Window struct {
	mu         sync.Mutex
	advertised int
	pending    int
	underflow  int
	parked     Waker

	// liveness bookkeeping for WindowAdvertiser's orphan check. Rust's
	// source answers "can this window ever make progress again?" by
	// inspecting Arc strong/weak counts; Go has no deterministic Drop, so
	// this implementation tracks the same fact explicitly, updated by the
	// exact call sites (Close, Reset, Release) that would have run a Rust
	// destructor.
	senderAlive   bool
	receiverAlive bool
	liveChunks    int
}

// newWindow creates a Window primed with initialWindowSize units of
// pending credit, so the first PollIncrement call yields it immediately.
func newWindow(initialWindowSize int) *Window {
	return &Window{
		pending:       initialWindowSize,
		senderAlive:   true,
		receiverAlive: true,
	}
}

// Advertised returns a snapshot of the credit currently available to the
// sender.
func (w *Window) Advertised() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.advertised
}

// AdvertiseIncrement offers n units of credit to the window. Credit that is
// still owed as underflow (from a prior Shrink) is repaid first; anything
// left over is staged as pending until a WindowAdvertiser polls it.
func (w *Window) AdvertiseIncrement(n int) {
	if n == 0 {
		return
	}

	w.mu.Lock()
	var waker Waker
	if n <= w.underflow {
		w.underflow -= n
	} else {
		n -= w.underflow
		w.underflow = 0
		w.pending += n
		if w.parked != nil {
			waker = w.parked
			w.parked = nil
		}
	}
	w.mu.Unlock()

	if waker != nil {
		waker.Wake()
	}
}

// PollIncrement obtains and applies the next window increment. If none is
// available yet, waker is parked (overwriting any previously parked waker)
// to be notified when AdvertiseIncrement next makes pending credit
// positive, and PollIncrement returns (0, false).
func (w *Window) PollIncrement(waker Waker) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == 0 {
		w.parked = waker
		return 0, false
	}

	p := w.pending
	w.pending = 0

	if w.underflow < p {
		incr := p - w.underflow
		w.underflow = 0
		w.advertised += incr
		return incr, true
	}

	w.underflow -= p
	w.parked = waker
	return 0, false
}

// ClaimAdvertised consumes n units of previously advertised credit. It
// panics if the caller claims more than is currently advertised: that is a
// programmer error, not a recoverable condition (the sender is required to
// observe available credit via WindowAdvertiser before pushing).
func (w *Window) ClaimAdvertised(n int) {
	if n == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if n > w.advertised {
		panic("winchan: claimed more window than was advertised")
	}
	w.advertised -= n
}

// Shrink unilaterally reduces future capacity by n. Already-advertised
// credit is honored; the reduction is paid back out of the next increments
// instead.
func (w *Window) Shrink(n int) {
	if n == 0 {
		return
	}
	w.mu.Lock()
	w.underflow += n
	w.mu.Unlock()
}

// markSenderGone records that the sender side will never claim or offer
// credit again.
func (w *Window) markSenderGone() {
	w.mu.Lock()
	w.senderAlive = false
	w.mu.Unlock()
}

// markReceiverGone records that the receiver side will never produce more
// Chunks.
func (w *Window) markReceiverGone() {
	w.mu.Lock()
	w.receiverAlive = false
	w.mu.Unlock()
}

// chunkCreated records a new live Chunk referencing this window.
func (w *Window) chunkCreated() {
	w.mu.Lock()
	w.liveChunks++
	w.mu.Unlock()
}

// chunkReleased records that a live Chunk referencing this window has been
// released, then returns its remaining bytes as credit through
// AdvertiseIncrement; the two steps take the window lock separately.
func (w *Window) chunkReleased(remaining int) {
	w.mu.Lock()
	w.liveChunks--
	w.mu.Unlock()
	w.AdvertiseIncrement(remaining)
}

// orphaned reports whether the window can never make progress again: no
// sender, no receiver, and no outstanding Chunk can ever offer or claim
// credit. A WindowAdvertiser still polling it is not itself counted,
// mirroring the Rust source excluding the advertiser's own Arc clone from
// its orphan check.
func (w *Window) orphaned() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.senderAlive && !w.receiverAlive && w.liveChunks == 0
}
