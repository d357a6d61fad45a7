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

import "fmt"

// ResetError wraps the caller-supplied failure value a sender passed to
// Reset, so PollChunk can surface it through the standard error interface
// while still letting a caller recover the original E via errors.As.
type ResetError[E any] struct {
	Value E
}

func (e *ResetError[E]) Error() string {
	return fmt.Sprintf("winchan: sender reset: %v", e.Value)
}

// ByteReceiver is the pull side of a byte channel. Construct one with New.
type ByteReceiver[E any] struct {
	buffer *channelBuffer[E]
	window *Window
	closed bool
}

// PollChunk attempts to dequeue up to maxSz bytes.
//
//   - data ready: returns (chunk, false, nil); chunk is non-nil and the
//     caller owns it (it MUST be Released, typically via defer).
//   - no data yet: returns (nil, false, nil); waker is parked and will be
//     woken once more data arrives or the stream ends.
//   - sender closed and fully drained: returns (nil, true, nil).
//   - sender called Reset(e): returns (nil, true, &ResetError[E]{e}).
//
// Once PollChunk has returned true or a non-nil error, every subsequent
// call with maxSz > 0 returns (nil, true, nil): it never reverts to
// reporting more data. A maxSz of 0 always returns an empty Chunk.
func (r *ByteReceiver[E]) PollChunk(waker Waker, maxSz int) (*Chunk, bool, error) {
	if r.closed {
		panic("winchan: PollChunk called after Close")
	}
	if maxSz < 0 {
		panic("winchan: PollChunk requires maxSz >= 0")
	}
	if maxSz == 0 {
		return emptyChunk(r.window), false, nil
	}

	slices, result, failure := r.buffer.pollTake(waker, maxSz)
	switch result {
	case pollNotReady:
		return nil, false, nil
	case pollEndOfStream:
		return nil, true, nil
	case pollError:
		return nil, true, &ResetError[E]{Value: failure}
	default:
		return chunkFromSlices(r.window, slices), false, nil
	}
}

// ShrinkWindow lowers future advertised credit by n. Already-advertised
// credit the sender may be holding is unaffected; the reduction is repaid
// out of future increments first.
func (r *ByteReceiver[E]) ShrinkWindow(n int) {
	r.window.Shrink(n)
}

// Close signals that the receiver will never poll again. Any bytes still
// queued in the buffer have their flow-control credit returned to the
// window, and the window records the receiver as gone, so the
// WindowAdvertiser reports the channel orphaned once the sender and every
// Chunk are gone too. Close consumes the receiver: PollChunk panics
// afterwards, and a second Close is a no-op.
func (r *ByteReceiver[E]) Close() {
	if r.closed {
		return
	}
	r.closed = true

	returned := r.buffer.receiverGone()
	r.window.markReceiverGone()
	if returned > 0 {
		r.window.AdvertiseIncrement(returned)
	}
}
