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

// bufferState names which of the four tagged variants a channelBuffer
// currently holds.
type bufferState int

const (
	stateSending bufferState = iota
	stateSenderClosed
	stateSenderFailed
	stateLostReceiver
)

// channelBuffer is the FIFO of queued byte slices plus the sender and
// receiver liveness state, guarded by a single mutex. It has no knowledge
// of flow-control credit; that's the Window's job. A destroyed buffer
// (the Rust source's None) is represented by the destroyed flag: once set,
// every field is considered garbage and PollChunk reports end-of-stream.
type channelBuffer[E any] struct {
	mu sync.Mutex

	state     bufferState
	destroyed bool

	len   int
	queue []Bytes

	awaitingChunk Waker

	failure E
}

// newChannelBuffer returns a buffer in the initial Sending state with an
// empty queue, matching ChannelBuffer::default() in the Rust source.
func newChannelBuffer[E any]() *channelBuffer[E] {
	return &channelBuffer[E]{state: stateSending}
}

// queuedLen returns a snapshot of the number of bytes currently queued.
func (b *channelBuffer[E]) queuedLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return 0
	}
	return b.len
}

// isEmpty reports whether the buffer currently holds no queued bytes.
func (b *channelBuffer[E]) isEmpty() bool {
	return b.queuedLen() == 0
}

// push enqueues bytes, assuming the caller already confirmed this is legal
// (credit checked, buffer locked by the sender under the canonical
// buffer-then-window lock order). Returns the waker to notify, if any; the
// caller must Wake() it only after releasing any locks it holds.
func (b *channelBuffer[E]) push(bytes Bytes) (waker Waker, lostReceiver bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return nil, false
	}
	if b.state == stateLostReceiver {
		return nil, true
	}
	if b.state != stateSending {
		panic("winchan: PushBytes called in illegal buffer state")
	}

	b.len += bytes.Len()
	b.queue = append(b.queue, bytes)

	if b.awaitingChunk != nil {
		waker = b.awaitingChunk
		b.awaitingChunk = nil
	}
	return waker, false
}

// close transitions Sending -> SenderClosed. Any other state is left as it
// is (a LostReceiver buffer's queue was already emptied by receiverGone).
// Returns a waker to notify after unlocking, if any.
func (b *channelBuffer[E]) close() Waker {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed || b.state != stateSending {
		return nil
	}

	b.state = stateSenderClosed
	waker := b.awaitingChunk
	b.awaitingChunk = nil
	return waker
}

// reset transitions Sending -> SenderFailed(e). Returns the number of
// queued bytes whose credit must be returned to the window, and the waker
// to notify after unlocking.
func (b *channelBuffer[E]) reset(e E) (returnedBytes int, waker Waker) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return 0, nil
	}

	returnedBytes = b.len
	if b.state == stateSending {
		waker = b.awaitingChunk
		b.awaitingChunk = nil
	}

	b.state = stateSenderFailed
	b.failure = e
	b.len = 0
	b.queue = nil
	return returnedBytes, waker
}

// receiverGone transitions the buffer to LostReceiver, returning the
// number of queued bytes whose credit must be returned to the window. It
// is idempotent: calling it more than once returns 0 after the first call.
func (b *channelBuffer[E]) receiverGone() (returnedBytes int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed || b.state == stateLostReceiver {
		return 0
	}

	returnedBytes = b.len
	b.state = stateLostReceiver
	b.len = 0
	b.queue = nil
	return returnedBytes
}

// pollResult is what the receiver's core poll step decides to do.
type pollResult int

const (
	pollReady pollResult = iota
	pollNotReady
	pollEndOfStream
	pollError
)

// pollTake inspects the buffer and either takes up to maxSz bytes off the
// head of the queue, parks waker, reports end-of-stream, or reports the
// latched sender failure. It mirrors ByteReceiver::poll_chunk's match over
// ChannelBuffer's four states.
func (b *channelBuffer[E]) pollTake(waker Waker, maxSz int) (taken []Bytes, result pollResult, err E) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return nil, pollEndOfStream, err
	}

	switch b.state {
	case stateSenderFailed:
		b.destroyed = true
		return nil, pollError, b.failure

	case stateLostReceiver:
		panic("winchan: PollChunk called after the receiver reported itself gone")

	case stateSending:
		if b.len == 0 {
			b.awaitingChunk = waker
			return nil, pollNotReady, err
		}
		taken = b.takeLocked(maxSz)
		return taken, pollReady, err

	case stateSenderClosed:
		if b.len == 0 {
			b.destroyed = true
			return nil, pollEndOfStream, err
		}
		taken = b.takeLocked(maxSz)
		if b.len == 0 {
			b.destroyed = true
		}
		return taken, pollReady, err
	}

	panic("winchan: unreachable buffer state")
}

// takeLocked assembles up to maxSz bytes off the head of the queue. The
// caller must hold b.mu and must have already verified b.len > 0.
func (b *channelBuffer[E]) takeLocked(maxSz int) []Bytes {
	sz := b.len
	if maxSz < sz {
		sz = maxSz
	}

	var out []Bytes
	for sz > 0 {
		head := b.queue[0]
		if sz < head.Len() {
			prefix := head.splitTo(sz)
			b.queue[0] = head
			out = append(out, prefix)
			b.len -= prefix.Len()
			sz = 0
		} else {
			out = append(out, head)
			b.queue = b.queue[1:]
			b.len -= head.Len()
			sz -= head.Len()
		}
	}
	return out
}
