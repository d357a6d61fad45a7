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

// ByteSender is the push side of a byte channel. Construct one with New.
type ByteSender[E any] struct {
	buffer *channelBuffer[E]
	window *Window
	closed bool
}

// AvailableWindow returns a snapshot of the credit currently usable by
// PushBytes.
func (s *ByteSender[E]) AvailableWindow() int {
	return s.window.Advertised()
}

// Len returns a snapshot of the number of bytes currently queued and not
// yet taken by the receiver.
func (s *ByteSender[E]) Len() int {
	return s.buffer.queuedLen()
}

// IsEmpty reports whether the buffer currently holds no queued bytes.
func (s *ByteSender[E]) IsEmpty() bool {
	return s.buffer.isEmpty()
}

// PushBytes enqueues bytes for the receiver, all-or-nothing. It fails with
// ErrLostReceiver if the receiver has gone away. Otherwise it requires
// bytes.Len() <= AvailableWindow(): a caller that hasn't first observed
// enough credit via the WindowAdvertiser has a bug, and PushBytes panics
// rather than silently dropping or truncating the push.
func (s *ByteSender[E]) PushBytes(bytes Bytes) error {
	if s.closed {
		panic("winchan: PushBytes called after Close/Reset")
	}

	s.buffer.mu.Lock()
	lost := s.buffer.state == stateLostReceiver
	s.buffer.mu.Unlock()
	if lost {
		return ErrLostReceiver
	}

	sz := bytes.Len()
	if sz > 0 {
		s.window.mu.Lock()
		available := s.window.advertised
		s.window.mu.Unlock()
		if sz > available {
			panic("winchan: PushBytes overflow: more bytes than advertised window")
		}
	}

	waker, lostReceiver := s.buffer.push(bytes)
	if lostReceiver {
		return ErrLostReceiver
	}

	if sz > 0 {
		s.window.ClaimAdvertised(sz)
	}

	if waker != nil {
		waker.Wake()
	}
	return nil
}

// Reset fails the channel with e: the next PollChunk on the receiver
// returns a *ResetError[E] wrapping e, and every subsequent poll reports
// end-of-stream. Any bytes still queued have their credit returned to the
// window. Reset consumes the sender: PushBytes and Reset panic afterwards,
// and Close is a no-op.
func (s *ByteSender[E]) Reset(e E) {
	if s.closed {
		panic("winchan: Reset called after Close/Reset")
	}
	s.closed = true

	returned, waker := s.buffer.reset(e)
	s.window.markSenderGone()
	if returned > 0 {
		s.window.AdvertiseIncrement(returned)
	}
	if waker != nil {
		waker.Wake()
	}
}

// Close signals that no more data will be pushed. The receiver may
// continue draining whatever is already queued. Close consumes the
// sender: PushBytes and Reset panic afterwards, and a second Close is a
// no-op. It is safe to rely
// on defer s.Close() as the Go analogue of the Rust source's Drop impl,
// which always closed (never reset).
func (s *ByteSender[E]) Close() {
	if s.closed {
		return
	}
	s.closed = true

	waker := s.buffer.close()
	s.window.markSenderGone()
	if waker != nil {
		waker.Wake()
	}
}
