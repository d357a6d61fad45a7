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

import "errors"

// Sentinel errors, declared together the way smux collects ErrInvalidProtocol,
// ErrConsumed, ErrTimeout, and ErrWouldBlock in one var block.
var (
	// ErrLostReceiver is returned by PushBytes once the receiver has gone
	// away: nothing will ever read the bytes, so the sender should stop
	// producing.
	ErrLostReceiver = errors.New("winchan: receiver is gone")

	// ErrLostPeer is the symmetric counterpart for hosts built on top of
	// this package that need to report "the other end of the channel is
	// gone" through their own error type, e.g. a host reacting to
	// ErrLostReceiver or a drained, sender-closed stream. Neither the core
	// package nor cmd/flowpipe returns it: a closed
	// or reset sender is reported to the receiver as end-of-stream or
	// ResetError, not as peer loss.
	ErrLostPeer = errors.New("winchan: peer is gone")
)
