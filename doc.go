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

// Package winchan is a single-producer, single-consumer in-process byte
// channel with explicit, receiver-driven flow control.
//
// Bytes flow sender -> receiver -> Chunk -> consumer. Credit flows the
// opposite direction: a Chunk returns its bytes to the Window as it is
// advanced or released, the Window stages that credit, and a
// WindowAdvertiser surfaces it to whatever is driving the sender.
//
// The state machine is synchronous: every exported Poll-style method takes
// a Waker and returns immediately, recording the waker to be notified on
// the next state transition rather than blocking. Hosts that want a
// blocking net.Conn-like experience drive the poll methods from a loop that
// waits on a ChanWaker (see cmd/flowpipe for a worked example).
package winchan
