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

// New builds one end-to-end flow-controlled byte channel: a sender, a
// receiver, and the advertiser that tells the sender when more credit has
// become available. initialWindowSize is staged as pending credit, so the
// first WindowAdvertiser poll yields it immediately and a sender that
// observes that poll before pushing sees initialWindowSize bytes of credit.
func New[E any](initialWindowSize int) (*ByteSender[E], *ByteReceiver[E], *WindowAdvertiser) {
	window := newWindow(initialWindowSize)
	buffer := newChannelBuffer[E]()

	sender := &ByteSender[E]{buffer: buffer, window: window}
	receiver := &ByteReceiver[E]{buffer: buffer, window: window}
	advertiser := &WindowAdvertiser{window: window}

	return sender, receiver, advertiser
}
