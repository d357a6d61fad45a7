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

// chunkShape tags which of the three collapsed representations a Chunk
// holds, mirroring the Rust source's ChunkBytes enum (Zero/One/Many).
type chunkShape int

const (
	shapeZero chunkShape = iota
	shapeOne
	shapeMany
)

// Chunk is an immutable view over some bytes taken from a ByteReceiver. It
// behaves as a random-access byte cursor: Bytes returns the contiguous
// head slice, Advance discards a prefix, and Release returns any
// unconsumed bytes' flow-control credit to the Window.
//
// A Chunk MUST be released exactly once, typically via defer. This is the
// explicit Go stand-in for the Rust source's Drop impl: Go has no
// deterministic destructors, so the credit return that Drop performed
// automatically has to be requested explicitly here.
type Chunk struct {
	shape     chunkShape
	one       Bytes
	many      []Bytes
	remaining int

	window   *Window
	released bool
}

// emptyChunk returns a Chunk with no bytes, still bound to window so a
// subsequent Advance(0) or Release is well-defined.
func emptyChunk(window *Window) *Chunk {
	window.chunkCreated()
	return &Chunk{shape: shapeZero, window: window}
}

// chunkFromSlices wraps the given slices (already popped off a
// channelBuffer's queue) as a Chunk bound to window, collapsing to the
// simplest representation: zero slices -> empty, one -> One, more -> Many
// with a pre-computed remaining count.
func chunkFromSlices(window *Window, slices []Bytes) *Chunk {
	switch len(slices) {
	case 0:
		return emptyChunk(window)
	case 1:
		if slices[0].IsEmpty() {
			return emptyChunk(window)
		}
		window.chunkCreated()
		return &Chunk{shape: shapeOne, one: slices[0], window: window}
	default:
		remaining := 0
		for _, s := range slices {
			remaining += s.Len()
		}
		if remaining == 0 {
			return emptyChunk(window)
		}
		window.chunkCreated()
		return &Chunk{shape: shapeMany, many: slices, remaining: remaining, window: window}
	}
}

// Remaining returns the total number of bytes still addressable in c.
func (c *Chunk) Remaining() int {
	switch c.shape {
	case shapeZero:
		return 0
	case shapeOne:
		return c.one.Len()
	default:
		return c.remaining
	}
}

// Bytes returns the contiguous head slice: the only segment for One, the
// first segment for Many, nil for Zero.
func (c *Chunk) Bytes() []byte {
	switch c.shape {
	case shapeZero:
		return nil
	case shapeOne:
		return c.one.Bytes()
	default:
		if len(c.many) == 0 {
			return nil
		}
		return c.many[0].Bytes()
	}
}

// Advance logically discards the next n bytes of c, returning their
// flow-control credit to the Window immediately. It panics if n exceeds
// Remaining(): that indicates a caller bug, not a recoverable condition.
func (c *Chunk) Advance(n int) {
	if n == 0 {
		return
	}
	if c.released {
		panic("winchan: Advance called on a released Chunk")
	}

	switch c.shape {
	case shapeZero:
		panic("winchan: Advance exceeds chunk size")

	case shapeOne:
		if n > c.one.Len() {
			panic("winchan: Advance exceeds chunk size")
		}
		if n == c.one.Len() {
			c.one = Bytes{}
			c.shape = shapeZero
		} else {
			c.one.splitTo(n)
		}
		c.window.AdvertiseIncrement(n)

	case shapeMany:
		if n > c.remaining {
			panic("winchan: Advance exceeds chunk size")
		}
		left := n
		for left > 0 {
			head := c.many[0]
			if left < head.Len() {
				head.splitTo(left)
				c.many[0] = head
				left = 0
			} else {
				left -= head.Len()
				c.many = c.many[1:]
			}
		}
		c.remaining -= n
		if c.remaining == 0 {
			c.shape = shapeZero
			c.many = nil
		}
		c.window.AdvertiseIncrement(n)
	}
}

// Release returns any unconsumed bytes' credit to the Window and
// invalidates c. It is the explicit analogue of the Rust source's Drop
// impl and MUST be called exactly once per Chunk, usually via defer.
// Calling Release more than once is a no-op.
func (c *Chunk) Release() {
	if c.released {
		return
	}
	c.released = true
	remaining := c.Remaining()
	c.shape = shapeZero
	c.one = Bytes{}
	c.many = nil
	c.remaining = 0
	c.window.chunkReleased(remaining)
}
