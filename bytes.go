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

import (
	"errors"
	"sync"
)

// Bytes is an immutable, cheaply sliceable view over a byte buffer. It
// plays the role the spec leaves abstract as "an opaque reference-counted
// immutable slice that supports cheap split_off(n)/split_to(n)": a Go
// slice already shares its backing array across splits, so no actual
// reference counting is needed to get that cheapness.
type Bytes struct {
	buf []byte
}

// NewBytes wraps b as a Bytes value. The caller must not mutate b after
// handing it to NewBytes.
func NewBytes(b []byte) Bytes {
	return Bytes{buf: b}
}

// Len returns the number of bytes remaining in b.
func (b Bytes) Len() int {
	return len(b.buf)
}

// IsEmpty reports whether b has no bytes left.
func (b Bytes) IsEmpty() bool {
	return len(b.buf) == 0
}

// Bytes returns the underlying slice. Callers must treat it as read-only.
func (b Bytes) Bytes() []byte {
	return b.buf
}

// splitTo removes and returns the first n bytes of b, leaving b holding the
// remainder. It is the Go analogue of Rust's Bytes::split_to.
func (b *Bytes) splitTo(n int) Bytes {
	prefix := Bytes{buf: b.buf[:n:n]}
	b.buf = b.buf[n:]
	return prefix
}

// ErrBufferTooLarge is returned by the pooled allocator when asked for a
// buffer outside the range it pools.
var ErrBufferTooLarge = errors.New("winchan: pooled buffer request exceeds maximum size")

// bufferPool is a power-of-two pool of byte slices, adapted from
// smux/alloc.go's Allocator: the same bucket-per-bit-width sync.Pool
// layout and de Bruijn most-significant-bit trick, renamed into this
// package's domain. NewPooledBytes draws from it; nothing in the package
// calls put, so buffers handed out are never returned to it.
type bufferPool struct {
	buckets []sync.Pool
}

// maxPooledSize is the largest buffer the pool will hand out; requests
// above this size allocate directly, exactly as smux falls back to a
// direct net.Conn read for oversized frames.
const maxPooledSize = 1 << 20

var debruijnPos = [...]byte{0, 9, 1, 10, 13, 21, 2, 29, 11, 14, 16, 18, 22, 25, 3, 30, 8, 12, 20, 28, 15, 17, 24, 7, 19, 27, 23, 6, 26, 5, 4, 31}

// newBufferPool constructs a pool with one sync.Pool bucket per power of
// two from 1B up to maxPooledSize.
func newBufferPool() *bufferPool {
	p := &bufferPool{buckets: make([]sync.Pool, 21)} // 1B -> 1MiB
	for k := range p.buckets {
		size := 1 << uint(k)
		p.buckets[k].New = func() interface{} {
			b := make([]byte, size)
			return &b
		}
	}
	return p
}

// get returns a *[]byte of length size with capacity rounded up to the
// next power of two, or nil if size is out of range.
func (p *bufferPool) get(size int) *[]byte {
	if size <= 0 || size > maxPooledSize {
		return nil
	}

	bits := msb(size)
	if size == 1<<bits {
		b := p.buckets[bits].Get().(*[]byte)
		*b = (*b)[:size]
		return b
	}
	b := p.buckets[bits+1].Get().(*[]byte)
	*b = (*b)[:size]
	return b
}

// put returns a buffer obtained from get back to its bucket for reuse. The
// buffer's capacity must be exactly a power of two, matching what get
// handed out.
func (p *bufferPool) put(b *[]byte) error {
	if b == nil {
		return ErrBufferTooLarge
	}
	bits := msb(cap(*b))
	if cap(*b) == 0 || cap(*b) > maxPooledSize || cap(*b) != 1<<bits {
		return ErrBufferTooLarge
	}
	p.buckets[bits].Put(b)
	return nil
}

// msb returns the position of the most significant set bit of size.
func msb(size int) byte {
	v := uint32(size)
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return debruijnPos[(v*0x07C4ACDD)>>27]
}

// defaultBufferPool is shared by NewPooledBytes the same way smux shares a
// single package-level defaultAllocator across all sessions.
var defaultBufferPool = newBufferPool()

// NewPooledBytes copies data into a buffer drawn from the package's shared
// pool (capacity rounded up to a power of two) and returns it as a Bytes.
// Requests larger than maxPooledSize, or empty ones, get a plain copy. The
// buffer and any fragments split from it are reclaimed by the garbage
// collector like any other slice; they are never put back into the pool,
// so each call allocates a new buffer through the bucket's New function.
func NewPooledBytes(data []byte) Bytes {
	p := defaultBufferPool.get(len(data))
	if p == nil {
		return NewBytes(append([]byte(nil), data...))
	}
	copy(*p, data)
	return Bytes{buf: *p}
}
