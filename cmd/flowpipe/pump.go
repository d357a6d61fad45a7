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

package main

import (
	"bufio"
	"io"
	"log"

	"github.com/flowbyte/winchan"
)

// feed reads from src and pushes it into sender, capping every push at
// whatever credit the WindowAdvertiser currently offers (never more than
// chunkSize at a time). It always leaves the sender either closed (clean
// EOF) or reset (read failure), exactly once.
func feed(src io.Reader, sender *winchan.ByteSender[error], advertiser *winchan.WindowAdvertiser, chunkSize int, quiet bool) {
	reader := bufio.NewReader(src)
	waker := winchan.NewChanWaker()

	buf := make([]byte, chunkSize)
	for {
		incr, ready, done := advertiser.Poll(waker)
		if done {
			sender.Close()
			return
		}
		if !ready {
			<-waker
			continue
		}

		want := incr
		if want > chunkSize {
			want = chunkSize
		}
		n, err := reader.Read(buf[:want])
		if n > 0 {
			if pushErr := sender.PushBytes(winchan.NewBytes(append([]byte(nil), buf[:n]...))); pushErr != nil {
				if !quiet {
					log.Println("feed: push failed:", pushErr)
				}
				sender.Close()
				return
			}
		}
		if err == io.EOF {
			sender.Close()
			return
		}
		if err != nil {
			sender.Reset(err)
			return
		}
	}
}

// drain polls receiver until end-of-stream or failure, writing every chunk
// of bytes to dst as it arrives and returning the reset error, if any.
func drain(receiver *winchan.ByteReceiver[error], dst io.Writer, chunkSize int, quiet bool) error {
	defer receiver.Close()

	writer := bufio.NewWriter(dst)
	waker := winchan.NewChanWaker()

	for {
		chunk, eof, err := receiver.PollChunk(waker, chunkSize)
		if err != nil {
			writer.Flush()
			return err
		}
		if chunk == nil {
			if eof {
				writer.Flush()
				return nil
			}
			<-waker
			continue
		}

		for chunk.Remaining() > 0 {
			b := chunk.Bytes()
			if _, werr := writer.Write(b); werr != nil {
				chunk.Release()
				if !quiet {
					log.Println("drain: write failed:", werr)
				}
				return werr
			}
			chunk.Advance(len(b))
		}
		chunk.Release()

		if eof {
			writer.Flush()
			return nil
		}
	}
}
