package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flowbyte/winchan"
)

func TestFeedAndDrainRoundTrip(t *testing.T) {
	sender, receiver, advertiser := winchan.New[error](16)

	src := strings.NewReader("the quick brown fox jumps over the lazy dog")
	var dst bytes.Buffer

	doneFeed := make(chan struct{})
	go func() {
		feed(src, sender, advertiser, 8, true)
		close(doneFeed)
	}()

	if err := drain(receiver, &dst, 8, true); err != nil {
		t.Fatalf("drain returned error: %v", err)
	}
	<-doneFeed

	if got := dst.String(); got != "the quick brown fox jumps over the lazy dog" {
		t.Fatalf("round-trip mismatch, got %q", got)
	}
}

func TestFeedResetPropagatesToDrain(t *testing.T) {
	sender, receiver, advertiser := winchan.New[error](16)

	boom := errReaderError("boom")
	var dst bytes.Buffer

	doneFeed := make(chan struct{})
	go func() {
		feed(errReader{err: boom}, sender, advertiser, 8, true)
		close(doneFeed)
	}()

	err := drain(receiver, &dst, 8, true)
	<-doneFeed

	if err == nil {
		t.Fatalf("expected drain to surface the feed's read error")
	}
}

type errReaderError string

func (e errReaderError) Error() string { return string(e) }

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
