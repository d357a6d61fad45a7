package winchan

import "testing"

// TestScenarioSimplePipeInitialCreditTen covers scenario 1: new(10), advertiser
// yields 10, a push of 10 bytes, a 3-byte read, and the released chunk
// returning 3 units of credit.
func TestScenarioSimplePipeInitialCreditTen(t *testing.T) {
	sender, receiver, advertiser := New[string](10)
	defer sender.Close()
	defer receiver.Close()

	incr, ready, done := advertiser.Poll(NopWaker)
	if !ready || done || incr != 10 {
		t.Fatalf("expected initial increment 10, got (%d, %v, %v)", incr, ready, done)
	}

	if err := sender.PushBytes(NewBytes([]byte("0123456789"))); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}

	chunk, eof, err := receiver.PollChunk(NopWaker, 3)
	if chunk == nil || eof || err != nil {
		t.Fatalf("expected a ready chunk, got (%v, %v, %v)", chunk, eof, err)
	}
	if got := string(chunk.Bytes()); got != "012" {
		t.Fatalf("expected %q, got %q", "012", got)
	}
	chunk.Release()

	incr, ready, done = advertiser.Poll(NopWaker)
	if !ready || done || incr != 3 {
		t.Fatalf("expected increment 3 after release, got (%d, %v, %v)", incr, ready, done)
	}
	if got := sender.AvailableWindow(); got != 3 {
		t.Fatalf("expected advertised window 3, got %d", got)
	}
}

// TestScenarioFineGrainedCreditReturnViaAdvance covers scenario 2: advancing
// an 8-byte chunk in pieces returns credit incrementally, and the final
// release returns the remainder.
func TestScenarioFineGrainedCreditReturnViaAdvance(t *testing.T) {
	sender, receiver, advertiser := New[string](10)
	defer sender.Close()
	defer receiver.Close()
	advertiser.Poll(NopWaker)

	sender.PushBytes(NewBytes([]byte("0123456789")))
	chunk, _, _ := receiver.PollChunk(NopWaker, 8)

	chunk.Advance(4)
	incr, ready, _ := advertiser.Poll(NopWaker)
	if !ready || incr != 4 {
		t.Fatalf("expected increment 4, got (%d, %v)", incr, ready)
	}

	chunk.Advance(3)
	incr, ready, _ = advertiser.Poll(NopWaker)
	if !ready || incr != 3 {
		t.Fatalf("expected increment 3, got (%d, %v)", incr, ready)
	}

	chunk.Release()
	incr, ready, _ = advertiser.Poll(NopWaker)
	if !ready || incr != 1 {
		t.Fatalf("expected final increment 1 from release, got (%d, %v)", incr, ready)
	}

	if got := sender.AvailableWindow(); got != 8 {
		t.Fatalf("expected final advertised window 8, got %d", got)
	}
}

// TestScenarioCreditReclaimedOnReceiverClose covers scenario 3: closing the
// receiver reports ErrLostReceiver to the next push and orphans the window.
func TestScenarioCreditReclaimedOnReceiverClose(t *testing.T) {
	sender, receiver, advertiser := New[string](10)
	advertiser.Poll(NopWaker)

	if err := sender.PushBytes(NewBytes([]byte("abcdef"))); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}

	receiver.Close()

	if err := sender.PushBytes(NewBytes([]byte("x"))); err != ErrLostReceiver {
		t.Fatalf("expected ErrLostReceiver, got %v", err)
	}

	sender.Close()

	// The 6 bytes still queued when the receiver closed had their credit
	// returned; that increment must be drained before the advertiser can
	// observe the window is orphaned.
	incr, ready, done := advertiser.Poll(NopWaker)
	if !ready || done || incr != 6 {
		t.Fatalf("expected the reclaimed 6 units of credit first, got (%d, %v, %v)", incr, ready, done)
	}

	_, _, done = advertiser.Poll(NopWaker)
	if !done {
		t.Fatalf("expected advertiser to terminate once sender and receiver are both gone")
	}
}

// TestScenarioShrinkThenIncrementCompensation covers scenario 4, exercised
// directly at the Window level (the scenario is stated in terms of shrink/
// claim_advertised/advertise_increment, not full channel plumbing): a window
// shrunk by more than a subsequent increment absorbs the whole increment as
// underflow repayment, and only the excess surfaces.
func TestScenarioShrinkThenIncrementCompensation(t *testing.T) {
	w := newWindow(8)

	incr, ready := w.PollIncrement(NopWaker)
	if !ready || incr != 8 {
		t.Fatalf("expected initial increment 8, got (%d, %v)", incr, ready)
	}

	w.Shrink(8)
	if got := w.Advertised(); got != 8 {
		t.Fatalf("shrink must not rescind already-advertised credit, got %d", got)
	}

	w.ClaimAdvertised(7)

	w.AdvertiseIncrement(7)
	_, ready = w.PollIncrement(NopWaker)
	if ready {
		t.Fatalf("expected the 7-unit increment to be fully absorbed by underflow")
	}

	w.AdvertiseIncrement(2)
	incr, ready = w.PollIncrement(NopWaker)
	if !ready || incr != 1 {
		t.Fatalf("expected only the 1 unit above underflow to surface, got (%d, %v)", incr, ready)
	}
}

// TestScenarioResetSurfacesOnceThenEnds covers scenario 5: Reset delivers its
// error exactly once, subsequent polls report end-of-stream, and the queued
// bytes' credit is returned.
func TestScenarioResetSurfacesOnceThenEnds(t *testing.T) {
	sender, receiver, advertiser := New[string](10)
	defer receiver.Close()
	advertiser.Poll(NopWaker)

	sender.PushBytes(NewBytes([]byte("ab")))
	sender.Reset("my error")

	_, eof, err := receiver.PollChunk(NopWaker, 10)
	if !eof || err == nil {
		t.Fatalf("expected an error on the first poll after reset")
	}

	_, eof, err = receiver.PollChunk(NopWaker, 10)
	if !eof || err != nil {
		t.Fatalf("expected plain end-of-stream on the second poll, got (%v, %v)", eof, err)
	}

	incr, ready, _ := advertiser.Poll(NopWaker)
	if !ready || incr != 2 {
		t.Fatalf("expected the 2 queued bytes' credit returned, got (%d, %v)", incr, ready)
	}
}

// TestScenarioCloseWithPendingDataDrains covers scenario 6: closing the
// sender still lets the receiver drain already-queued bytes before seeing
// end-of-stream, and the advertiser only terminates once the drained chunk
// is released and the window is orphaned.
func TestScenarioCloseWithPendingDataDrains(t *testing.T) {
	sender, receiver, advertiser := New[string](4)

	incr, ready, _ := advertiser.Poll(NopWaker)
	if !ready || incr != 4 {
		t.Fatalf("expected initial increment 4, got (%d, %v)", incr, ready)
	}

	sender.PushBytes(NewBytes([]byte("wxyz")))
	sender.Close()

	chunk, eof, err := receiver.PollChunk(NopWaker, 10)
	if chunk == nil || eof || err != nil {
		t.Fatalf("expected the queued bytes delivered before end-of-stream, got (%v, %v, %v)", chunk, eof, err)
	}
	if got := string(chunk.Bytes()); got != "wxyz" {
		t.Fatalf("expected %q, got %q", "wxyz", got)
	}

	_, eof, err = receiver.PollChunk(NopWaker, 10)
	if !eof || err != nil {
		t.Fatalf("expected end-of-stream, got (%v, %v)", eof, err)
	}

	chunk.Release()
	receiver.Close()

	// Releasing the chunk returns its 4 bytes of credit; that increment
	// must be drained before the advertiser can observe the orphaned window.
	incr, ready, done := advertiser.Poll(NopWaker)
	if !ready || done || incr != 4 {
		t.Fatalf("expected the released chunk's 4 units of credit first, got (%d, %v, %v)", incr, ready, done)
	}

	_, _, done = advertiser.Poll(NopWaker)
	if !done {
		t.Fatalf("expected advertiser to terminate once the drained chunk releases and the window is orphaned")
	}
}

// TestRoundTripIdentity covers P5: bytes pushed in several pieces, read back
// in different-sized chunks, reassemble byte-for-byte.
func TestRoundTripIdentity(t *testing.T) {
	sender, receiver, advertiser := New[string](64)
	defer sender.Close()
	defer receiver.Close()
	advertiser.Poll(NopWaker)

	pieces := []string{"the quick ", "brown fox ", "jumps"}
	for _, p := range pieces {
		if err := sender.PushBytes(NewBytes([]byte(p))); err != nil {
			t.Fatalf("unexpected push error: %v", err)
		}
	}
	sender.Close()

	var got []byte
	for {
		chunk, eof, err := receiver.PollChunk(NopWaker, 7)
		if err != nil {
			t.Fatalf("unexpected poll error: %v", err)
		}
		if chunk == nil {
			if eof {
				break
			}
			t.Fatalf("unexpected not-ready with no more data pending")
		}
		for chunk.Remaining() > 0 {
			b := chunk.Bytes()
			got = append(got, b...)
			chunk.Advance(len(b))
		}
		chunk.Release()
		if eof {
			break
		}
	}

	want := "the quick brown fox jumps"
	if string(got) != want {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, want)
	}
}
