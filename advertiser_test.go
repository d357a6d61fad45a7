package winchan

import "testing"

func TestAdvertiserNeverReturnsSpuriousReadyZero(t *testing.T) {
	sender, receiver, advertiser := New[string](0)
	defer sender.Close()
	defer receiver.Close()

	incr, ready, done := advertiser.Poll(NopWaker)
	if ready && incr == 0 {
		t.Fatalf("Poll must never report ready with an increment of 0")
	}
	if ready || done {
		t.Fatalf("expected not-ready with a zero initial window, got ready=%v done=%v", ready, done)
	}
}

func TestAdvertiserParksWakerAndFiresOnIncrement(t *testing.T) {
	sender, receiver, advertiser := New[string](0)
	defer sender.Close()
	defer receiver.Close()

	woke := false
	waker := WakerFunc(func() { woke = true })
	_, ready, _ := advertiser.Poll(waker)
	if ready {
		t.Fatalf("expected not-ready with nothing pending")
	}

	// Unrelated buffer-side parking (nothing pushed yet); exercises that it
	// doesn't interfere with the window's own waker slot.
	chunk, _, _ := receiver.PollChunk(NopWaker, 1)
	if chunk != nil {
		t.Fatalf("expected no chunk: nothing has been pushed yet")
	}

	sender.window.AdvertiseIncrement(3)
	if !woke {
		t.Fatalf("expected the parked advertiser waker to fire once credit appears")
	}

	incr, ready, done := advertiser.Poll(NopWaker)
	if !ready || done || incr != 3 {
		t.Fatalf("expected increment 3, got (%d, %v, %v)", incr, ready, done)
	}
}
